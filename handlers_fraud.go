package main

import (
	"errors"
	"net/http"

	"claimflow/fraud"

	"github.com/gin-gonic/gin"
)

func analyzeFraudHandler(c *gin.Context) {
	id, ok := pathID(c, "claimId")
	if !ok {
		return
	}
	if _, err := claimSvc.Get(id); err != nil {
		respondError(c, err)
		return
	}
	result, err := fraudSvc.AnalyzeClaim(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, fraud.ErrNoImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func fraudResultHandler(c *gin.Context) {
	id, ok := pathID(c, "claimId")
	if !ok {
		return
	}
	result, err := fraudSvc.ResultByClaim(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"analyzed": false, "claimId": id})
		return
	}
	c.JSON(http.StatusOK, result)
}

func fraudStatisticsHandler(c *gin.Context) {
	stats, err := fraudSvc.Statistics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func fraudHealthHandler(c *gin.Context) {
	up := fraudSvc.ServiceAvailable(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"aiServiceAvailable": up})
}
