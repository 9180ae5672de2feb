package main

import (
	"net/http"

	"claimflow/models"

	"github.com/gin-gonic/gin"
)

func listClaimTypesHandler(c *gin.Context) {
	types, err := repos.ClaimTypes.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, types)
}

func createClaimTypeHandler(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ct := models.ClaimType{Name: req.Name}
	if err := repos.ClaimTypes.Create(&ct); err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "claim type already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, ct)
}

func deleteClaimTypeHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := repos.ClaimTypes.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "claim type deleted"})
}

func claimTypeRequirementsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := repos.ClaimTypes.ByID(id); err != nil {
		respondError(c, err)
		return
	}
	reqs, err := repos.Requirements.ByClaimType(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, reqs)
}
