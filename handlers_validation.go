package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// validationResultHandler returns the stored result; it never triggers
// a run. Use revalidate to compute one.
func validationResultHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	claim, err := claimSvc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !canViewClaim(user, claim) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	result, err := engine.Result(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// revalidateHandler forces a fresh validation run, replacing the stored
// result.
func revalidateHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := engine.Validate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
