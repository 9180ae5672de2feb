package main

import (
	"errors"
	"net/http"
	"strconv"

	"claimflow/claims"
	"claimflow/evidence"

	"github.com/gin-gonic/gin"
)

func setupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/auth/register", registerHandler)
	api.POST("/auth/login", loginHandler)
	api.GET("/claim-types", listClaimTypesHandler)

	auth := api.Group("")
	auth.Use(jwtAuthMiddleware())

	auth.GET("/auth/me", meHandler)

	auth.GET("/users", requireRoles("ADMIN", "AGENT"), listUsersHandler)
	auth.GET("/users/customers", requireRoles("ADMIN", "AGENT"), listCustomersHandler)
	auth.GET("/users/:id", requireRoles("ADMIN", "AGENT"), getUserHandler)

	auth.POST("/claim-types", requireRoles("ADMIN"), createClaimTypeHandler)
	auth.DELETE("/claim-types/:id", requireRoles("ADMIN"), deleteClaimTypeHandler)
	auth.GET("/claim-types/:id/requirements", claimTypeRequirementsHandler)

	auth.GET("/claims", requireRoles("ADMIN", "AGENT"), listClaimsHandler)
	auth.GET("/claims/my", requireRoles("CUSTOMER"), myClaimsHandler)
	auth.GET("/claims/assigned", requireRoles("AGENT"), assignedClaimsHandler)
	auth.POST("/claims", requireRoles("CUSTOMER"), createClaimHandler)
	auth.GET("/claims/:id", getClaimHandler)
	auth.GET("/claims/:id/details", claimDetailsHandler)
	auth.PUT("/claims/:id/assign/:agentId", requireRoles("ADMIN"), assignClaimHandler)
	auth.PUT("/claims/:id/approve", requireRoles("AGENT"), approveClaimHandler)
	auth.PUT("/claims/:id/reject", requireRoles("AGENT"), rejectClaimHandler)
	auth.PUT("/claims/:id/verify-description", requireRoles("ADMIN", "AGENT"), verifyDescriptionHandler)
	auth.DELETE("/claims/:id", requireRoles("ADMIN"), deleteClaimHandler)

	auth.POST("/claims/:id/documents", uploadDocumentHandler)
	auth.GET("/claims/:id/documents", listDocumentsHandler)
	auth.GET("/documents/:fileName", downloadDocumentHandler)

	auth.GET("/claims/:id/evidence-validation", validationResultHandler)
	auth.POST("/claims/:id/evidence-validation/revalidate", requireRoles("ADMIN", "AGENT"), revalidateHandler)

	auth.POST("/fraud/analyze/:claimId", requireRoles("ADMIN", "AGENT"), analyzeFraudHandler)
	auth.GET("/fraud/claim/:claimId", fraudResultHandler)
	auth.GET("/fraud/statistics", requireRoles("ADMIN", "AGENT"), fraudStatisticsHandler)
	auth.GET("/fraud/health", fraudHealthHandler)
}

// pathID parses a numeric path parameter, responding 400 on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// respondError maps service sentinels to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, claims.ErrNotFound) || errors.Is(err, evidence.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, claims.ErrPolicyMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, claims.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
