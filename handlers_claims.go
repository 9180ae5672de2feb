package main

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"claimflow/claims"
	"claimflow/models"

	"github.com/gin-gonic/gin"
)

func listClaimsHandler(c *gin.Context) {
	q := claims.Query{
		Status:    c.Query("status"),
		ClaimType: c.Query("claimType"),
		SortBy:    c.DefaultQuery("sortBy", "submission_date"),
		SortDesc:  strings.EqualFold(c.DefaultQuery("direction", "desc"), "desc"),
	}
	if v := c.Query("minAmount"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinAmount = &f
		}
	}
	if v := c.Query("maxAmount"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxAmount = &f
		}
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "10"))

	items, total, err := claimSvc.List(q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	size := q.Size
	if size <= 0 {
		size = 10
	}
	c.JSON(http.StatusOK, gin.H{
		"claims":      items,
		"currentPage": q.Page,
		"totalItems":  total,
		"totalPages":  int(math.Ceil(float64(total) / float64(size))),
	})
}

func myClaimsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	items, err := claimSvc.ListByCustomer(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func assignedClaimsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	items, err := claimSvc.ListByAgent(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// canViewClaim lets staff see everything and customers only their own.
func canViewClaim(user *models.User, claim *models.Claim) bool {
	if user.Role == models.RoleAdmin || user.Role == models.RoleAgent {
		return true
	}
	return claim.CustomerID == user.ID
}

func getClaimHandler(c *gin.Context) {
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
	c.JSON(http.StatusOK, claim)
}

// claimDetailsHandler aggregates the claim with its documents, audit
// trail and any stored analysis results.
func claimDetailsHandler(c *gin.Context) {
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
	docs, err := repos.Documents.ByClaim(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	history, err := claimSvc.History(id)
	if err != nil {
		respondError(c, err)
		return
	}
	validation, err := repos.ValidationResults.ByClaim(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	fraudResult, err := fraudSvc.ResultByClaim(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"claim":            claim,
		"documents":        docs,
		"auditHistory":     history,
		"validationResult": validation,
		"fraudResult":      fraudResult,
	})
}

func createClaimHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req claims.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	claim, err := claimSvc.Create(req, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, claim)
}

func assignClaimHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	agentID, ok := pathID(c, "agentId")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	claim, err := claimSvc.AssignAgent(id, agentID, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}

func approveClaimHandler(c *gin.Context) {
	decisionHandler(c, models.StatusApproved)
}

func rejectClaimHandler(c *gin.Context) {
	decisionHandler(c, models.StatusRejected)
}

func decisionHandler(c *gin.Context, status models.ClaimStatus) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Response string `json:"response"`
	}
	_ = c.ShouldBindJSON(&req) // response text is optional
	claim, err := claimSvc.SetDecision(id, status, req.Response, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}

func verifyDescriptionHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	existing, err := claimSvc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing.DescriptionVerified {
		c.JSON(http.StatusConflict, gin.H{"error": "description already verified"})
		return
	}
	claim, err := claimSvc.VerifyDescription(id, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}

func deleteClaimHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := claimSvc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "claim deleted"})
}
