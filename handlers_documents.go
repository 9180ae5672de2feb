package main

import (
	"net/http"

	"claimflow/models"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 * 1024 * 1024

// uploadDocumentHandler stores a multipart evidence file for a claim.
func uploadDocumentHandler(c *gin.Context) {
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
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 10MB)"})
		return
	}
	stored, err := files.Save(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	doc := models.ClaimDocument{
		ClaimID:      claim.ID,
		DocumentName: file.Filename,
		StorePath:    stored,
		ContentType:  file.Header.Get("Content-Type"),
	}
	if err := repos.Documents.Create(&doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func listDocumentsHandler(c *gin.Context) {
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
	c.JSON(http.StatusOK, docs)
}

// downloadDocumentHandler streams a stored file back with its original
// name and content type.
func downloadDocumentHandler(c *gin.Context) {
	stored := c.Param("fileName")
	doc, err := repos.Documents.ByStorePath(stored)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	claim, err := claimSvc.Get(doc.ClaimID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !canViewClaim(user, claim) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	ct := doc.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.DocumentName+`"`)
	c.Header("Content-Type", ct)
	c.File(files.Path(doc.StorePath))
}
