package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venturedeck/venturedeck-backend/internal/services"
)

type DocumentHandler struct {
	documentService services.DocumentService
}

func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (dh *DocumentHandler) Upload(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("file field is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	defer file.Close()

	doc, err := dh.documentService.UploadDocument(
		c.Request.Context(),
		ventureID,
		c.PostForm("title"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, doc)
}

func (dh *DocumentHandler) List(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	docs, err := dh.documentService.ListDocuments(c.Request.Context(), ventureID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"documents": docs})
}

func (dh *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "documentID")
	if !ok {
		return
	}
	if err := dh.documentService.DeleteDocument(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (dh *DocumentHandler) Extract(c *gin.Context) {
	id, ok := parseIDParam(c, "documentID")
	if !ok {
		return
	}
	var req struct {
		JSONSchema map[string]interface{} `json:"json_schema"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	result, err := dh.documentService.ExtractDocumentData(c.Request.Context(), id, req.JSONSchema)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
