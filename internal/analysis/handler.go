package analysis

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"admit-backend/internal/documents"
	"admit-backend/internal/shared/server/middleware"
	"admit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/:id/analyze", h.runAnalysis)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

type runAnalysisRequest struct {
	DocumentType string `json:"documentType"`
	WebsiteHint  string `json:"websiteHint"`
	Nationality  string `json:"nationality"`
}

func (h *Handler) runAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")
	if documentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document id is required", nil)
		return
	}

	var req runAnalysisRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	c.Set("documentId", documentID)

	record, err := h.Svc.Run(c.Request.Context(), userID, RunInput{
		DocumentID:   documentID,
		DocumentType: req.DocumentType,
		WebsiteHint:  req.WebsiteHint,
		Nationality:  req.Nationality,
	})
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrQuotaExceeded):
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", "You've reached your analysis limit. Upgrade your plan to continue.", []map[string]string{
				{"field": "quota", "issue": "limit_reached"},
			})
		case errors.Is(err, ErrDocumentUnreadable):
			respond.Error(c, http.StatusUnprocessableEntity, "document_unreadable", "The document contains too little readable text to analyze.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run analysis", nil)
		}
		return
	}

	c.Set("analysisId", record.ID)
	c.Set("statusTransition", "submitted->"+record.Status)

	respond.JSON(c, http.StatusOK, toRecordResponse(record))
}

func (h *Handler) getAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	recordID := c.Param("id")
	if recordID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return
	}

	record, err := h.Svc.Get(c.Request.Context(), recordID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}
	if record.UserID != userID {
		respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		return
	}

	respond.JSON(c, http.StatusOK, toRecordResponse(record))
}

func (h *Handler) listAnalyses(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	records, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}

	resp := make([]gin.H, 0, len(records))
	for _, record := range records {
		item := gin.H{
			"analysisId":   record.ID,
			"documentId":   record.DocumentID,
			"documentType": record.DocumentType,
			"status":       record.Status,
			"createdAt":    record.CreatedAt,
		}
		if record.Status == StatusCompleted && record.Result != nil {
			item["summary"] = record.Result.StrategicAnalysis.Summary
			item["analysisScore"] = record.Result.StrategicAnalysis.AnalysisScore
			item["degraded"] = record.Metadata != nil && record.Metadata.Degraded
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func toRecordResponse(record Record) gin.H {
	resp := gin.H{
		"analysisId":   record.ID,
		"documentId":   record.DocumentID,
		"documentType": record.DocumentType,
		"status":       record.Status,
		"createdAt":    record.CreatedAt,
	}
	if record.Result != nil {
		resp["result"] = record.Result
	}
	if record.Metadata != nil {
		resp["metadata"] = record.Metadata
	}
	if record.ErrorCode != "" {
		resp["errorCode"] = record.ErrorCode
		resp["errorMessage"] = record.ErrorMessage
	}
	return resp
}
