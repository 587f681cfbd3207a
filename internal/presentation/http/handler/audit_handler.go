package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loftpos/concessions-api/internal/application/service"
	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/response"
	"github.com/loftpos/concessions-api/pkg/pagination"
)

// AuditHandler handles audit trail HTTP requests
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List handles listing audit entries
func (h *AuditHandler) List(c *gin.Context) {
	params := &repository.AuditFilterParams{
		Pagination: &pagination.PaginationParams{},
		Action:     c.Query("action"),
		Resource:   c.Query("resource"),
		StartDate:  parseDate(c.Query("start_date")),
		EndDate:    endOfDay(parseDate(c.Query("end_date"))),
	}
	if err := c.ShouldBindQuery(params.Pagination); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err == nil {
			params.UserID = &userID
		}
	}

	result, err := h.auditService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Audit log retrieved successfully", result)
}
