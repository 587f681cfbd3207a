package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/pkg/pagination"
)

// Actor identifies who performed an audited action and from where.
type Actor struct {
	UserID    uuid.UUID
	Email     string
	IPAddress string
	UserAgent string
}

// AuditService records and lists the audit trail
type AuditService struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record writes one audit entry. Failures are logged and swallowed so
// auditing never breaks the operation being audited.
func (s *AuditService) Record(ctx context.Context, actor Actor, action, resource, resourceID string, changes map[string]interface{}) {
	entry := &entity.AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		UserID:     actor.UserID,
		UserEmail:  actor.Email,
		IPAddress:  actor.IPAddress,
		UserAgent:  actor.UserAgent,
	}

	if len(changes) > 0 {
		if data, err := json.Marshal(changes); err == nil {
			entry.Changes = string(data)
		}
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to write audit log entry for %s %s: %v", action, resource, err)
	}
}

// List returns audit entries matching the filters
func (s *AuditService) List(ctx context.Context, params *repository.AuditFilterParams) (*pagination.PaginatedResult[entity.AuditLog], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	logs, total, err := s.auditRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(logs, p), nil
}
