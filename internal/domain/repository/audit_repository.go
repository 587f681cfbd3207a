package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/pkg/pagination"
)

// AuditFilterParams are the supported audit log list filters
type AuditFilterParams struct {
	Pagination *pagination.PaginationParams
	Action     string
	Resource   string
	UserID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// AuditLogRepository defines audit trail data access
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, params *AuditFilterParams) ([]entity.AuditLog, int64, error)
}
