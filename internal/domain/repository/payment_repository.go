package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/pkg/pagination"
)

// PaymentFilterParams are the supported payment list filters
type PaymentFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.PaymentStatus
	Method     *enum.PaymentMethod
	OrderID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// PaymentRepository defines payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	// UpdateStatusIf moves the payment to status to only when the stored
	// status still equals from; returns false on a stale read.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enum.PaymentStatus, failureReason string) (bool, error)
}
