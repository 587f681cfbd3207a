package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/pkg/pagination"
)

// OrderFilterParams are the supported order list filters
type OrderFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.OrderStatus
	PaymentStatus *enum.OrderPaymentStatus
	StartDate     *time.Time
	EndDate       *time.Time
}

// OrderRepository defines order data access
type OrderRepository interface {
	// CreateWithItems persists the order and its items in one transaction.
	CreateWithItems(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithDetails loads the order with items, products and creator.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// UpdateStatusIf transitions status only when the stored status still
	// equals from; returns false when a concurrent writer got there first.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error)
	// CancelIf cancels the order and replaces notes in the same guarded
	// update, so reason and status move together.
	CancelIf(ctx context.Context, id uuid.UUID, from enum.OrderStatus, notes string) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.OrderPaymentStatus) error
	// NextOrderSequence atomically increments and returns the per-day
	// counter for the given YYYYMMDD day key, starting at 1.
	NextOrderSequence(ctx context.Context, day string) (int, error)
}
