package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/loftpos/concessions-api/internal/domain/entity"
)

// TaxConfigurationRepository defines tax configuration data access.
// Create and Update clear prior defaults in the same transaction when
// the record carries the default flag, so a reader never sees two
// defaults or none mid-swap.
type TaxConfigurationRepository interface {
	Create(ctx context.Context, cfg *entity.TaxConfiguration) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxConfiguration, error)
	GetDefault(ctx context.Context) (*entity.TaxConfiguration, error)
	Update(ctx context.Context, cfg *entity.TaxConfiguration) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.TaxConfiguration, error)
}

// PrinterConfigurationRepository defines printer configuration data
// access. Same default-flag contract as TaxConfigurationRepository.
type PrinterConfigurationRepository interface {
	Create(ctx context.Context, cfg *entity.PrinterConfiguration) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PrinterConfiguration, error)
	GetDefault(ctx context.Context) (*entity.PrinterConfiguration, error)
	Update(ctx context.Context, cfg *entity.PrinterConfiguration) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.PrinterConfiguration, error)
}
