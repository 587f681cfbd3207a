package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	domainRepo "github.com/loftpos/concessions-api/internal/domain/repository"
)

type taxConfigurationRepository struct {
	db *gorm.DB
}

// NewTaxConfigurationRepository creates a new tax configuration repository
func NewTaxConfigurationRepository(db *gorm.DB) domainRepo.TaxConfigurationRepository {
	return &taxConfigurationRepository{db: db}
}

func (r *taxConfigurationRepository) Create(ctx context.Context, cfg *entity.TaxConfiguration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cfg.IsDefault {
			if err := tx.Model(&entity.TaxConfiguration{}).
				Where("is_default = ?", true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(cfg).Error
	})
}

func (r *taxConfigurationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxConfiguration, error) {
	var cfg entity.TaxConfiguration
	err := r.db.WithContext(ctx).First(&cfg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cfg, err
}

func (r *taxConfigurationRepository) GetDefault(ctx context.Context) (*entity.TaxConfiguration, error) {
	var cfg entity.TaxConfiguration
	err := r.db.WithContext(ctx).
		First(&cfg, "is_default = ? AND is_active = ?", true, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cfg, err
}

func (r *taxConfigurationRepository) Update(ctx context.Context, cfg *entity.TaxConfiguration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cfg.IsDefault {
			if err := tx.Model(&entity.TaxConfiguration{}).
				Where("is_default = ? AND id <> ?", true, cfg.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(cfg).Error
	})
}

func (r *taxConfigurationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TaxConfiguration{}, "id = ?", id).Error
}

func (r *taxConfigurationRepository) List(ctx context.Context) ([]entity.TaxConfiguration, error) {
	var cfgs []entity.TaxConfiguration
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&cfgs).Error
	return cfgs, err
}

type printerConfigurationRepository struct {
	db *gorm.DB
}

// NewPrinterConfigurationRepository creates a new printer configuration repository
func NewPrinterConfigurationRepository(db *gorm.DB) domainRepo.PrinterConfigurationRepository {
	return &printerConfigurationRepository{db: db}
}

func (r *printerConfigurationRepository) Create(ctx context.Context, cfg *entity.PrinterConfiguration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cfg.IsDefault {
			if err := tx.Model(&entity.PrinterConfiguration{}).
				Where("is_default = ?", true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(cfg).Error
	})
}

func (r *printerConfigurationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PrinterConfiguration, error) {
	var cfg entity.PrinterConfiguration
	err := r.db.WithContext(ctx).First(&cfg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cfg, err
}

func (r *printerConfigurationRepository) GetDefault(ctx context.Context) (*entity.PrinterConfiguration, error) {
	var cfg entity.PrinterConfiguration
	err := r.db.WithContext(ctx).
		First(&cfg, "is_default = ? AND is_active = ?", true, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cfg, err
}

func (r *printerConfigurationRepository) Update(ctx context.Context, cfg *entity.PrinterConfiguration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cfg.IsDefault {
			if err := tx.Model(&entity.PrinterConfiguration{}).
				Where("is_default = ? AND id <> ?", true, cfg.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(cfg).Error
	})
}

func (r *printerConfigurationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PrinterConfiguration{}, "id = ?", id).Error
}

func (r *printerConfigurationRepository) List(ctx context.Context) ([]entity.PrinterConfiguration, error) {
	var cfgs []entity.PrinterConfiguration
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&cfgs).Error
	return cfgs, err
}
