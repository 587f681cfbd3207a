package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/pkg/apperror"
)

// ConfigurationService manages tax and printer configurations
type ConfigurationService struct {
	taxRepo     repository.TaxConfigurationRepository
	printerRepo repository.PrinterConfigurationRepository
}

// NewConfigurationService creates a new configuration service
func NewConfigurationService(
	taxRepo repository.TaxConfigurationRepository,
	printerRepo repository.PrinterConfigurationRepository,
) *ConfigurationService {
	return &ConfigurationService{taxRepo: taxRepo, printerRepo: printerRepo}
}

// TaxConfigurationInput represents the tax configuration input
type TaxConfigurationInput struct {
	Name        string
	Rate        decimal.Decimal
	Description string
	IsDefault   bool
	IsActive    bool
}

func validateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return apperror.NewBadRequestError("Tax rate must be between 0 and 1")
	}
	return nil
}

// CreateTaxConfiguration adds a tax configuration. Marking it default
// clears the previous default atomically.
func (s *ConfigurationService) CreateTaxConfiguration(ctx context.Context, input *TaxConfigurationInput) (*entity.TaxConfiguration, error) {
	if err := validateTaxRate(input.Rate); err != nil {
		return nil, err
	}

	cfg := &entity.TaxConfiguration{
		Name:        input.Name,
		Rate:        input.Rate,
		Description: input.Description,
		IsDefault:   input.IsDefault,
		IsActive:    input.IsActive,
	}
	if err := s.taxRepo.Create(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateTaxConfiguration updates a tax configuration
func (s *ConfigurationService) UpdateTaxConfiguration(ctx context.Context, id uuid.UUID, input *TaxConfigurationInput) (*entity.TaxConfiguration, error) {
	if err := validateTaxRate(input.Rate); err != nil {
		return nil, err
	}

	cfg, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, apperror.NewNotFoundError("Tax configuration")
	}

	cfg.Name = input.Name
	cfg.Rate = input.Rate
	cfg.Description = input.Description
	cfg.IsDefault = input.IsDefault
	cfg.IsActive = input.IsActive

	if err := s.taxRepo.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DeleteTaxConfiguration removes a tax configuration. The default
// configuration cannot be deleted while it is the default.
func (s *ConfigurationService) DeleteTaxConfiguration(ctx context.Context, id uuid.UUID) error {
	cfg, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cfg == nil {
		return apperror.NewNotFoundError("Tax configuration")
	}
	if cfg.IsDefault {
		return apperror.NewBadRequestError("Cannot delete the default tax configuration")
	}
	return s.taxRepo.Delete(ctx, id)
}

// ListTaxConfigurations returns all tax configurations
func (s *ConfigurationService) ListTaxConfigurations(ctx context.Context) ([]entity.TaxConfiguration, error) {
	return s.taxRepo.List(ctx)
}

// GetDefaultTaxConfiguration returns the active default tax configuration
func (s *ConfigurationService) GetDefaultTaxConfiguration(ctx context.Context) (*entity.TaxConfiguration, error) {
	cfg, err := s.taxRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, apperror.NewNotFoundError("Default tax configuration")
	}
	return cfg, nil
}

// PrinterConfigurationInput represents the printer configuration input
type PrinterConfigurationInput struct {
	Name           string
	Type           enum.PrinterType
	ConnectionType enum.ConnectionType
	IPAddress      string
	Port           int
	DevicePath     string
	PaperWidth     int
	IsDefault      bool
	IsActive       bool
}

func (in *PrinterConfigurationInput) validate() error {
	if !in.Type.Valid() {
		return apperror.NewBadRequestError("Unknown printer type: " + string(in.Type))
	}
	if !in.ConnectionType.Valid() {
		return apperror.NewBadRequestError("Unknown connection type: " + string(in.ConnectionType))
	}
	if in.ConnectionType == enum.ConnectionTypeNetwork && in.IPAddress == "" {
		return apperror.NewBadRequestError("Network printers require an IP address")
	}
	return nil
}

// CreatePrinterConfiguration adds a printer configuration
func (s *ConfigurationService) CreatePrinterConfiguration(ctx context.Context, input *PrinterConfigurationInput) (*entity.PrinterConfiguration, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	cfg := &entity.PrinterConfiguration{
		Name:           input.Name,
		Type:           input.Type,
		ConnectionType: input.ConnectionType,
		IPAddress:      input.IPAddress,
		Port:           input.Port,
		DevicePath:     input.DevicePath,
		PaperWidth:     input.PaperWidth,
		IsDefault:      input.IsDefault,
		IsActive:       input.IsActive,
	}
	if err := s.printerRepo.Create(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdatePrinterConfiguration updates a printer configuration
func (s *ConfigurationService) UpdatePrinterConfiguration(ctx context.Context, id uuid.UUID, input *PrinterConfigurationInput) (*entity.PrinterConfiguration, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	cfg, err := s.printerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, apperror.NewNotFoundError("Printer configuration")
	}

	cfg.Name = input.Name
	cfg.Type = input.Type
	cfg.ConnectionType = input.ConnectionType
	cfg.IPAddress = input.IPAddress
	cfg.Port = input.Port
	cfg.DevicePath = input.DevicePath
	cfg.PaperWidth = input.PaperWidth
	cfg.IsDefault = input.IsDefault
	cfg.IsActive = input.IsActive

	if err := s.printerRepo.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DeletePrinterConfiguration removes a printer configuration
func (s *ConfigurationService) DeletePrinterConfiguration(ctx context.Context, id uuid.UUID) error {
	cfg, err := s.printerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cfg == nil {
		return apperror.NewNotFoundError("Printer configuration")
	}
	return s.printerRepo.Delete(ctx, id)
}

// ListPrinterConfigurations returns all printer configurations
func (s *ConfigurationService) ListPrinterConfigurations(ctx context.Context) ([]entity.PrinterConfiguration, error) {
	return s.printerRepo.List(ctx)
}
