package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/loftpos/concessions-api/internal/domain/enum"
)

// TaxConfiguration is a named tax rate. Exactly one active configuration
// carries the default flag; order creation reads that rate.
type TaxConfiguration struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name        string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Rate        decimal.Decimal `gorm:"type:numeric(5,4);not null" json:"rate"`
	Description string          `gorm:"size:255" json:"description,omitempty"`
	IsDefault   bool            `gorm:"default:false;index" json:"is_default"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new tax configuration
func (t *TaxConfiguration) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxConfiguration model
func (TaxConfiguration) TableName() string {
	return "tax_configurations"
}

// PrinterConfiguration is one physical or virtual receipt printer.
// It is read fresh at print time, never cached.
type PrinterConfiguration struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Name           string              `gorm:"size:100;not null" json:"name"`
	Type           enum.PrinterType    `gorm:"size:20;not null" json:"type"`
	ConnectionType enum.ConnectionType `gorm:"size:20;not null" json:"connection_type"`
	IPAddress      string              `gorm:"size:100" json:"ip_address,omitempty"`
	Port           int                 `gorm:"default:9100" json:"port"`
	DevicePath     string              `gorm:"size:255" json:"device_path,omitempty"`
	PaperWidth     int                 `gorm:"default:80" json:"paper_width"`
	IsDefault      bool                `gorm:"default:false;index" json:"is_default"`
	IsActive       bool                `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new printer configuration
func (p *PrinterConfiguration) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PrinterConfiguration model
func (PrinterConfiguration) TableName() string {
	return "printer_configurations"
}
