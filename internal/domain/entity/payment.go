package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/loftpos/concessions-api/internal/domain/enum"
)

// Payment represents one payment attempt against an order. An order may
// accumulate several attempts; at most one ends in success/refunded.
type Payment struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID        string             `gorm:"size:100;uniqueIndex;not null" json:"payment_id"`
	GatewayOrderID   string             `gorm:"size:100" json:"gateway_order_id,omitempty"`
	GatewayPaymentID string             `gorm:"size:100" json:"gateway_payment_id,omitempty"`
	GatewaySignature string             `gorm:"size:255" json:"-"`
	Amount           decimal.Decimal    `gorm:"type:numeric(10,2);not null" json:"amount"`
	Method           enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Status           enum.PaymentStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	TransactionID    string             `gorm:"size:100" json:"transaction_id,omitempty"`
	FailureReason    string             `gorm:"size:255" json:"failure_reason,omitempty"`
	OrderID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
