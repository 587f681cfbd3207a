package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/loftpos/concessions-api/internal/domain/enum"
)

// Order represents one customer transaction at the concession stand.
// Monetary fields are captured at creation time and never recomputed:
// TotalAmount = Subtotal + TaxAmount - DiscountAmount.
type Order struct {
	ID             uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber    string                  `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	CustomerName   string                  `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerEmail  string                  `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerPhone  string                  `gorm:"size:50" json:"customer_phone,omitempty"`
	Subtotal       decimal.Decimal         `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal         `gorm:"type:numeric(10,2);not null" json:"tax_amount"`
	TaxRate        decimal.Decimal         `gorm:"type:numeric(5,4);not null" json:"tax_rate"`
	DiscountAmount decimal.Decimal         `gorm:"type:numeric(10,2);not null;default:0" json:"discount_amount"`
	TotalAmount    decimal.Decimal         `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Status         enum.OrderStatus        `gorm:"size:20;not null;default:draft;index" json:"status"`
	PaymentStatus  enum.OrderPaymentStatus `gorm:"size:20;not null;default:pending;index" json:"payment_status"`
	Notes          string                  `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID    uuid.UUID               `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`

	// Relationships
	CreatedBy User        `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payments  []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents one product line within an order. Unit price is
// the catalog price at creation time; later catalog changes never alter
// historical orders.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Notes      string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderCounter is the per-day sequence backing order numbers. The row
// for a day is bumped atomically so concurrent order creation never
// yields duplicate numbers.
type OrderCounter struct {
	Day string `gorm:"size:8;primary_key"`
	Seq int    `gorm:"not null"`
}

// TableName returns the table name for the OrderCounter model
func (OrderCounter) TableName() string {
	return "order_counters"
}
