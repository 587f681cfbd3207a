package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups products on the menu (snacks, beverages, combos).
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Product is one sellable catalog item. Price is the authoritative
// unit price; orders snapshot it at creation time.
type Product struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	Description       string          `gorm:"size:500" json:"description,omitempty"`
	Price             decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CostPrice         decimal.Decimal `gorm:"type:numeric(10,2)" json:"cost_price,omitempty"`
	ImageURL          string          `gorm:"size:500" json:"image_url,omitempty"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`
	StockQuantity     int             `gorm:"default:0" json:"stock_quantity"`
	LowStockThreshold int             `gorm:"default:10" json:"low_stock_threshold"`
	CategoryID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
