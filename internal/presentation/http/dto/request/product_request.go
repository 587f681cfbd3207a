package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name              string    `json:"name" binding:"required,min=2,max=255"`
	Description       string    `json:"description" binding:"omitempty,max=500"`
	Price             string    `json:"price" binding:"required"`
	CostPrice         string    `json:"cost_price" binding:"omitempty"`
	ImageURL          string    `json:"image_url" binding:"omitempty,max=500"`
	StockQuantity     int       `json:"stock_quantity" binding:"min=0"`
	LowStockThreshold int       `json:"low_stock_threshold" binding:"min=0"`
	CategoryID        uuid.UUID `json:"category_id" binding:"required"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name              *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Description       *string    `json:"description" binding:"omitempty,max=500"`
	Price             *string    `json:"price"`
	CostPrice         *string    `json:"cost_price"`
	ImageURL          *string    `json:"image_url" binding:"omitempty,max=500"`
	IsActive          *bool      `json:"is_active"`
	StockQuantity     *int       `json:"stock_quantity" binding:"omitempty,min=0"`
	LowStockThreshold *int       `json:"low_stock_threshold" binding:"omitempty,min=0"`
	CategoryID        *uuid.UUID `json:"category_id"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	ActiveOnly bool   `form:"active_only"`
	LowStock   bool   `form:"low_stock"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CategoryRequest represents a category create or update request
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=255"`
}
