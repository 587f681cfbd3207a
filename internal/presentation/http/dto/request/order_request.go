package request

import "github.com/google/uuid"

// OrderItemRequest is one requested line in an order
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Notes     string    `json:"notes" binding:"omitempty,max=500"`
}

// CreateOrderRequest represents an order creation request. Prices are
// deliberately absent; the server prices every line from the catalog.
type CreateOrderRequest struct {
	CustomerName   string             `json:"customer_name" binding:"omitempty,max=255"`
	CustomerEmail  string             `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone  string             `json:"customer_phone" binding:"omitempty,max=50"`
	DiscountAmount string             `json:"discount_amount" binding:"omitempty"`
	Notes          string             `json:"notes" binding:"omitempty,max=1000"`
	Items          []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest represents a status change request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CancelOrderRequest represents an order cancellation request
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
