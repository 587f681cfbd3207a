package request

// ManualPaymentRequest records a payment taken at the counter
type ManualPaymentRequest struct {
	Method        string `json:"method" binding:"required"`
	TransactionID string `json:"transaction_id" binding:"omitempty,max=100"`
}

// VerifyPaymentRequest carries the gateway checkout callback fields
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// RefundPaymentRequest represents a refund request
type RefundPaymentRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// PaymentFilterRequest represents payment filter parameters
type PaymentFilterRequest struct {
	Status    string `form:"status"`
	Method    string `form:"method"`
	OrderID   string `form:"order_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
