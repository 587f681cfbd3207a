package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loftpos/concessions-api/internal/application/service"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/request"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/response"
	"github.com/loftpos/concessions-api/pkg/pagination"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
	auditService   *service.AuditService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService, auditService *service.AuditService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, auditService: auditService}
}

// RecordManual handles recording a counter payment for an order
func (h *PaymentHandler) RecordManual(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.ManualPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	payment, err := h.paymentService.RecordManualPayment(c.Request.Context(), orderID, enum.PaymentMethod(req.Method), req.TransactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "record_payment", "payment", payment.PaymentID, map[string]interface{}{
		"order_id": orderID,
		"method":   req.Method,
		"amount":   payment.Amount,
	})

	response.Created(c, "Payment recorded successfully", payment)
}

// CreateGatewayOrder handles registering an order with the payment gateway
func (h *PaymentHandler) CreateGatewayOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	payment, err := h.paymentService.CreateGatewayOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Gateway order created successfully", payment)
}

// Verify handles the gateway checkout callback
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req request.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	payment, err := h.paymentService.VerifyGatewayPayment(c.Request.Context(), &service.VerifyGatewayPaymentInput{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "verify_payment", "payment", payment.PaymentID, map[string]interface{}{
		"gateway_payment_id": req.GatewayPaymentID,
	})

	response.OK(c, "Payment verified successfully", payment)
}

// Refund handles refunding a payment
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	var req request.RefundPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	payment, err := h.paymentService.RefundPayment(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "refund", "payment", payment.PaymentID, map[string]interface{}{
		"reason": req.Reason,
		"amount": payment.Amount,
	})

	response.OK(c, "Payment refunded successfully", payment)
}

// Get handles fetching a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}

// List handles listing payments
func (h *PaymentHandler) List(c *gin.Context) {
	var filter request.PaymentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		StartDate: parseDate(filter.StartDate),
		EndDate:   endOfDay(parseDate(filter.EndDate)),
	}

	if filter.Status != "" {
		status := enum.PaymentStatus(filter.Status)
		params.Status = &status
	}
	if filter.Method != "" {
		method := enum.PaymentMethod(filter.Method)
		params.Method = &method
	}
	if filter.OrderID != "" {
		orderID, err := uuid.Parse(filter.OrderID)
		if err == nil {
			params.OrderID = &orderID
		}
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}
