package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loftpos/concessions-api/internal/application/service"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/request"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/response"
	"github.com/loftpos/concessions-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	auditService *service.AuditService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, auditService *service.AuditService) *OrderHandler {
	return &OrderHandler{orderService: orderService, auditService: auditService}
}

// Create handles order creation
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	discount := decimal.Zero
	if req.DiscountAmount != "" {
		var err error
		discount, err = decimal.NewFromString(req.DiscountAmount)
		if err != nil {
			response.BadRequest(c, "Invalid discount amount")
			return
		}
	}

	input := &service.CreateOrderInput{
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		DiscountAmount: discount,
		Notes:          req.Notes,
		CreatedByID:    *userID,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "create", "order", order.ID.String(), map[string]interface{}{
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
	})

	response.Created(c, "Order created successfully", order)
}

// Get handles fetching a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter request.OrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		StartDate: parseDate(filter.StartDate),
		EndDate:   endOfDay(parseDate(filter.EndDate)),
	}

	if filter.Status != "" {
		status := enum.OrderStatus(filter.Status)
		if !status.Valid() {
			response.BadRequest(c, "Unknown order status: "+filter.Status)
			return
		}
		params.Status = &status
	}
	if filter.PaymentStatus != "" {
		ps := enum.OrderPaymentStatus(filter.PaymentStatus)
		params.PaymentStatus = &ps
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// UpdateStatus handles order status transitions
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, enum.OrderStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "update_status", "order", id.String(), map[string]interface{}{
		"status": req.Status,
	})

	response.OK(c, "Order status updated successfully", order)
}

// Cancel handles order cancellation
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "cancel", "order", id.String(), map[string]interface{}{
		"reason": req.Reason,
	})

	response.OK(c, "Order cancelled successfully", order)
}
