package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/pkg/apperror"
	"github.com/loftpos/concessions-api/pkg/email"
	"github.com/loftpos/concessions-api/pkg/money"
	"github.com/loftpos/concessions-api/pkg/pagination"
)

// OrderService handles order-related operations
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	taxRepo     repository.TaxConfigurationRepository
	emailSvc    *email.EmailService
	venueName   string
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	taxRepo repository.TaxConfigurationRepository,
	emailSvc *email.EmailService,
	venueName string,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		taxRepo:     taxRepo,
		emailSvc:    emailSvc,
		venueName:   venueName,
	}
}

// OrderItemInput represents one requested item line
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Notes     string
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	DiscountAmount decimal.Decimal
	Notes          string
	Items          []OrderItemInput
	CreatedByID    uuid.UUID
}

// CreateOrder creates an order, pricing every line from the current
// catalog. Client-supplied prices are never trusted.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order must contain at least one item")
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	lines := make([]money.Line, 0, len(input.Items))
	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !product.IsActive {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Product %s is not available", product.Name))
		}
		lines = append(lines, money.Line{Quantity: item.Quantity, UnitPrice: product.Price})
	}

	taxRate := decimal.Zero
	taxCfg, err := s.taxRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if taxCfg != nil {
		taxRate = taxCfg.Rate
	}

	totals, err := money.Calculate(lines, taxRate, input.DiscountAmount)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.nextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		OrderNumber:    orderNumber,
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.CustomerEmail,
		CustomerPhone:  input.CustomerPhone,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.Tax,
		TaxRate:        taxRate,
		DiscountAmount: totals.Discount,
		TotalAmount:    totals.Total,
		Status:         enum.OrderStatusDraft,
		PaymentStatus:  enum.OrderPaymentPending,
		Notes:          input.Notes,
		CreatedByID:    input.CreatedByID,
	}

	items := make([]entity.OrderItem, 0, len(input.Items))
	for i, item := range input.Items {
		product := productMap[item.ProductID]
		items = append(items, entity.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  product.Price,
			TotalPrice: totals.LineTotals[i],
			Notes:      item.Notes,
		})
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithDetails(ctx, order.ID)
}

// nextOrderNumber builds the ORD-YYYYMMDD-NNNN number from the per-day
// counter, which restarts at 1 every day.
func (s *OrderService) nextOrderNumber(ctx context.Context) (string, error) {
	day := time.Now().Format("20060102")
	seq, err := s.orderRepo.NextOrderSequence(ctx, day)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%04d", day, seq), nil
}

// GetOrder returns an order with items, products, creator and payments
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders returns orders matching the filters
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, p), nil
}

// UpdateStatus moves the order to the requested status. The transition
// is validated against the lifecycle table and applied with a guarded
// update; a concurrent change surfaces as a conflict.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, next enum.OrderStatus) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if err := order.Status.ValidateTransition(next); err != nil {
		return nil, err
	}

	ok, err := s.orderRepo.UpdateStatusIf(ctx, id, order.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Order status changed concurrently, please retry")
	}

	if next == enum.OrderStatusCompleted {
		s.sendConfirmationEmail(order)
	}

	return s.orderRepo.GetWithDetails(ctx, id)
}

// CancelOrder cancels the order with a reason. Completed orders can
// never be cancelled; any other non-terminal state can.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID, reason string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if err := order.Status.ValidateTransition(enum.OrderStatusCancelled); err != nil {
		return nil, err
	}

	notes := order.Notes
	if reason != "" {
		if notes != "" {
			notes += "\n"
		}
		notes += "Cancellation reason: " + reason
	}

	ok, err := s.orderRepo.CancelIf(ctx, id, order.Status, notes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Order status changed concurrently, please retry")
	}

	return s.orderRepo.GetWithDetails(ctx, id)
}

func (s *OrderService) sendConfirmationEmail(order *entity.Order) {
	if s.emailSvc == nil || order.CustomerEmail == "" {
		return
	}

	go func() {
		err := s.emailSvc.SendOrderConfirmation(order.CustomerEmail, email.OrderConfirmation{
			OrderNumber:  order.OrderNumber,
			CustomerName: order.CustomerName,
			Total:        order.TotalAmount.StringFixed(2),
			VenueName:    s.venueName,
		})
		if err != nil {
			log.Printf("Failed to send confirmation email for order %s: %v", order.OrderNumber, err)
		}
	}()
}
