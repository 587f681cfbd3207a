package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/pkg/apperror"
	"github.com/loftpos/concessions-api/pkg/gateway"
	"github.com/loftpos/concessions-api/pkg/pagination"
)

// PaymentService handles payment recording, gateway reconciliation and
// refunds
type PaymentService struct {
	paymentRepo   repository.PaymentRepository
	orderRepo     repository.OrderRepository
	gw            gateway.Gateway
	gatewaySecret string
	currency      string
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	gw gateway.Gateway,
	gatewaySecret string,
	currency string,
) *PaymentService {
	return &PaymentService{
		paymentRepo:   paymentRepo,
		orderRepo:     orderRepo,
		gw:            gw,
		gatewaySecret: gatewaySecret,
		currency:      currency,
	}
}

func newPaymentID() string {
	return "PAY-" + strings.ToUpper(uuid.New().String()[:12])
}

// payableOrder loads the order and checks it can accept a payment.
func (s *PaymentService) payableOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot take payment for a cancelled order")
	}
	if order.PaymentStatus == enum.OrderPaymentPaid {
		return nil, apperror.NewConflictError("Order is already paid")
	}
	return order, nil
}

// RecordManualPayment records a counter payment (cash, card terminal,
// UPI) taken outside the gateway and marks the order paid.
func (s *PaymentService) RecordManualPayment(ctx context.Context, orderID uuid.UUID, method enum.PaymentMethod, transactionID string) (*entity.Payment, error) {
	if !method.Valid() || !method.Manual() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid manual payment method: %s", method))
	}

	order, err := s.payableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if transactionID == "" {
		transactionID = fmt.Sprintf("%s_%d", strings.ToUpper(string(method)), time.Now().UnixMilli())
	}

	payment := &entity.Payment{
		PaymentID:     newPaymentID(),
		Amount:        order.TotalAmount,
		Method:        method,
		Status:        enum.PaymentStatusSuccess,
		TransactionID: transactionID,
		OrderID:       order.ID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, enum.OrderPaymentPaid); err != nil {
		return nil, err
	}
	return payment, nil
}

// CreateGatewayOrder registers the order with the payment gateway and
// records a pending payment attempt carrying the gateway's order id.
func (s *PaymentService) CreateGatewayOrder(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error) {
	order, err := s.payableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	gatewayOrderID, err := s.gw.CreateOrder(ctx, order.TotalAmount, s.currency, order.OrderNumber)
	if err != nil {
		return nil, apperror.NewGatewayError("Payment gateway order creation failed", err)
	}

	payment := &entity.Payment{
		PaymentID:      newPaymentID(),
		GatewayOrderID: gatewayOrderID,
		Amount:         order.TotalAmount,
		Method:         enum.PaymentMethodGateway,
		Status:         enum.PaymentStatusPending,
		OrderID:        order.ID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// VerifyGatewayPaymentInput carries the checkout callback fields
type VerifyGatewayPaymentInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// VerifyGatewayPayment validates the gateway's callback signature and,
// only when it checks out, records the success and marks the order
// paid. A bad signature writes nothing.
func (s *PaymentService) VerifyGatewayPayment(ctx context.Context, input *VerifyGatewayPaymentInput) (*entity.Payment, error) {
	if !gateway.VerifySignature(input.GatewayOrderID, input.GatewayPaymentID, input.Signature, s.gatewaySecret) {
		return nil, apperror.ErrInvalidSignature
	}

	payment, err := s.paymentRepo.GetByGatewayOrderID(ctx, input.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	ok, err := s.paymentRepo.UpdateStatusIf(ctx, payment.ID, enum.PaymentStatusPending, enum.PaymentStatusSuccess, "")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Payment was already processed")
	}

	// The gateway payment id and signature are kept for later audits.
	payment.GatewayPaymentID = input.GatewayPaymentID
	payment.GatewaySignature = input.Signature
	payment.Status = enum.PaymentStatusSuccess
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, payment.OrderID, enum.OrderPaymentPaid); err != nil {
		return nil, err
	}
	return payment, nil
}

// RefundPayment refunds a successful payment. For gateway payments the
// remote refund runs first; when it fails, nothing changes locally.
func (s *PaymentService) RefundPayment(ctx context.Context, paymentID uuid.UUID, reason string) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	if payment.Status != enum.PaymentStatusSuccess {
		return nil, apperror.NewBadRequestError("Only successful payments can be refunded")
	}

	if payment.Method == enum.PaymentMethodGateway {
		if err := s.gw.Refund(ctx, payment.GatewayPaymentID, payment.Amount, reason); err != nil {
			return nil, apperror.NewGatewayError("Payment gateway refund failed", err)
		}
	}

	ok, err := s.paymentRepo.UpdateStatusIf(ctx, payment.ID, enum.PaymentStatusSuccess, enum.PaymentStatusRefunded, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Payment was already refunded")
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, payment.OrderID, enum.OrderPaymentRefunded); err != nil {
		return nil, err
	}

	payment.Status = enum.PaymentStatusRefunded
	payment.FailureReason = reason
	return payment, nil
}

// GetPayment returns one payment by id
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments returns payments matching the filters
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(payments, p), nil
}
