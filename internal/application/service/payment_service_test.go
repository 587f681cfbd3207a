package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/pkg/apperror"
	"github.com/loftpos/concessions-api/pkg/gateway"
)

const testGatewaySecret = "test-secret"

// --- Mock PaymentRepository ---

type mockPaymentRepo struct {
	payments       map[uuid.UUID]*entity.Payment
	createFn       func(ctx context.Context, payment *entity.Payment) error
	updateStatusFn func(ctx context.Context, id uuid.UUID, from, to enum.PaymentStatus, failureReason string) (bool, error)
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if m.createFn != nil {
		return m.createFn(ctx, payment)
	}
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	m.payments[payment.ID] = payment
	return nil
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return m.payments[id], nil
}

func (m *mockPaymentRepo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Payment, error) {
	for _, p := range m.payments {
		if p.GatewayOrderID == gatewayOrderID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	m.payments[payment.ID] = payment
	return nil
}

func (m *mockPaymentRepo) List(ctx context.Context, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	return nil, 0, nil
}

func (m *mockPaymentRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enum.PaymentStatus, failureReason string) (bool, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, from, to, failureReason)
	}
	p, ok := m.payments[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	if failureReason != "" {
		p.FailureReason = failureReason
	}
	return true, nil
}

// --- Mock Gateway ---

type mockGateway struct {
	createOrderFn func(ctx context.Context, amount decimal.Decimal, currency, receiptRef string) (string, error)
	refundFn      func(ctx context.Context, gatewayPaymentID string, amount decimal.Decimal, reason string) error
	refundCalls   int
}

func (m *mockGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receiptRef string) (string, error) {
	if m.createOrderFn != nil {
		return m.createOrderFn(ctx, amount, currency, receiptRef)
	}
	return "order_remote123", nil
}

func (m *mockGateway) Refund(ctx context.Context, gatewayPaymentID string, amount decimal.Decimal, reason string) error {
	m.refundCalls++
	if m.refundFn != nil {
		return m.refundFn(ctx, gatewayPaymentID, amount, reason)
	}
	return nil
}

func payableOrderRepo(order *entity.Order) *mockOrderRepo {
	return &mockOrderRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return order, nil
		},
	}
}

func newPaymentService(paymentRepo *mockPaymentRepo, orderRepo *mockOrderRepo, gw *mockGateway) *PaymentService {
	return NewPaymentService(paymentRepo, orderRepo, gw, testGatewaySecret, "INR")
}

func TestRecordManualPaymentMarksOrderPaid(t *testing.T) {
	order := &entity.Order{
		ID:            uuid.New(),
		TotalAmount:   decimal.RequireFromString("460.20"),
		Status:        enum.OrderStatusConfirmed,
		PaymentStatus: enum.OrderPaymentPending,
	}
	var orderMarked enum.OrderPaymentStatus
	orderRepo := payableOrderRepo(order)
	orderRepo.updatePaymentStatusFn = func(ctx context.Context, id uuid.UUID, status enum.OrderPaymentStatus) error {
		orderMarked = status
		return nil
	}
	paymentRepo := newMockPaymentRepo()

	svc := newPaymentService(paymentRepo, orderRepo, &mockGateway{})
	payment, err := svc.RecordManualPayment(context.Background(), order.ID, enum.PaymentMethodCash, "")
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, "460.20", payment.Amount.StringFixed(2))
	assert.Equal(t, enum.OrderPaymentPaid, orderMarked)
	assert.NotEmpty(t, payment.PaymentID)
}

func TestRecordManualPaymentSynthesizesTransactionID(t *testing.T) {
	order := &entity.Order{
		ID:            uuid.New(),
		TotalAmount:   decimal.RequireFromString("120.00"),
		Status:        enum.OrderStatusConfirmed,
		PaymentStatus: enum.OrderPaymentPending,
	}
	svc := newPaymentService(newMockPaymentRepo(), payableOrderRepo(order), &mockGateway{})

	payment, err := svc.RecordManualPayment(context.Background(), order.ID, enum.PaymentMethodCash, "")
	require.NoError(t, err)
	assert.Regexp(t, `^CASH_\d+$`, payment.TransactionID)

	payment, err = svc.RecordManualPayment(context.Background(), order.ID, enum.PaymentMethodUPI, "UPI-REF-991")
	require.NoError(t, err)
	assert.Equal(t, "UPI-REF-991", payment.TransactionID)
}

func TestRecordManualPaymentRejectsGatewayMethod(t *testing.T) {
	svc := newPaymentService(newMockPaymentRepo(), payableOrderRepo(nil), &mockGateway{})
	_, err := svc.RecordManualPayment(context.Background(), uuid.New(), enum.PaymentMethodGateway, "")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestRecordManualPaymentCancelledOrder(t *testing.T) {
	order := &entity.Order{ID: uuid.New(), Status: enum.OrderStatusCancelled}
	svc := newPaymentService(newMockPaymentRepo(), payableOrderRepo(order), &mockGateway{})
	_, err := svc.RecordManualPayment(context.Background(), order.ID, enum.PaymentMethodCash, "")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestRecordManualPaymentAlreadyPaid(t *testing.T) {
	order := &entity.Order{ID: uuid.New(), Status: enum.OrderStatusConfirmed, PaymentStatus: enum.OrderPaymentPaid}
	svc := newPaymentService(newMockPaymentRepo(), payableOrderRepo(order), &mockGateway{})
	_, err := svc.RecordManualPayment(context.Background(), order.ID, enum.PaymentMethodCard, "")
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreateGatewayOrderRecordsPendingAttempt(t *testing.T) {
	order := &entity.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-20260828-0007",
		TotalAmount:   decimal.RequireFromString("354.00"),
		Status:        enum.OrderStatusConfirmed,
		PaymentStatus: enum.OrderPaymentPending,
	}
	gw := &mockGateway{
		createOrderFn: func(ctx context.Context, amount decimal.Decimal, currency, receiptRef string) (string, error) {
			assert.Equal(t, "354.00", amount.StringFixed(2))
			assert.Equal(t, "INR", currency)
			assert.Equal(t, order.OrderNumber, receiptRef)
			return "order_abc", nil
		},
	}
	paymentRepo := newMockPaymentRepo()

	svc := newPaymentService(paymentRepo, payableOrderRepo(order), gw)
	payment, err := svc.CreateGatewayOrder(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, "order_abc", payment.GatewayOrderID)
	assert.Equal(t, enum.PaymentStatusPending, payment.Status)
	assert.Equal(t, enum.PaymentMethodGateway, payment.Method)
}

func TestCreateGatewayOrderFailureWritesNothing(t *testing.T) {
	order := &entity.Order{ID: uuid.New(), TotalAmount: decimal.RequireFromString("100.00")}
	gw := &mockGateway{
		createOrderFn: func(ctx context.Context, amount decimal.Decimal, currency, receiptRef string) (string, error) {
			return "", errors.New("gateway down")
		},
	}
	paymentRepo := newMockPaymentRepo()

	svc := newPaymentService(paymentRepo, payableOrderRepo(order), gw)
	_, err := svc.CreateGatewayOrder(context.Background(), order.ID)
	require.Error(t, err)
	assert.Equal(t, 502, apperror.GetAppError(err).Code)
	assert.Empty(t, paymentRepo.payments)
}

func TestVerifyGatewayPaymentSuccess(t *testing.T) {
	order := &entity.Order{ID: uuid.New()}
	var orderMarked enum.OrderPaymentStatus
	orderRepo := payableOrderRepo(order)
	orderRepo.updatePaymentStatusFn = func(ctx context.Context, id uuid.UUID, status enum.OrderPaymentStatus) error {
		orderMarked = status
		return nil
	}

	paymentRepo := newMockPaymentRepo()
	pending := &entity.Payment{
		ID:             uuid.New(),
		GatewayOrderID: "order_abc",
		Status:         enum.PaymentStatusPending,
		OrderID:        order.ID,
	}
	paymentRepo.payments[pending.ID] = pending

	sig := gateway.Signature("order_abc", "pay_xyz", testGatewaySecret)
	svc := newPaymentService(paymentRepo, orderRepo, &mockGateway{})
	payment, err := svc.VerifyGatewayPayment(context.Background(), &VerifyGatewayPaymentInput{
		GatewayOrderID:   "order_abc",
		GatewayPaymentID: "pay_xyz",
		Signature:        sig,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, "pay_xyz", payment.GatewayPaymentID)
	assert.Equal(t, enum.OrderPaymentPaid, orderMarked)
}

func TestVerifyGatewayPaymentTamperedSignatureWritesNothing(t *testing.T) {
	paymentRepo := newMockPaymentRepo()
	pending := &entity.Payment{
		ID:             uuid.New(),
		GatewayOrderID: "order_abc",
		Status:         enum.PaymentStatusPending,
		OrderID:        uuid.New(),
	}
	paymentRepo.payments[pending.ID] = pending

	svc := newPaymentService(paymentRepo, &mockOrderRepo{}, &mockGateway{})
	_, err := svc.VerifyGatewayPayment(context.Background(), &VerifyGatewayPaymentInput{
		GatewayOrderID:   "order_abc",
		GatewayPaymentID: "pay_xyz",
		Signature:        gateway.Signature("order_abc", "pay_xyz", "wrong-secret"),
	})
	require.ErrorIs(t, err, apperror.ErrInvalidSignature)
	assert.Equal(t, enum.PaymentStatusPending, pending.Status)
}

func TestVerifyGatewayPaymentReplayConflicts(t *testing.T) {
	paymentRepo := newMockPaymentRepo()
	settled := &entity.Payment{
		ID:             uuid.New(),
		GatewayOrderID: "order_abc",
		Status:         enum.PaymentStatusSuccess,
		OrderID:        uuid.New(),
	}
	paymentRepo.payments[settled.ID] = settled

	sig := gateway.Signature("order_abc", "pay_xyz", testGatewaySecret)
	svc := newPaymentService(paymentRepo, &mockOrderRepo{}, &mockGateway{})
	_, err := svc.VerifyGatewayPayment(context.Background(), &VerifyGatewayPaymentInput{
		GatewayOrderID:   "order_abc",
		GatewayPaymentID: "pay_xyz",
		Signature:        sig,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestRefundGatewayPaymentRefundsRemoteFirst(t *testing.T) {
	order := &entity.Order{ID: uuid.New()}
	var orderMarked enum.OrderPaymentStatus
	orderRepo := payableOrderRepo(order)
	orderRepo.updatePaymentStatusFn = func(ctx context.Context, id uuid.UUID, status enum.OrderPaymentStatus) error {
		orderMarked = status
		return nil
	}

	paymentRepo := newMockPaymentRepo()
	payment := &entity.Payment{
		ID:               uuid.New(),
		GatewayPaymentID: "pay_xyz",
		Amount:           decimal.RequireFromString("354.00"),
		Method:           enum.PaymentMethodGateway,
		Status:           enum.PaymentStatusSuccess,
		OrderID:          order.ID,
	}
	paymentRepo.payments[payment.ID] = payment
	gw := &mockGateway{}

	svc := newPaymentService(paymentRepo, orderRepo, gw)
	refunded, err := svc.RefundPayment(context.Background(), payment.ID, "show cancelled")
	require.NoError(t, err)

	assert.Equal(t, 1, gw.refundCalls)
	assert.Equal(t, enum.PaymentStatusRefunded, refunded.Status)
	assert.Equal(t, enum.OrderPaymentRefunded, orderMarked)
}

func TestRefundGatewayFailureLeavesStateUnchanged(t *testing.T) {
	paymentRepo := newMockPaymentRepo()
	payment := &entity.Payment{
		ID:               uuid.New(),
		GatewayPaymentID: "pay_xyz",
		Amount:           decimal.RequireFromString("354.00"),
		Method:           enum.PaymentMethodGateway,
		Status:           enum.PaymentStatusSuccess,
		OrderID:          uuid.New(),
	}
	paymentRepo.payments[payment.ID] = payment
	gw := &mockGateway{
		refundFn: func(ctx context.Context, gatewayPaymentID string, amount decimal.Decimal, reason string) error {
			return errors.New("refund rejected")
		},
	}

	svc := newPaymentService(paymentRepo, &mockOrderRepo{}, gw)
	_, err := svc.RefundPayment(context.Background(), payment.ID, "show cancelled")
	require.Error(t, err)
	assert.Equal(t, 502, apperror.GetAppError(err).Code)
	assert.Equal(t, enum.PaymentStatusSuccess, payment.Status)
}

func TestRefundManualPaymentSkipsGateway(t *testing.T) {
	order := &entity.Order{ID: uuid.New()}
	orderRepo := payableOrderRepo(order)
	orderRepo.updatePaymentStatusFn = func(ctx context.Context, id uuid.UUID, status enum.OrderPaymentStatus) error {
		return nil
	}

	paymentRepo := newMockPaymentRepo()
	payment := &entity.Payment{
		ID:      uuid.New(),
		Amount:  decimal.RequireFromString("200.00"),
		Method:  enum.PaymentMethodCash,
		Status:  enum.PaymentStatusSuccess,
		OrderID: order.ID,
	}
	paymentRepo.payments[payment.ID] = payment
	gw := &mockGateway{}

	svc := newPaymentService(paymentRepo, orderRepo, gw)
	refunded, err := svc.RefundPayment(context.Background(), payment.ID, "spill")
	require.NoError(t, err)
	assert.Equal(t, 0, gw.refundCalls)
	assert.Equal(t, enum.PaymentStatusRefunded, refunded.Status)
}

func TestRefundPendingPaymentRejected(t *testing.T) {
	paymentRepo := newMockPaymentRepo()
	payment := &entity.Payment{ID: uuid.New(), Status: enum.PaymentStatusPending}
	paymentRepo.payments[payment.ID] = payment

	svc := newPaymentService(paymentRepo, &mockOrderRepo{}, &mockGateway{})
	_, err := svc.RefundPayment(context.Background(), payment.ID, "oops")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
