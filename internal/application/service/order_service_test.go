package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/pkg/apperror"
)

// --- Mock OrderRepository ---

type mockOrderRepo struct {
	createWithItemsFn     func(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
	getByIDFn             func(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	getWithDetailsFn      func(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	listFn                func(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error)
	updateStatusIfFn      func(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error)
	cancelIfFn            func(ctx context.Context, id uuid.UUID, from enum.OrderStatus, notes string) (bool, error)
	updatePaymentStatusFn func(ctx context.Context, id uuid.UUID, status enum.OrderPaymentStatus) error
	nextOrderSequenceFn   func(ctx context.Context, day string) (int, error)
}

func (m *mockOrderRepo) CreateWithItems(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	if m.createWithItemsFn != nil {
		return m.createWithItemsFn(ctx, order, items)
	}
	order.ID = uuid.New()
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockOrderRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if m.getWithDetailsFn != nil {
		return m.getWithDetailsFn(ctx, id)
	}
	return &entity.Order{ID: id}, nil
}

func (m *mockOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, params)
	}
	return nil, 0, nil
}

func (m *mockOrderRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error) {
	if m.updateStatusIfFn != nil {
		return m.updateStatusIfFn(ctx, id, from, to)
	}
	return true, nil
}

func (m *mockOrderRepo) CancelIf(ctx context.Context, id uuid.UUID, from enum.OrderStatus, notes string) (bool, error) {
	if m.cancelIfFn != nil {
		return m.cancelIfFn(ctx, id, from, notes)
	}
	return true, nil
}

func (m *mockOrderRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.OrderPaymentStatus) error {
	if m.updatePaymentStatusFn != nil {
		return m.updatePaymentStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockOrderRepo) NextOrderSequence(ctx context.Context, day string) (int, error) {
	if m.nextOrderSequenceFn != nil {
		return m.nextOrderSequenceFn(ctx, day)
	}
	return 1, nil
}

// --- Mock ProductRepository ---

type mockProductRepo struct {
	getByIDsFn func(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
}

func (m *mockProductRepo) Create(ctx context.Context, product *entity.Product) error { return nil }
func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return nil, nil
}
func (m *mockProductRepo) Update(ctx context.Context, product *entity.Product) error { return nil }
func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }
func (m *mockProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

// --- Mock TaxConfigurationRepository ---

type mockTaxRepo struct {
	getDefaultFn func(ctx context.Context) (*entity.TaxConfiguration, error)
}

func (m *mockTaxRepo) Create(ctx context.Context, cfg *entity.TaxConfiguration) error { return nil }
func (m *mockTaxRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxConfiguration, error) {
	return nil, nil
}
func (m *mockTaxRepo) GetDefault(ctx context.Context) (*entity.TaxConfiguration, error) {
	if m.getDefaultFn != nil {
		return m.getDefaultFn(ctx)
	}
	return &entity.TaxConfiguration{Rate: decimal.RequireFromString("0.18"), IsDefault: true, IsActive: true}, nil
}
func (m *mockTaxRepo) Update(ctx context.Context, cfg *entity.TaxConfiguration) error { return nil }
func (m *mockTaxRepo) Delete(ctx context.Context, id uuid.UUID) error                 { return nil }
func (m *mockTaxRepo) List(ctx context.Context) ([]entity.TaxConfiguration, error) {
	return nil, nil
}

func catalogOf(products ...entity.Product) *mockProductRepo {
	return &mockProductRepo{
		getByIDsFn: func(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
			return products, nil
		},
	}
}

func newOrderService(orderRepo *mockOrderRepo, productRepo *mockProductRepo, taxRepo *mockTaxRepo) *OrderService {
	return NewOrderService(orderRepo, productRepo, taxRepo, nil, "THE LOFT COIMBATORE")
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	popcornID := uuid.New()
	colaID := uuid.New()

	var created *entity.Order
	var createdItems []entity.OrderItem
	orderRepo := &mockOrderRepo{
		createWithItemsFn: func(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
			order.ID = uuid.New()
			created = order
			createdItems = items
			return nil
		},
		getWithDetailsFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return created, nil
		},
	}
	productRepo := catalogOf(
		entity.Product{ID: popcornID, Name: "Caramel Popcorn", Price: decimal.RequireFromString("150.00"), IsActive: true},
		entity.Product{ID: colaID, Name: "Cola Large", Price: decimal.RequireFromString("90.00"), IsActive: true},
	)

	svc := newOrderService(orderRepo, productRepo, &mockTaxRepo{})
	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerName: "Asha",
		Items: []OrderItemInput{
			{ProductID: popcornID, Quantity: 2},
			{ProductID: colaID, Quantity: 1},
		},
		CreatedByID: uuid.New(),
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	// 2 x 150.00 + 1 x 90.00 = 390.00, tax 18% = 70.20
	assert.Equal(t, "390.00", created.Subtotal.StringFixed(2))
	assert.Equal(t, "70.20", created.TaxAmount.StringFixed(2))
	assert.Equal(t, "460.20", created.TotalAmount.StringFixed(2))
	assert.Equal(t, enum.OrderStatusDraft, created.Status)
	assert.Equal(t, enum.OrderPaymentPending, created.PaymentStatus)

	require.Len(t, createdItems, 2)
	assert.Equal(t, "150.00", createdItems[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "300.00", createdItems[0].TotalPrice.StringFixed(2))
}

func TestCreateOrderNumberFormat(t *testing.T) {
	productID := uuid.New()
	var created *entity.Order
	orderRepo := &mockOrderRepo{
		createWithItemsFn: func(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
			created = order
			return nil
		},
		nextOrderSequenceFn: func(ctx context.Context, day string) (int, error) {
			assert.Equal(t, time.Now().Format("20060102"), day)
			return 42, nil
		},
	}
	productRepo := catalogOf(entity.Product{ID: productID, Price: decimal.RequireFromString("10.00"), IsActive: true})

	svc := newOrderService(orderRepo, productRepo, &mockTaxRepo{})
	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		Items:       []OrderItemInput{{ProductID: productID, Quantity: 1}},
		CreatedByID: uuid.New(),
	})
	require.NoError(t, err)

	expected := fmt.Sprintf("ORD-%s-0042", time.Now().Format("20060102"))
	assert.Equal(t, expected, created.OrderNumber)
}

func TestCreateOrderConcurrentCreatorsGetDistinctNumbers(t *testing.T) {
	productID := uuid.New()

	// The counter serializes sequence allocation the way the store's
	// atomic upsert does.
	var mu sync.Mutex
	seq := 0
	orderNumbers := make(map[string]bool)
	orderRepo := &mockOrderRepo{
		nextOrderSequenceFn: func(ctx context.Context, day string) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return seq, nil
		},
		createWithItemsFn: func(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
			mu.Lock()
			defer mu.Unlock()
			require.False(t, orderNumbers[order.OrderNumber], "duplicate order number %s", order.OrderNumber)
			orderNumbers[order.OrderNumber] = true
			order.ID = uuid.New()
			return nil
		},
	}
	productRepo := catalogOf(entity.Product{ID: productID, Price: decimal.RequireFromString("10.00"), IsActive: true})
	svc := newOrderService(orderRepo, productRepo, &mockTaxRepo{})

	const creators = 25
	var wg sync.WaitGroup
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
				Items:       []OrderItemInput{{ProductID: productID, Quantity: 1}},
				CreatedByID: uuid.New(),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, orderNumbers, creators)
	assert.Equal(t, creators, seq)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, catalogOf(), &mockTaxRepo{})
	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		Items:       []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		CreatedByID: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	productID := uuid.New()
	productRepo := catalogOf(entity.Product{ID: productID, Name: "Nachos", Price: decimal.RequireFromString("120.00"), IsActive: false})

	svc := newOrderService(&mockOrderRepo{}, productRepo, &mockTaxRepo{})
	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		Items:       []OrderItemInput{{ProductID: productID, Quantity: 1}},
		CreatedByID: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateOrderEmptyItems(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, catalogOf(), &mockTaxRepo{})
	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{CreatedByID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateOrderNoDefaultTaxUsesZeroRate(t *testing.T) {
	productID := uuid.New()
	var created *entity.Order
	orderRepo := &mockOrderRepo{
		createWithItemsFn: func(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
			created = order
			return nil
		},
	}
	taxRepo := &mockTaxRepo{
		getDefaultFn: func(ctx context.Context) (*entity.TaxConfiguration, error) { return nil, nil },
	}
	productRepo := catalogOf(entity.Product{ID: productID, Price: decimal.RequireFromString("100.00"), IsActive: true})

	svc := newOrderService(orderRepo, productRepo, taxRepo)
	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		Items:       []OrderItemInput{{ProductID: productID, Quantity: 1}},
		CreatedByID: uuid.New(),
	})
	require.NoError(t, err)
	assert.True(t, created.TaxAmount.IsZero())
	assert.Equal(t, "100.00", created.TotalAmount.StringFixed(2))
}

func TestUpdateStatusValidTransition(t *testing.T) {
	orderID := uuid.New()
	var movedTo enum.OrderStatus
	orderRepo := &mockOrderRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return &entity.Order{ID: orderID, Status: enum.OrderStatusDraft}, nil
		},
		updateStatusIfFn: func(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error) {
			assert.Equal(t, enum.OrderStatusDraft, from)
			movedTo = to
			return true, nil
		},
	}

	svc := newOrderService(orderRepo, catalogOf(), &mockTaxRepo{})
	_, err := svc.UpdateStatus(context.Background(), orderID, enum.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusConfirmed, movedTo)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	orderID := uuid.New()
	orderRepo := &mockOrderRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return &entity.Order{ID: orderID, Status: enum.OrderStatusDraft}, nil
		},
	}

	svc := newOrderService(orderRepo, catalogOf(), &mockTaxRepo{})
	_, err := svc.UpdateStatus(context.Background(), orderID, enum.OrderStatusReady)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot change status from draft to ready")
}

func TestUpdateStatusConcurrentChangeConflicts(t *testing.T) {
	orderID := uuid.New()
	orderRepo := &mockOrderRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return &entity.Order{ID: orderID, Status: enum.OrderStatusConfirmed}, nil
		},
		updateStatusIfFn: func(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error) {
			return false, nil
		},
	}

	svc := newOrderService(orderRepo, catalogOf(), &mockTaxRepo{})
	_, err := svc.UpdateStatus(context.Background(), orderID, enum.OrderStatusPreparing)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCancelOrderFromReady(t *testing.T) {
	orderID := uuid.New()
	var savedNotes string
	orderRepo := &mockOrderRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return &entity.Order{ID: orderID, Status: enum.OrderStatusReady}, nil
		},
		cancelIfFn: func(ctx context.Context, id uuid.UUID, from enum.OrderStatus, notes string) (bool, error) {
			assert.Equal(t, enum.OrderStatusReady, from)
			savedNotes = notes
			return true, nil
		},
	}

	svc := newOrderService(orderRepo, catalogOf(), &mockTaxRepo{})
	_, err := svc.CancelOrder(context.Background(), orderID, "customer left")
	require.NoError(t, err)
	assert.Equal(t, "Cancellation reason: customer left", savedNotes)
}

func TestCancelOrderAppendsToExistingNotes(t *testing.T) {
	orderID := uuid.New()
	var savedNotes string
	orderRepo := &mockOrderRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return &entity.Order{ID: orderID, Status: enum.OrderStatusDraft, Notes: "extra salt"}, nil
		},
		cancelIfFn: func(ctx context.Context, id uuid.UUID, from enum.OrderStatus, notes string) (bool, error) {
			savedNotes = notes
			return true, nil
		},
	}

	svc := newOrderService(orderRepo, catalogOf(), &mockTaxRepo{})
	_, err := svc.CancelOrder(context.Background(), orderID, "double tap")
	require.NoError(t, err)
	assert.Equal(t, "extra salt\nCancellation reason: double tap", savedNotes)
}

func TestCancelCompletedOrderRejected(t *testing.T) {
	orderID := uuid.New()
	orderRepo := &mockOrderRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return &entity.Order{ID: orderID, Status: enum.OrderStatusCompleted}, nil
		},
	}

	svc := newOrderService(orderRepo, catalogOf(), &mockTaxRepo{})
	_, err := svc.CancelOrder(context.Background(), orderID, "changed mind")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot change status from completed to cancelled")
}

func TestGetOrderNotFound(t *testing.T) {
	orderRepo := &mockOrderRepo{
		getWithDetailsFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return nil, nil
		},
	}

	svc := newOrderService(orderRepo, catalogOf(), &mockTaxRepo{})
	_, err := svc.GetOrder(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
