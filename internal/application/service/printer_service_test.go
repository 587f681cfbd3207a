package service

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/pkg/printer"
)

type mockPrinterConfigRepo struct {
	byID       map[uuid.UUID]*entity.PrinterConfiguration
	defaultCfg *entity.PrinterConfiguration
}

func (m *mockPrinterConfigRepo) Create(ctx context.Context, cfg *entity.PrinterConfiguration) error {
	return nil
}
func (m *mockPrinterConfigRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PrinterConfiguration, error) {
	return m.byID[id], nil
}
func (m *mockPrinterConfigRepo) GetDefault(ctx context.Context) (*entity.PrinterConfiguration, error) {
	return m.defaultCfg, nil
}
func (m *mockPrinterConfigRepo) Update(ctx context.Context, cfg *entity.PrinterConfiguration) error {
	return nil
}
func (m *mockPrinterConfigRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (m *mockPrinterConfigRepo) List(ctx context.Context) ([]entity.PrinterConfiguration, error) {
	return nil, nil
}

func testVenue() VenueInfo {
	return VenueInfo{
		Name:        "THE LOFT COIMBATORE",
		Tagline:     "Theatre Concessions",
		URL:         "www.theloftcinemas.com",
		FooterLines: []string{"Thank you for visiting!", "Enjoy the show!"},
	}
}

func sampleOrder() *entity.Order {
	return &entity.Order{
		ID:           uuid.New(),
		OrderNumber:  "ORD-20260828-0007",
		CustomerName: "Asha",
		Subtotal:     decimal.RequireFromString("390.00"),
		TaxRate:      decimal.RequireFromString("0.18"),
		TaxAmount:    decimal.RequireFromString("70.20"),
		TotalAmount:  decimal.RequireFromString("460.20"),
		CreatedAt:    time.Date(2026, 8, 28, 19, 30, 0, 0, time.UTC),
		CreatedBy:    entity.User{FirstName: "Ravi"},
		Items: []entity.OrderItem{
			{
				Product:    entity.Product{Name: "Caramel Popcorn"},
				Quantity:   2,
				UnitPrice:  decimal.RequireFromString("150.00"),
				TotalPrice: decimal.RequireFromString("300.00"),
			},
			{
				Product:    entity.Product{Name: "Cola Large"},
				Quantity:   1,
				UnitPrice:  decimal.RequireFromString("90.00"),
				TotalPrice: decimal.RequireFromString("90.00"),
				Notes:      "no ice",
			},
		},
	}
}

func TestBuildReceiptMapsOrder(t *testing.T) {
	svc := NewPrinterService(&mockOrderRepo{}, &mockPrinterConfigRepo{}, testVenue(), nil, 0)
	r := svc.BuildReceipt(sampleOrder())

	assert.Equal(t, "THE LOFT COIMBATORE", r.Header.VenueName)
	assert.Equal(t, "ORD-20260828-0007", r.OrderNumber)
	assert.Equal(t, "Ravi", r.Cashier)
	require.Len(t, r.Items, 2)
	assert.Equal(t, "Caramel Popcorn", r.Items[0].Name)
	assert.Equal(t, "no ice", r.Items[1].Note)
	assert.Equal(t, "460.20", r.Total.StringFixed(2))
}

func TestFormatReceiptLayout(t *testing.T) {
	svc := NewPrinterService(&mockOrderRepo{}, &mockPrinterConfigRepo{}, testVenue(), nil, 0)
	r := svc.BuildReceipt(sampleOrder())
	raw := svc.FormatReceipt(r, 80)
	text := string(raw)

	assert.Contains(t, text, "THE LOFT COIMBATORE")
	assert.Contains(t, text, "Order: ORD-20260828-0007")
	assert.Contains(t, text, "Caramel Popcorn")
	assert.Contains(t, text, "Subtotal: 390.00")
	assert.Contains(t, text, "Tax (18%): 70.20")
	assert.Contains(t, text, "TOTAL: 460.20")
	assert.Contains(t, text, "  * no ice")
	assert.Contains(t, text, "Thank you for visiting!")

	// Totals lines are left-aligned, padded with spaces to the paper
	// width, with TOTAL between = rules.
	lines := strings.Split(text, "\n")
	totalIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "Subtotal:") || strings.HasPrefix(line, "Tax (") || strings.HasPrefix(line, "TOTAL:") {
			assert.Len(t, line, 80)
			assert.True(t, strings.HasSuffix(line, " "))
		}
		if strings.HasPrefix(line, "TOTAL:") {
			totalIdx = i
		}
	}
	require.Positive(t, totalIdx)
	rule := strings.Repeat("=", 80)
	assert.Equal(t, rule, lines[totalIdx-1])
	assert.Equal(t, rule, lines[totalIdx+1])
}

func TestFormatReceiptEndsWithCutCommand(t *testing.T) {
	svc := NewPrinterService(&mockOrderRepo{}, &mockPrinterConfigRepo{}, testVenue(), nil, 0)
	r := svc.BuildReceipt(sampleOrder())
	raw := svc.FormatReceipt(r, 80)

	assert.True(t, bytes.HasSuffix(raw, []byte{0x1D, 0x56, 0x00}))
}

func TestFormatReceiptOmitsZeroDiscount(t *testing.T) {
	svc := NewPrinterService(&mockOrderRepo{}, &mockPrinterConfigRepo{}, testVenue(), nil, 0)

	r := svc.BuildReceipt(sampleOrder())
	assert.NotContains(t, string(svc.FormatReceipt(r, 80)), "Discount")

	r.Discount = decimal.RequireFromString("20.00")
	assert.Contains(t, string(svc.FormatReceipt(r, 80)), "Discount: -20.00")
}

func TestFormatReceiptTruncatesLongNames(t *testing.T) {
	svc := NewPrinterService(&mockOrderRepo{}, &mockPrinterConfigRepo{}, testVenue(), nil, 0)
	order := sampleOrder()
	order.Items[0].Product.Name = strings.Repeat("Extra Large Combo Meal ", 4)

	raw := svc.FormatReceipt(svc.BuildReceipt(order), 80)
	for _, line := range strings.Split(string(raw), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 80)
	}
}

func TestPrintOrderReceiptUnsupportedConnection(t *testing.T) {
	order := sampleOrder()
	orderRepo := &mockOrderRepo{
		getWithDetailsFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return order, nil
		},
	}
	printerRepo := &mockPrinterConfigRepo{
		defaultCfg: &entity.PrinterConfiguration{
			Name:           "Counter USB",
			Type:           enum.PrinterTypeThermal,
			ConnectionType: enum.ConnectionTypeUSB,
			PaperWidth:     80,
		},
	}

	svc := NewPrinterService(orderRepo, printerRepo, testVenue(), nil, 0)
	result, err := svc.PrintOrderReceipt(context.Background(), order.ID, nil)
	require.NoError(t, err)

	// The rendered receipt is still returned for on-screen fallback.
	assert.False(t, result.Printed)
	assert.ErrorIs(t, result.Err, printer.ErrUnsupportedConnection)
	assert.NotNil(t, result.Receipt)
	assert.NotEmpty(t, result.Raw)
}

func TestPrintOrderReceiptNoPrinterConfigured(t *testing.T) {
	orderRepo := &mockOrderRepo{
		getWithDetailsFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return sampleOrder(), nil
		},
	}

	svc := NewPrinterService(orderRepo, &mockPrinterConfigRepo{}, testVenue(), nil, 0)
	_, err := svc.PrintOrderReceipt(context.Background(), uuid.New(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Default printer configuration not found")
}

func TestPrintOrderReceiptUsesFallbackPrinter(t *testing.T) {
	orderRepo := &mockOrderRepo{
		getWithDetailsFn: func(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
			return sampleOrder(), nil
		},
	}
	// USB fallback so dispatch stops before any network I/O.
	fallback := &entity.PrinterConfiguration{
		Name:           "Counter printer",
		ConnectionType: enum.ConnectionTypeUSB,
		PaperWidth:     80,
		IsActive:       true,
	}

	svc := NewPrinterService(orderRepo, &mockPrinterConfigRepo{}, testVenue(), fallback, 0)
	result, err := svc.PrintOrderReceipt(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Printed)
	assert.ErrorIs(t, result.Err, printer.ErrUnsupportedConnection)
	assert.NotEmpty(t, result.Raw)
}

func TestFormatReceiptItemLinesRoundTrip(t *testing.T) {
	svc := NewPrinterService(&mockOrderRepo{}, &mockPrinterConfigRepo{}, testVenue(), nil, 0)
	order := sampleOrder()
	r := svc.BuildReceipt(order)
	raw := svc.FormatReceipt(r, 80)

	// Item lines sit between the header row rule and the totals rule.
	lines := strings.Split(string(raw), "\n")
	headerIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "Item") {
			headerIdx = i
			break
		}
	}
	require.Positive(t, headerIdx)

	var parsed []entity.ReceiptItem
	for _, line := range lines[headerIdx+2:] {
		if strings.HasPrefix(line, strings.Repeat("-", 10)) {
			break
		}
		if strings.HasPrefix(line, "  * ") {
			continue
		}
		require.GreaterOrEqual(t, len(line), 56)
		qty, err := strconv.Atoi(strings.TrimSpace(line[32:40]))
		require.NoError(t, err)
		parsed = append(parsed, entity.ReceiptItem{
			Name:      strings.TrimSpace(line[:32]),
			Quantity:  qty,
			UnitPrice: decimal.RequireFromString(strings.TrimSpace(line[40:56])),
			Total:     decimal.RequireFromString(strings.TrimSpace(line[56:])),
		})
	}

	require.Len(t, parsed, len(r.Items))
	for i, want := range r.Items {
		assert.Equal(t, want.Name, parsed[i].Name)
		assert.Equal(t, want.Quantity, parsed[i].Quantity)
		assert.True(t, want.UnitPrice.Equal(parsed[i].UnitPrice))
		assert.True(t, want.Total.Equal(parsed[i].Total))
	}
}
