package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/pkg/apperror"
	"github.com/loftpos/concessions-api/pkg/printer"
)

var hundred = decimal.NewFromInt(100)

// VenueInfo is the static receipt header and footer text.
type VenueInfo struct {
	Name        string
	Tagline     string
	URL         string
	FooterLines []string
}

// PrinterService renders receipts and dispatches them to a printer.
// fallback covers fresh installs where no printer configuration has
// been stored yet; timeout zero uses the transport default.
type PrinterService struct {
	orderRepo   repository.OrderRepository
	printerRepo repository.PrinterConfigurationRepository
	venue       VenueInfo
	fallback    *entity.PrinterConfiguration
	timeout     time.Duration
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	orderRepo repository.OrderRepository,
	printerRepo repository.PrinterConfigurationRepository,
	venue VenueInfo,
	fallback *entity.PrinterConfiguration,
	timeout time.Duration,
) *PrinterService {
	return &PrinterService{
		orderRepo:   orderRepo,
		printerRepo: printerRepo,
		venue:       venue,
		fallback:    fallback,
		timeout:     timeout,
	}
}

// BuildReceipt composes a printable receipt from a fully loaded order.
func (s *PrinterService) BuildReceipt(order *entity.Order) *entity.Receipt {
	items := make([]entity.ReceiptItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, entity.ReceiptItem{
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.TotalPrice,
			Note:      item.Notes,
		})
	}

	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			VenueName: s.venue.Name,
			Tagline:   s.venue.Tagline,
			URL:       s.venue.URL,
		},
		OrderNumber:   order.OrderNumber,
		Date:          order.CreatedAt.Format("02 Jan 2006 15:04"),
		Cashier:       order.CreatedBy.FullName(),
		Customer:      order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Items:         items,
		Subtotal:      order.Subtotal,
		TaxRate:       order.TaxRate,
		TaxAmount:     order.TaxAmount,
		Discount:      order.DiscountAmount,
		Total:         order.TotalAmount,
		FooterLines:   s.venue.FooterLines,
	}
}

// FormatReceipt renders the receipt as a fixed-width document ending in
// a paper cut command.
func (s *PrinterService) FormatReceipt(r *entity.Receipt, paperWidth int) []byte {
	d := printer.NewDocument(paperWidth)

	d.Center(r.Header.VenueName)
	if r.Header.Tagline != "" {
		d.Center(r.Header.Tagline)
	}
	if r.Header.URL != "" {
		d.Center(r.Header.URL)
	}
	d.Rule('=')

	d.LineF("Order: %s", r.OrderNumber)
	d.LineF("Date:  %s", r.Date)
	if r.Cashier != "" {
		d.LineF("Cashier: %s", r.Cashier)
	}
	if r.Customer != "" {
		d.LineF("Customer: %s", r.Customer)
	}
	if r.CustomerPhone != "" {
		d.LineF("Phone: %s", r.CustomerPhone)
	}
	d.Rule('-')

	d.Columns("Item", "Qty", "Price", "Total")
	d.Rule('-')
	for _, item := range r.Items {
		d.Columns(
			printer.Truncate(item.Name, d.Width()*40/100),
			fmt.Sprintf("%d", item.Quantity),
			item.UnitPrice.StringFixed(2),
			item.Total.StringFixed(2),
		)
		if item.Note != "" {
			d.LineF("  * %s", printer.Truncate(item.Note, d.Width()-4))
		}
	}
	d.Rule('-')

	d.PadRight(fmt.Sprintf("Subtotal: %s", r.Subtotal.StringFixed(2)))
	taxPercent := r.TaxRate.Mul(hundred).StringFixed(0)
	d.PadRight(fmt.Sprintf("Tax (%s%%): %s", taxPercent, r.TaxAmount.StringFixed(2)))
	if r.Discount.IsPositive() {
		d.PadRight(fmt.Sprintf("Discount: -%s", r.Discount.StringFixed(2)))
	}
	d.Rule('=')
	d.PadRight(fmt.Sprintf("TOTAL: %s", r.Total.StringFixed(2)))
	d.Rule('=')

	for _, line := range r.FooterLines {
		d.Center(line)
	}
	d.Blank(3)
	d.Cut()

	return d.Bytes()
}

// PrintResult is what a print attempt returns: the rendered receipt is
// always present, the error only when dispatch failed.
type PrintResult struct {
	Receipt *entity.Receipt
	Raw     []byte
	Printed bool
	Err     error
}

// PrintOrderReceipt renders and dispatches the receipt for an order.
// A dispatch failure does not fail the call; the rendered receipt comes
// back regardless so the counter can fall back to showing it on screen.
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, orderID uuid.UUID, printerID *uuid.UUID) (*PrintResult, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	cfg, err := s.resolvePrinter(ctx, printerID)
	if err != nil {
		return nil, err
	}

	receipt := s.BuildReceipt(order)
	raw := s.FormatReceipt(receipt, cfg.PaperWidth)

	result := &PrintResult{Receipt: receipt, Raw: raw}
	result.Err = s.dispatch(ctx, cfg, raw)
	result.Printed = result.Err == nil
	return result, nil
}

// TestPrint sends a short test page to the given printer.
func (s *PrinterService) TestPrint(ctx context.Context, printerID *uuid.UUID) error {
	cfg, err := s.resolvePrinter(ctx, printerID)
	if err != nil {
		return err
	}

	d := printer.NewDocument(cfg.PaperWidth)
	d.Center(s.venue.Name)
	d.Center("PRINTER TEST PAGE")
	d.Rule('-')
	d.LineF("Printer: %s", cfg.Name)
	d.LineF("Time:    %s", time.Now().Format("02 Jan 2006 15:04:05"))
	d.Blank(3)
	d.Cut()

	return s.dispatch(ctx, cfg, d.Bytes())
}

func (s *PrinterService) resolvePrinter(ctx context.Context, printerID *uuid.UUID) (*entity.PrinterConfiguration, error) {
	if printerID != nil {
		cfg, err := s.printerRepo.GetByID(ctx, *printerID)
		if err != nil {
			return nil, err
		}
		if cfg == nil {
			return nil, apperror.NewNotFoundError("Printer configuration")
		}
		return cfg, nil
	}

	cfg, err := s.printerRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		if s.fallback != nil {
			return s.fallback, nil
		}
		return nil, apperror.NewNotFoundError("Default printer configuration")
	}
	return cfg, nil
}

// dispatch sends the payload over the printer's transport. Only network
// printers are supported; other connection types surface a typed error.
func (s *PrinterService) dispatch(ctx context.Context, cfg *entity.PrinterConfiguration, payload []byte) error {
	if cfg.ConnectionType != enum.ConnectionTypeNetwork {
		return fmt.Errorf("%w: %s", printer.ErrUnsupportedConnection, cfg.ConnectionType)
	}

	t := printer.NewTransport(cfg.IPAddress, cfg.Port, s.timeout)

	// Send blocks for up to the transport timeout; run it aside so a
	// cancelled request abandons a stalled printer immediately.
	errCh := make(chan error, 1)
	go func() {
		errCh <- t.Send(ctx, payload)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
