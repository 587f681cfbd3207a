// Package gateway wraps the Razorpay SDK behind a small interface so
// payment reconciliation can be tested against a fake.
package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
)

// Gateway is the payment-gateway surface the application consumes.
type Gateway interface {
	// CreateOrder registers a remote order for the given amount and
	// returns the gateway's order id for the checkout handoff.
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receiptRef string) (string, error)
	// Refund instructs the gateway to refund a captured payment.
	Refund(ctx context.Context, gatewayPaymentID string, amount decimal.Decimal, reason string) error
}

// Config holds the gateway credentials.
type Config struct {
	KeyID     string
	KeySecret string
}

type razorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpay creates a Gateway backed by the Razorpay SDK.
func NewRazorpay(cfg Config) Gateway {
	return &razorpayGateway{
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
	}
}

// paise converts a rupee amount to the integer subunit the API expects.
func paise(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (g *razorpayGateway) CreateOrder(_ context.Context, amount decimal.Decimal, currency, receiptRef string) (string, error) {
	data := map[string]interface{}{
		"amount":   paise(amount),
		"currency": currency,
		"receipt":  receiptRef,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}

	id, ok := order["id"].(string)
	if !ok {
		return "", fmt.Errorf("razorpay order create: response missing order id")
	}
	return id, nil
}

func (g *razorpayGateway) Refund(_ context.Context, gatewayPaymentID string, amount decimal.Decimal, reason string) error {
	data := map[string]interface{}{
		"notes": map[string]interface{}{
			"reason": reason,
		},
	}

	if _, err := g.client.Payment.Refund(gatewayPaymentID, int(paise(amount)), data, nil); err != nil {
		return fmt.Errorf("razorpay refund: %w", err)
	}
	return nil
}
