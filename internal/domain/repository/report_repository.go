package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary aggregates paid orders over a date range
type SalesSummary struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalOrders       int64           `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// TopProduct is one row of the best-sellers report
type TopProduct struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// MethodBreakdown aggregates payments by method and status
type MethodBreakdown struct {
	Method string          `json:"method"`
	Status string          `json:"status"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// DailySales is one day of the sales-by-day report
type DailySales struct {
	Date    string          `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ReportRepository runs the aggregate queries behind sales reporting.
// All order aggregates consider paid orders only.
type ReportRepository interface {
	SalesSummary(ctx context.Context, start, end time.Time) (*SalesSummary, error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProduct, error)
	PaymentBreakdown(ctx context.Context, start, end time.Time) ([]MethodBreakdown, error)
	SalesByDay(ctx context.Context, start, end time.Time) ([]DailySales, error)
}
