package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/loftpos/concessions-api/internal/domain/enum"
	domainRepo "github.com/loftpos/concessions-api/internal/domain/repository"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SalesSummary(ctx context.Context, start, end time.Time) (*domainRepo.SalesSummary, error) {
	var summary domainRepo.SalesSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total_amount), 0) AS total_sales,
			COUNT(*) AS total_orders,
			COALESCE(AVG(total_amount), 0) AS average_order_value
		FROM orders
		WHERE payment_status = ? AND created_at BETWEEN ? AND ?`,
		enum.OrderPaymentPaid, start, end).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reportRepository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopProduct, error) {
	var rows []domainRepo.TopProduct
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id AS product_id,
			p.name AS product_name,
			SUM(oi.quantity) AS quantity,
			COALESCE(SUM(oi.total_price), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.payment_status = ? AND o.created_at BETWEEN ? AND ?
		GROUP BY p.id, p.name
		ORDER BY quantity DESC
		LIMIT ?`,
		enum.OrderPaymentPaid, start, end, limit).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) PaymentBreakdown(ctx context.Context, start, end time.Time) ([]domainRepo.MethodBreakdown, error) {
	var rows []domainRepo.MethodBreakdown
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			method,
			status,
			COUNT(*) AS count,
			COALESCE(SUM(amount), 0) AS amount
		FROM payments
		WHERE created_at BETWEEN ? AND ?
		GROUP BY method, status
		ORDER BY method, status`,
		start, end).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) SalesByDay(ctx context.Context, start, end time.Time) ([]domainRepo.DailySales, error) {
	var rows []domainRepo.DailySales
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(created_at::date, 'YYYY-MM-DD') AS date,
			COUNT(*) AS orders,
			COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE payment_status = ? AND created_at BETWEEN ? AND ?
		GROUP BY created_at::date
		ORDER BY created_at::date`,
		enum.OrderPaymentPaid, start, end).
		Scan(&rows).Error
	return rows, err
}
