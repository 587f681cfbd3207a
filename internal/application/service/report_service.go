package service

import (
	"context"
	"time"

	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/pkg/apperror"
)

// ReportService runs sales reporting queries
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// DateRange is an inclusive reporting window
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r *DateRange) validate() error {
	if r.End.Before(r.Start) {
		return apperror.NewBadRequestError("End date must not be before start date")
	}
	return nil
}

// SalesReport is the combined sales report payload
type SalesReport struct {
	Summary   *repository.SalesSummary     `json:"summary"`
	ByDay     []repository.DailySales      `json:"by_day"`
	ByMethod  []repository.MethodBreakdown `json:"by_method"`
	TopItems  []repository.TopProduct      `json:"top_items"`
	StartDate string                       `json:"start_date"`
	EndDate   string                       `json:"end_date"`
}

// SalesReport builds the full sales report for the range
func (s *ReportService) SalesReport(ctx context.Context, rng DateRange, topLimit int) (*SalesReport, error) {
	if err := rng.validate(); err != nil {
		return nil, err
	}
	if topLimit <= 0 {
		topLimit = 10
	}

	summary, err := s.reportRepo.SalesSummary(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	byDay, err := s.reportRepo.SalesByDay(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	byMethod, err := s.reportRepo.PaymentBreakdown(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	topItems, err := s.reportRepo.TopProducts(ctx, rng.Start, rng.End, topLimit)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		Summary:   summary,
		ByDay:     byDay,
		ByMethod:  byMethod,
		TopItems:  topItems,
		StartDate: rng.Start.Format("2006-01-02"),
		EndDate:   rng.End.Format("2006-01-02"),
	}, nil
}

// TopProducts returns the best sellers in the range
func (s *ReportService) TopProducts(ctx context.Context, rng DateRange, limit int) ([]repository.TopProduct, error) {
	if err := rng.validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return s.reportRepo.TopProducts(ctx, rng.Start, rng.End, limit)
}

// PaymentBreakdown returns the per-method payment totals in the range
func (s *ReportService) PaymentBreakdown(ctx context.Context, rng DateRange) ([]repository.MethodBreakdown, error) {
	if err := rng.validate(); err != nil {
		return nil, err
	}
	return s.reportRepo.PaymentBreakdown(ctx, rng.Start, rng.End)
}
