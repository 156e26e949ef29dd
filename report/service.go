package report

import (
	"context"

	"gorm.io/gorm"
)

type ReportService interface {
	RevenueOverview(ctx context.Context, req *RevenueOverviewRequest) (*RevenueOverviewResponse, error)
	MonthlyRevenue(ctx context.Context, req *MonthlyRevenueRequest) (*MonthlyRevenueResponse, error)
	PaymentMethodBreakdown(ctx context.Context, req *PaymentMethodBreakdownRequest) (*PaymentMethodBreakdownResponse, error)
}

type reportServiceImpl struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *reportServiceImpl {
	return &reportServiceImpl{
		db: db,
	}
}
