package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/common"
	"gorm.io/gorm"
)

type RevenueOverviewRequest struct{}

type RevenueOverviewResponse struct {
	TotalRevenue         int64   `json:"total_revenue"`
	MonthRevenue         int64   `json:"month_revenue"`
	LastMonthRevenue     int64   `json:"last_month_revenue"`
	PendingAmount        int64   `json:"pending_amount"`
	OverdueAmount        int64   `json:"overdue_amount"`
	MonthOverMonthGrowth float64 `json:"month_over_month_growth"`
}

func (r *reportServiceImpl) paidAmountQ(db *gorm.DB, orgID uuid.UUID) *gorm.DB {
	return db.
		Model(&billing_core.PaymentMilestone{}).
		Select("coalesce(sum(payment_milestones.amount), 0)").
		Joins("join payment_schedules ps on ps.id = payment_milestones.schedule_id").
		Where("ps.org_id = ?", orgID).
		Where("payment_milestones.status = ?", billing_core.MilestonePaid)
}

func (r *reportServiceImpl) statusAmountQ(db *gorm.DB, orgID uuid.UUID, status billing_core.MilestoneStatus) *gorm.DB {
	return db.
		Model(&billing_core.PaymentMilestone{}).
		Select("coalesce(sum(payment_milestones.amount), 0)").
		Joins("join payment_schedules ps on ps.id = payment_milestones.schedule_id").
		Where("ps.org_id = ?", orgID).
		Where("payment_milestones.status = ?", status)
}

// RevenueOverview implements ReportService. Month-over-month growth is
// zero, not infinite, when last month had no revenue.
func (r *reportServiceImpl) RevenueOverview(
	ctx context.Context,
	req *RevenueOverviewRequest,
) (*RevenueOverviewResponse, error) {
	identity, err := common.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	now := time.Now()
	monthStart := billing_core.MonthStart(now)
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	yearStart := billing_core.YearStart(now)

	result := RevenueOverviewResponse{}

	err = r.paidAmountQ(db, identity.OrgID).
		Where("payment_milestones.paid_at >= ?", monthStart).
		Where("payment_milestones.paid_at < ?", now).
		Find(&result.MonthRevenue).
		Error
	if err != nil {
		return nil, err
	}

	err = r.paidAmountQ(db, identity.OrgID).
		Where("payment_milestones.paid_at >= ?", lastMonthStart).
		Where("payment_milestones.paid_at < ?", monthStart).
		Find(&result.LastMonthRevenue).
		Error
	if err != nil {
		return nil, err
	}

	err = r.paidAmountQ(db, identity.OrgID).
		Where("payment_milestones.paid_at >= ?", yearStart).
		Where("payment_milestones.paid_at < ?", now).
		Find(&result.TotalRevenue).
		Error
	if err != nil {
		return nil, err
	}

	err = r.statusAmountQ(db, identity.OrgID, billing_core.MilestonePending).
		Find(&result.PendingAmount).
		Error
	if err != nil {
		return nil, err
	}

	err = r.statusAmountQ(db, identity.OrgID, billing_core.MilestoneOverdue).
		Find(&result.OverdueAmount).
		Error
	if err != nil {
		return nil, err
	}

	if result.LastMonthRevenue != 0 {
		growth := float64(result.MonthRevenue-result.LastMonthRevenue) / float64(result.LastMonthRevenue) * 100
		result.MonthOverMonthGrowth = billing_core.RoundTo1(growth)
	}

	return &result, nil
}
