package report

import (
	"context"
	"time"

	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/billing_model"
	"github.com/mounasaba/billing_service/common"
)

type MonthlyRevenueRequest struct {
	Months int `json:"months" form:"months"`
}

type MonthlyRevenueItem struct {
	Month      string `json:"month"`
	Revenue    int64  `json:"revenue"`
	EventCount int64  `json:"event_count"`
}

type MonthlyRevenueResponse struct {
	Data []*MonthlyRevenueItem `json:"data"`
}

// MonthlyRevenue implements ReportService. One record per trailing
// month, oldest first, zero months included.
func (r *reportServiceImpl) MonthlyRevenue(
	ctx context.Context,
	req *MonthlyRevenueRequest,
) (*MonthlyRevenueResponse, error) {
	identity, err := common.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}

	months := req.Months
	if months == 0 {
		months = 12
	}
	if months < 1 || months > 24 {
		return nil, billing_core.InvalidInputf("months must be between 1 and 24")
	}

	db := r.db.WithContext(ctx)
	now := time.Now()

	result := MonthlyRevenueResponse{
		Data: []*MonthlyRevenueItem{},
	}

	for _, month := range billing_core.TrailingMonths(now, months) {
		start, end := billing_core.MonthRange(month)
		item := MonthlyRevenueItem{
			Month: month.Format("2006-01"),
		}

		err = r.paidAmountQ(db, identity.OrgID).
			Where("payment_milestones.paid_at >= ?", start).
			Where("payment_milestones.paid_at < ?", end).
			Find(&item.Revenue).
			Error
		if err != nil {
			return nil, err
		}

		err = db.
			Model(&billing_model.Event{}).
			Where("org_id = ?", identity.OrgID).
			Where("event_date >= ?", start).
			Where("event_date < ?", end).
			Count(&item.EventCount).
			Error
		if err != nil {
			return nil, err
		}

		result.Data = append(result.Data, &item)
	}

	return &result, nil
}
