package report

import (
	"context"
	"math"

	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/common"
)

type PaymentMethodBreakdownRequest struct{}

type PaymentMethodItem struct {
	Method     billing_core.PaymentMethod `json:"method"`
	Amount     int64                      `json:"amount"`
	Percentage int64                      `json:"percentage" gorm:"-"`
}

type PaymentMethodBreakdownResponse struct {
	Total     int64                                `json:"total"`
	Breakdown map[billing_core.PaymentMethod]int64 `json:"breakdown"`
	Methods   []*PaymentMethodItem                 `json:"methods"`
}

// PaymentMethodBreakdown implements ReportService. Settled amounts
// grouped by method, largest first; an empty ledger yields a zero total
// and no division.
func (r *reportServiceImpl) PaymentMethodBreakdown(
	ctx context.Context,
	req *PaymentMethodBreakdownRequest,
) (*PaymentMethodBreakdownResponse, error) {
	identity, err := common.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	result := PaymentMethodBreakdownResponse{
		Breakdown: map[billing_core.PaymentMethod]int64{},
		Methods:   []*PaymentMethodItem{},
	}

	err = db.
		Model(&billing_core.PaymentMilestone{}).
		Select([]string{
			"payment_milestones.payment_method as method",
			"coalesce(sum(payment_milestones.amount), 0) as amount",
		}).
		Joins("join payment_schedules ps on ps.id = payment_milestones.schedule_id").
		Where("ps.org_id = ?", identity.OrgID).
		Where("payment_milestones.status = ?", billing_core.MilestonePaid).
		Where("payment_milestones.payment_method is not null").
		Group("payment_milestones.payment_method").
		Order("amount desc").
		Find(&result.Methods).
		Error
	if err != nil {
		return nil, err
	}

	for _, item := range result.Methods {
		result.Total += item.Amount
		result.Breakdown[item.Method] = item.Amount
	}

	if result.Total > 0 {
		for _, item := range result.Methods {
			item.Percentage = int64(math.Round(float64(item.Amount) / float64(result.Total) * 100))
		}
	}

	return &result, nil
}
