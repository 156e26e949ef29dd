package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/common"
)

type MilestoneListRequest struct {
	Status string `json:"status" form:"status"`
	Limit  int    `json:"limit" form:"limit"`
	Cursor string `json:"cursor" form:"cursor"`
}

type MilestoneEventInfo struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	CustomerName string    `json:"customer_name"`
	EventDate    time.Time `json:"event_date"`
}

type MilestoneItem struct {
	billing_core.PaymentMilestone
	Event MilestoneEventInfo `json:"event" gorm:"embedded;embeddedPrefix:event_"`
}

type MilestoneListResponse struct {
	Milestones []*MilestoneItem `json:"milestones"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// MilestoneList implements PaymentService. Keyset pagination over
// (due_date, id) ascending across all of the organization's milestones.
func (p *paymentServiceImpl) MilestoneList(
	ctx context.Context,
	req *MilestoneListRequest,
) (*MilestoneListResponse, error) {
	identity, err := common.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}

	if req.Status != "" && !billing_core.MilestoneStatus(req.Status).Valid() {
		return nil, billing_core.InvalidInputf("unknown milestone status %q", req.Status)
	}
	limit := common.ClampLimit(req.Limit)

	db := p.db.WithContext(ctx)
	query := db.
		Model(&billing_core.PaymentMilestone{}).
		Select([]string{
			"payment_milestones.*",
			"e.id as event_id",
			"e.title as event_title",
			"e.customer_name as event_customer_name",
			"e.event_date as event_event_date",
		}).
		Joins("join payment_schedules ps on ps.id = payment_milestones.schedule_id").
		Joins("join events e on e.id = ps.event_id").
		Where("ps.org_id = ?", identity.OrgID)

	if req.Status != "" {
		query = query.Where("payment_milestones.status = ?", req.Status)
	}

	if req.Cursor != "" {
		cursor, err := common.DecodeCursor(req.Cursor)
		if err != nil {
			return nil, err
		}
		query = query.Where(
			"(payment_milestones.due_date > ?) OR (payment_milestones.due_date = ? AND payment_milestones.id > ?)",
			cursor.Time, cursor.Time, cursor.ID,
		)
	}

	result := MilestoneListResponse{
		Milestones: []*MilestoneItem{},
	}

	err = query.
		Order("payment_milestones.due_date asc, payment_milestones.id asc").
		Limit(limit + 1).
		Find(&result.Milestones).
		Error
	if err != nil {
		return nil, err
	}

	if len(result.Milestones) > limit {
		result.Milestones = result.Milestones[:limit]
		last := result.Milestones[limit-1]
		result.NextCursor = common.EncodeCursor(last.DueDate, last.PaymentMilestone.ID)
	}

	return &result, nil
}
