package schedule

import (
	"context"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/billing_model"
	"github.com/mounasaba/billing_service/common"
	"gorm.io/gorm"
)

type MilestonesByEventRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
}

type MilestonesByEventResponse struct {
	Schedules []*billing_core.PaymentSchedule `json:"schedules"`
}

// MilestonesByEvent implements ScheduleService.
func (s *scheduleServiceImpl) MilestonesByEvent(
	ctx context.Context,
	req *MilestonesByEventRequest,
) (*MilestonesByEventResponse, error) {
	identity, err := common.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var event billing_model.Event
	err = db.
		Model(&billing_model.Event{}).
		Where("id = ?", req.EventID).
		Where("org_id = ?", identity.OrgID).
		Find(&event).
		Error
	if err != nil {
		return nil, err
	}
	if event.ID == uuid.Nil {
		return nil, billing_core.NotFoundf("event not found")
	}

	result := MilestonesByEventResponse{
		Schedules: []*billing_core.PaymentSchedule{},
	}

	err = db.
		Model(&billing_core.PaymentSchedule{}).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date asc")
		}).
		Where("event_id = ?", req.EventID).
		Order("created_at asc").
		Find(&result.Schedules).
		Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
