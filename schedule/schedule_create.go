package schedule

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/billing_model"
	"github.com/mounasaba/billing_service/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ScheduleCreateRequest struct {
	EventID     uuid.UUID                     `json:"event_id" binding:"required"`
	TotalAmount int64                         `json:"total_amount"`
	EventDate   time.Time                     `json:"event_date" binding:"required"`
	Template    billing_core.ScheduleTemplate `json:"template" binding:"required"`
}

type milestoneSpec struct {
	label         string
	milestoneType billing_core.MilestoneType
	percentage    float64
	dueDate       time.Time
}

// templateSpecs expands a named template into its milestone shape.
// Deposits fall due three days out, progress at the midpoint to the
// event, finals on the event date itself.
func templateSpecs(tpl billing_core.ScheduleTemplate, now, eventDate time.Time) []milestoneSpec {
	duePlus3 := now.AddDate(0, 0, 3)
	midDate := billing_core.Midpoint(now, eventDate)

	switch tpl {
	case billing_core.Template305020:
		return []milestoneSpec{
			{label: "Deposit", milestoneType: billing_core.DepositMilestone, percentage: 30, dueDate: duePlus3},
			{label: "Progress Payment", milestoneType: billing_core.ProgressMilestone, percentage: 50, dueDate: midDate},
			{label: "Final Payment", milestoneType: billing_core.FinalMilestone, percentage: 20, dueDate: eventDate},
		}
	case billing_core.Template5050:
		return []milestoneSpec{
			{label: "Deposit", milestoneType: billing_core.DepositMilestone, percentage: 50, dueDate: duePlus3},
			{label: "Final Payment", milestoneType: billing_core.FinalMilestone, percentage: 50, dueDate: eventDate},
		}
	case billing_core.Template100Upfront:
		return []milestoneSpec{
			{label: "Full Payment", milestoneType: billing_core.FullMilestone, percentage: 100, dueDate: duePlus3},
		}
	}

	return nil
}

// ScheduleCreate implements ScheduleService.
func (s *scheduleServiceImpl) ScheduleCreate(
	ctx context.Context,
	req *ScheduleCreateRequest,
) (*billing_core.PaymentSchedule, error) {
	identity, err := common.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := common.RequireManager(identity); err != nil {
		return nil, err
	}

	if req.TotalAmount <= 0 {
		return nil, billing_core.InvalidInputf("total amount must be a positive integer")
	}
	if !req.Template.Valid() {
		return nil, billing_core.InvalidInputf("unknown schedule template %q", req.Template)
	}
	if req.EventDate.IsZero() {
		return nil, billing_core.InvalidInputf("event date is required")
	}

	now := time.Now()
	specs := templateSpecs(req.Template, now, req.EventDate)

	percents := make([]float64, len(specs))
	for i, spec := range specs {
		percents[i] = spec.percentage
	}
	amounts := billing_core.SplitByPercent(req.TotalAmount, percents)

	db := s.db.WithContext(ctx)
	sched := billing_core.PaymentSchedule{
		ID:           uuid.New(),
		OrgID:        identity.OrgID,
		EventID:      req.EventID,
		TemplateName: req.Template,
		TotalAmount:  req.TotalAmount,
		CreatedAt:    now,
	}

	err = billing_core.OpenTransaction(ctx, db, func(tx *gorm.DB, mng billing_core.TxManage) error {
		var event billing_model.Event
		err := tx.
			Model(&billing_model.Event{}).
			Where("id = ?", req.EventID).
			Where("org_id = ?", identity.OrgID).
			Find(&event).
			Error
		if err != nil {
			return err
		}
		if event.ID == uuid.Nil {
			return billing_core.NotFoundf("event not found")
		}

		var existing int64
		err = tx.
			Model(&billing_core.PaymentSchedule{}).
			Where("event_id = ?", req.EventID).
			Count(&existing).
			Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return billing_core.Conflictf("event already has a payment schedule")
		}

		err = tx.Create(&sched).Error
		if err != nil {
			return err
		}

		for i, spec := range specs {
			sched.Milestones = append(sched.Milestones, &billing_core.PaymentMilestone{
				ID:            uuid.New(),
				ScheduleID:    sched.ID,
				Label:         spec.label,
				MilestoneType: spec.milestoneType,
				Percentage:    spec.percentage,
				Amount:        amounts[i],
				DueDate:       spec.dueDate,
				Status:        billing_core.MilestonePending,
			})
		}

		return tx.Create(sched.Milestones).Error
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(sched.Milestones, func(a, b int) bool {
		return sched.Milestones[a].DueDate.Before(sched.Milestones[b].DueDate)
	})

	s.log.Info("payment schedule created",
		zap.String("schedule_id", sched.ID.String()),
		zap.String("event_id", req.EventID.String()),
		zap.String("template", string(req.Template)),
		zap.Int64("total_amount", req.TotalAmount))

	return &sched, nil
}
