package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/billing_model"
	"github.com/mounasaba/billing_service/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MilestoneConfirmRequest struct {
	MilestoneID      uuid.UUID                  `json:"milestone_id"`
	PaymentMethod    billing_core.PaymentMethod `json:"payment_method" binding:"required"`
	PaymentReference string                     `json:"payment_reference"`
	Notes            string                     `json:"notes"`
}

// MilestoneConfirm implements PaymentService. The status write is a
// compare-and-swap: only rows not yet paid are updated, so two
// concurrent confirms of the same milestone cannot both settle it. The
// event row is locked before the aggregate recompute so confirms of
// different milestones on one event serialize against each other.
func (p *paymentServiceImpl) MilestoneConfirm(
	ctx context.Context,
	req *MilestoneConfirmRequest,
) (*billing_core.PaymentMilestone, error) {
	identity, err := common.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := common.RequireManager(identity); err != nil {
		return nil, err
	}

	if !req.PaymentMethod.Valid() {
		return nil, billing_core.InvalidInputf("unknown payment method %q", req.PaymentMethod)
	}

	db := p.db.WithContext(ctx)
	var milestone billing_core.PaymentMilestone

	err = billing_core.OpenTransaction(ctx, db, func(tx *gorm.DB, mng billing_core.TxManage) error {
		err := tx.
			Model(&billing_core.PaymentMilestone{}).
			Select("payment_milestones.*").
			Joins("join payment_schedules ps on ps.id = payment_milestones.schedule_id").
			Where("payment_milestones.id = ?", req.MilestoneID).
			Where("ps.org_id = ?", identity.OrgID).
			Find(&milestone).
			Error
		if err != nil {
			return err
		}
		if milestone.ID == uuid.Nil {
			return billing_core.NotFoundf("milestone not found")
		}

		var sched billing_core.PaymentSchedule
		err = tx.
			Model(&billing_core.PaymentSchedule{}).
			Where("id = ?", milestone.ScheduleID).
			Find(&sched).
			Error
		if err != nil {
			return err
		}

		now := time.Now()
		res := tx.
			Model(&billing_core.PaymentMilestone{}).
			Where("id = ?", req.MilestoneID).
			Where("status <> ?", billing_core.MilestonePaid).
			Updates(map[string]any{
				"status":            billing_core.MilestonePaid,
				"payment_method":    req.PaymentMethod,
				"payment_reference": req.PaymentReference,
				"notes":             req.Notes,
				"paid_at":           now,
				"confirmed_by":      identity.UserID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return billing_core.Conflictf("milestone already paid")
		}

		var event billing_model.Event
		err = tx.
			Clauses(clause.Locking{
				Strength: "UPDATE",
			}).
			Model(&billing_model.Event{}).
			Where("id = ?", sched.EventID).
			Find(&event).
			Error
		if err != nil {
			return err
		}

		var totalPaid int64
		err = tx.
			Model(&billing_core.PaymentMilestone{}).
			Joins("join payment_schedules ps on ps.id = payment_milestones.schedule_id").
			Select("coalesce(sum(payment_milestones.amount), 0)").
			Where("ps.event_id = ?", sched.EventID).
			Where("payment_milestones.status = ?", billing_core.MilestonePaid).
			Find(&totalPaid).
			Error
		if err != nil {
			return err
		}

		err = tx.
			Model(&billing_model.Event{}).
			Where("id = ?", sched.EventID).
			Updates(map[string]any{
				"deposit_amount": totalPaid,
				"balance_due":    sched.TotalAmount - totalPaid,
			}).
			Error
		if err != nil {
			return err
		}

		if milestone.MilestoneType == billing_core.DepositMilestone {
			mng.Publish(billing_core.DepositConfirmed{
				OrgID:       identity.OrgID,
				EventID:     sched.EventID,
				MilestoneID: milestone.ID,
			})
		}

		return tx.
			Model(&billing_core.PaymentMilestone{}).
			Where("id = ?", req.MilestoneID).
			Find(&milestone).
			Error
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("milestone confirmed",
		zap.String("milestone_id", milestone.ID.String()),
		zap.String("payment_method", string(req.PaymentMethod)),
		zap.Int64("amount", milestone.Amount))

	return &milestone, nil
}
