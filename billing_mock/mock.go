package billing_mock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/billing_model"
	"github.com/mounasaba/billing_service/common"
	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/zeebo/assert"
	"gorm.io/gorm"
)

// ManagerIdentity returns an authenticated manager bound to orgID.
func ManagerIdentity(orgID uuid.UUID) *common.Identity {
	return &common.Identity{
		UserID: uuid.New(),
		OrgID:  orgID,
		Role:   common.RoleManager,
	}
}

func MemberIdentity(orgID uuid.UUID) *common.Identity {
	return &common.Identity{
		UserID: uuid.New(),
		OrgID:  orgID,
		Role:   common.RoleMember,
	}
}

// IdentityContext binds an identity the way the auth middleware does.
func IdentityContext(id *common.Identity) context.Context {
	return common.WithIdentity(context.Background(), id)
}

// PopulateEvent seeds an accepted booking for the given org.
func PopulateEvent(db *gorm.DB, event *billing_model.Event) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		if event.ID == uuid.Nil {
			event.ID = uuid.New()
		}
		if event.Status == "" {
			event.Status = billing_model.EventAccepted
		}
		if event.EventDate.IsZero() {
			event.EventDate = time.Now().AddDate(0, 1, 0)
		}
		if event.Title == "" {
			event.Title = "Wedding Reception"
		}
		if event.CustomerName == "" {
			event.CustomerName = "Amina El Fassi"
		}

		err := db.Create(event).Error
		assert.Nil(t, err)

		return nil
	}
}

// PopulateSchedule seeds a schedule and its milestones, filling ids and
// linkage so tests only state what they care about.
func PopulateSchedule(db *gorm.DB, sched *billing_core.PaymentSchedule, milestones ...*billing_core.PaymentMilestone) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		if sched.ID == uuid.Nil {
			sched.ID = uuid.New()
		}
		if sched.TemplateName == "" {
			sched.TemplateName = billing_core.Template5050
		}

		err := db.Create(sched).Error
		assert.Nil(t, err)

		for _, m := range milestones {
			if m.ID == uuid.Nil {
				m.ID = uuid.New()
			}
			m.ScheduleID = sched.ID
			if m.Status == "" {
				m.Status = billing_core.MilestonePending
			}
			if m.DueDate.IsZero() {
				m.DueDate = time.Now().AddDate(0, 0, 7)
			}

			err = db.Create(m).Error
			assert.Nil(t, err)
		}

		sched.Milestones = milestones
		return nil
	}
}

// Migrate runs the engine's automigration for sqlite-backed tests.
func Migrate(db *gorm.DB) moretest.SetupFunc {
	return func(t *testing.T) func() error {
		err := db.AutoMigrate(
			&billing_core.PaymentSchedule{},
			&billing_core.PaymentMilestone{},
			&billing_core.Invoice{},
			&billing_core.InvoiceLineItem{},
			&billing_core.InvoiceSequence{},
			&billing_model.Event{},
		)
		assert.Nil(t, err)

		return nil
	}
}
