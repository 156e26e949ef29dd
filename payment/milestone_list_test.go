package payment_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/billing_mock"
	"github.com/mounasaba/billing_service/billing_model"
	"github.com/mounasaba/billing_service/payment"
	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/shared/pkg/moretest/moretest_mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMilestoneList(t *testing.T) {
	var db gorm.DB

	orgID := uuid.New()
	event := billing_model.Event{
		OrgID:       orgID,
		Title:       "Corporate Iftar",
		TotalAmount: 90000,
	}
	sched := billing_core.PaymentSchedule{
		OrgID:        orgID,
		TemplateName: billing_core.Template305020,
		TotalAmount:  90000,
	}

	now := time.Now()
	m1 := billing_core.PaymentMilestone{
		Label:         "Deposit",
		MilestoneType: billing_core.DepositMilestone,
		Amount:        27000,
		DueDate:       now.AddDate(0, 0, 3),
		Status:        billing_core.MilestonePaid,
	}
	m2 := billing_core.PaymentMilestone{
		Label:         "Progress Payment",
		MilestoneType: billing_core.ProgressMilestone,
		Amount:        45000,
		DueDate:       now.AddDate(0, 0, 20),
	}
	m3 := billing_core.PaymentMilestone{
		Label:         "Final Payment",
		MilestoneType: billing_core.FinalMilestone,
		Amount:        18000,
		DueDate:       now.AddDate(0, 0, 40),
	}

	var linkSchedule moretest.SetupFunc = func(t *testing.T) func() error {
		sched.EventID = event.ID
		return nil
	}

	var markPaid moretest.SetupFunc = func(t *testing.T) func() error {
		method := billing_core.MethodCash
		paidAt := now
		err := db.Model(&billing_core.PaymentMilestone{}).
			Where("id = ?", m1.ID).
			Updates(map[string]any{
				"payment_method": method,
				"paid_at":        paidAt,
			}).
			Error
		assert.Nil(t, err)
		return nil
	}

	moretest.Suite(t, "testing milestone list",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			billing_mock.Migrate(&db),
			billing_mock.PopulateEvent(&db, &event),
			linkSchedule,
			billing_mock.PopulateSchedule(&db, &sched, &m1, &m2, &m3),
			markPaid,
		},
		func(t *testing.T) {
			srv := payment.NewPaymentService(&db, zap.NewNop())
			ctx := billing_mock.IdentityContext(billing_mock.MemberIdentity(orgID))

			t.Run("paginates with cursor", func(t *testing.T) {
				page1, err := srv.MilestoneList(ctx, &payment.MilestoneListRequest{
					Limit: 2,
				})
				assert.Nil(t, err)
				assert.Len(t, page1.Milestones, 2)
				assert.NotEmpty(t, page1.NextCursor)
				assert.Equal(t, "Deposit", page1.Milestones[0].Label)
				assert.Equal(t, "Corporate Iftar", page1.Milestones[0].Event.Title)

				page2, err := srv.MilestoneList(ctx, &payment.MilestoneListRequest{
					Limit:  2,
					Cursor: page1.NextCursor,
				})
				assert.Nil(t, err)
				assert.Len(t, page2.Milestones, 1)
				assert.Empty(t, page2.NextCursor)
				assert.Equal(t, "Final Payment", page2.Milestones[0].Label)
			})

			t.Run("filters by status", func(t *testing.T) {
				res, err := srv.MilestoneList(ctx, &payment.MilestoneListRequest{
					Status: string(billing_core.MilestonePaid),
				})
				assert.Nil(t, err)
				assert.Len(t, res.Milestones, 1)
				assert.Equal(t, "Deposit", res.Milestones[0].Label)
			})

			t.Run("rejects unknown status", func(t *testing.T) {
				_, err := srv.MilestoneList(ctx, &payment.MilestoneListRequest{
					Status: "settled",
				})
				assert.True(t, billing_core.IsInvalidInput(err))
			})

			t.Run("scopes to caller org", func(t *testing.T) {
				otherCtx := billing_mock.IdentityContext(billing_mock.MemberIdentity(uuid.New()))
				res, err := srv.MilestoneList(otherCtx, &payment.MilestoneListRequest{})
				assert.Nil(t, err)
				assert.Empty(t, res.Milestones)
			})
		},
	)
}
