package schedule_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/billing_mock"
	"github.com/mounasaba/billing_service/billing_model"
	"github.com/mounasaba/billing_service/schedule"
	"github.com/pdcgo/shared/pkg/moretest"
	"github.com/pdcgo/shared/pkg/moretest/moretest_mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestScheduleCreate(t *testing.T) {
	var db gorm.DB

	orgID := uuid.New()
	event := billing_model.Event{
		OrgID:       orgID,
		TotalAmount: 100000,
		EventDate:   time.Now().AddDate(0, 2, 0),
	}

	moretest.Suite(t, "testing schedule create",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			billing_mock.Migrate(&db),
			billing_mock.PopulateEvent(&db, &event),
		},
		func(t *testing.T) {
			srv := schedule.NewScheduleService(&db, zap.NewNop())
			ctx := billing_mock.IdentityContext(billing_mock.ManagerIdentity(orgID))

			t.Run("rejects non-positive total", func(t *testing.T) {
				_, err := srv.ScheduleCreate(ctx, &schedule.ScheduleCreateRequest{
					EventID:     event.ID,
					TotalAmount: 0,
					EventDate:   event.EventDate,
					Template:    billing_core.Template305020,
				})
				assert.True(t, billing_core.IsInvalidInput(err))
			})

			t.Run("rejects unknown template", func(t *testing.T) {
				_, err := srv.ScheduleCreate(ctx, &schedule.ScheduleCreateRequest{
					EventID:     event.ID,
					TotalAmount: 100000,
					EventDate:   event.EventDate,
					Template:    "20_80",
				})
				assert.True(t, billing_core.IsInvalidInput(err))
			})

			t.Run("rejects event of another org", func(t *testing.T) {
				otherCtx := billing_mock.IdentityContext(billing_mock.ManagerIdentity(uuid.New()))
				_, err := srv.ScheduleCreate(otherCtx, &schedule.ScheduleCreateRequest{
					EventID:     event.ID,
					TotalAmount: 100000,
					EventDate:   event.EventDate,
					Template:    billing_core.Template305020,
				})
				assert.True(t, billing_core.IsNotFound(err))
			})

			t.Run("rejects member role", func(t *testing.T) {
				memberCtx := billing_mock.IdentityContext(billing_mock.MemberIdentity(orgID))
				_, err := srv.ScheduleCreate(memberCtx, &schedule.ScheduleCreateRequest{
					EventID:     event.ID,
					TotalAmount: 100000,
					EventDate:   event.EventDate,
					Template:    billing_core.Template305020,
				})
				assert.True(t, billing_core.IsForbidden(err))
			})

			t.Run("creates 30_50_20 schedule", func(t *testing.T) {
				sched, err := srv.ScheduleCreate(ctx, &schedule.ScheduleCreateRequest{
					EventID:     event.ID,
					TotalAmount: 100000,
					EventDate:   event.EventDate,
					Template:    billing_core.Template305020,
				})
				assert.Nil(t, err)
				assert.Len(t, sched.Milestones, 3)

				assert.Equal(t, billing_core.DepositMilestone, sched.Milestones[0].MilestoneType)
				assert.Equal(t, int64(30000), sched.Milestones[0].Amount)
				assert.Equal(t, billing_core.ProgressMilestone, sched.Milestones[1].MilestoneType)
				assert.Equal(t, int64(50000), sched.Milestones[1].Amount)
				assert.Equal(t, billing_core.FinalMilestone, sched.Milestones[2].MilestoneType)
				assert.Equal(t, int64(20000), sched.Milestones[2].Amount)

				// milestones come back ordered by due date
				assert.True(t, sched.Milestones[0].DueDate.Before(sched.Milestones[1].DueDate))
				assert.True(t, sched.Milestones[1].DueDate.Before(sched.Milestones[2].DueDate))

				for _, m := range sched.Milestones {
					assert.Equal(t, billing_core.MilestonePending, m.Status)
					assert.Nil(t, m.PaidAt)
				}
			})

			t.Run("rejects second schedule for same event", func(t *testing.T) {
				_, err := srv.ScheduleCreate(ctx, &schedule.ScheduleCreateRequest{
					EventID:     event.ID,
					TotalAmount: 100000,
					EventDate:   event.EventDate,
					Template:    billing_core.Template5050,
				})
				assert.True(t, billing_core.IsConflict(err))

				var count int64
				err = db.Model(&billing_core.PaymentSchedule{}).
					Where("event_id = ?", event.ID).
					Count(&count).
					Error
				assert.Nil(t, err)
				assert.Equal(t, int64(1), count)
			})
		},
	)
}

func TestScheduleCreateRoundingDrift(t *testing.T) {
	var db gorm.DB

	orgID := uuid.New()
	event := billing_model.Event{
		OrgID:       orgID,
		TotalAmount: 100001,
		EventDate:   time.Now().AddDate(0, 1, 0),
	}

	moretest.Suite(t, "testing rounding drift absorption",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			billing_mock.Migrate(&db),
			billing_mock.PopulateEvent(&db, &event),
		},
		func(t *testing.T) {
			srv := schedule.NewScheduleService(&db, zap.NewNop())
			ctx := billing_mock.IdentityContext(billing_mock.ManagerIdentity(orgID))

			sched, err := srv.ScheduleCreate(ctx, &schedule.ScheduleCreateRequest{
				EventID:     event.ID,
				TotalAmount: 100001,
				EventDate:   event.EventDate,
				Template:    billing_core.Template305020,
			})
			assert.Nil(t, err)

			assert.Equal(t, int64(100001), billing_core.MilestoneList(sched.Milestones).SumAmount())
		},
	)
}

func TestMilestonesByEvent(t *testing.T) {
	var db gorm.DB

	orgID := uuid.New()
	event := billing_model.Event{
		OrgID:       orgID,
		TotalAmount: 80000,
		EventDate:   time.Now().AddDate(0, 1, 0),
	}
	sched := billing_core.PaymentSchedule{
		OrgID:       orgID,
		TotalAmount: 80000,
	}
	later := billing_core.PaymentMilestone{
		Label:         "Final Payment",
		MilestoneType: billing_core.FinalMilestone,
		Amount:        40000,
		DueDate:       time.Now().AddDate(0, 0, 30),
	}
	sooner := billing_core.PaymentMilestone{
		Label:         "Deposit",
		MilestoneType: billing_core.DepositMilestone,
		Amount:        40000,
		DueDate:       time.Now().AddDate(0, 0, 3),
	}

	var linkSchedule moretest.SetupFunc = func(t *testing.T) func() error {
		sched.EventID = event.ID
		return nil
	}

	moretest.Suite(t, "testing milestones by event",
		moretest.SetupListFunc{
			moretest_mock.MockSqliteDatabase(&db),
			billing_mock.Migrate(&db),
			billing_mock.PopulateEvent(&db, &event),
			linkSchedule,
			billing_mock.PopulateSchedule(&db, &sched, &later, &sooner),
		},
		func(t *testing.T) {
			srv := schedule.NewScheduleService(&db, zap.NewNop())

			t.Run("orders milestones by due date", func(t *testing.T) {
				ctx := billing_mock.IdentityContext(billing_mock.MemberIdentity(orgID))
				res, err := srv.MilestonesByEvent(ctx, &schedule.MilestonesByEventRequest{
					EventID: event.ID,
				})
				assert.Nil(t, err)
				assert.Len(t, res.Schedules, 1)
				assert.Len(t, res.Schedules[0].Milestones, 2)
				assert.Equal(t, "Deposit", res.Schedules[0].Milestones[0].Label)
				assert.Equal(t, "Final Payment", res.Schedules[0].Milestones[1].Label)
			})

			t.Run("hides events of other orgs", func(t *testing.T) {
				ctx := billing_mock.IdentityContext(billing_mock.MemberIdentity(uuid.New()))
				_, err := srv.MilestonesByEvent(ctx, &schedule.MilestonesByEventRequest{
					EventID: event.ID,
				})
				assert.True(t, billing_core.IsNotFound(err))
			})
		},
	)
}
