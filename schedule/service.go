package schedule

import (
	"context"

	"github.com/mounasaba/billing_service/billing_core"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ScheduleService interface {
	ScheduleCreate(ctx context.Context, req *ScheduleCreateRequest) (*billing_core.PaymentSchedule, error)
	MilestonesByEvent(ctx context.Context, req *MilestonesByEventRequest) (*MilestonesByEventResponse, error)
}

type scheduleServiceImpl struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewScheduleService(db *gorm.DB, log *zap.Logger) *scheduleServiceImpl {
	return &scheduleServiceImpl{
		db:  db,
		log: log,
	}
}
