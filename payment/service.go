package payment

import (
	"context"

	"github.com/mounasaba/billing_service/billing_core"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService interface {
	MilestoneConfirm(ctx context.Context, req *MilestoneConfirmRequest) (*billing_core.PaymentMilestone, error)
	MilestoneList(ctx context.Context, req *MilestoneListRequest) (*MilestoneListResponse, error)
}

type paymentServiceImpl struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPaymentService(db *gorm.DB, log *zap.Logger) *paymentServiceImpl {
	return &paymentServiceImpl{
		db:  db,
		log: log,
	}
}
