package invoice

import (
	"context"

	"github.com/mounasaba/billing_service/billing_core"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InvoiceService interface {
	InvoiceCreate(ctx context.Context, req *InvoiceCreateRequest) (*billing_core.Invoice, error)
	InvoiceSend(ctx context.Context, req *InvoiceSendRequest) (*InvoiceSendResponse, error)
	InvoiceList(ctx context.Context, req *InvoiceListRequest) (*InvoiceListResponse, error)
}

type invoiceServiceImpl struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewInvoiceService(db *gorm.DB, log *zap.Logger) *invoiceServiceImpl {
	return &invoiceServiceImpl{
		db:  db,
		log: log,
	}
}
