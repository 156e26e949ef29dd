package invoice

import (
	"context"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/common"
	"go.uber.org/zap"
)

type InvoiceSendRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
}

type InvoiceSendResponse struct {
	Success bool `json:"success"`
}

// InvoiceSend implements InvoiceService. Sending is allowed from draft
// and, for re-sends, from sent; any other status rejects.
func (s *invoiceServiceImpl) InvoiceSend(
	ctx context.Context,
	req *InvoiceSendRequest,
) (*InvoiceSendResponse, error) {
	identity, err := common.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := common.RequireManager(identity); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var inv billing_core.Invoice
	err = db.
		Model(&billing_core.Invoice{}).
		Where("id = ?", req.InvoiceID).
		Where("org_id = ?", identity.OrgID).
		Find(&inv).
		Error
	if err != nil {
		return nil, err
	}
	if inv.ID == uuid.Nil {
		return nil, billing_core.NotFoundf("invoice not found")
	}

	switch inv.Status {
	case billing_core.InvoiceDraft, billing_core.InvoiceSent:
	default:
		return nil, billing_core.Conflictf("invoice in status %q cannot be sent", inv.Status)
	}

	err = db.
		Model(&billing_core.Invoice{}).
		Where("id = ?", inv.ID).
		Update("status", billing_core.InvoiceSent).
		Error
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice sent",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber))

	return &InvoiceSendResponse{Success: true}, nil
}
