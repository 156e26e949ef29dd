package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/billing_model"
	"github.com/mounasaba/billing_service/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceLineItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   int64   `json:"unit_price"`
	Total       int64   `json:"total"`
}

type InvoiceCreateRequest struct {
	EventID uuid.UUID              `json:"event_id" binding:"required"`
	Items   []InvoiceLineItemInput `json:"items" binding:"required"`
	DueDate time.Time              `json:"due_date" binding:"required"`
	Notes   string                 `json:"notes"`
	TaxRate *float64               `json:"tax_rate"`
}

const DefaultTaxRate = 20.0

// nextInvoiceNumber locks and increments the organization's sequence
// row, creating it on first use. The counter never resets; the year in
// the label is presentational only, so numbering continues across a
// year boundary.
func nextInvoiceNumber(tx *gorm.DB, orgID uuid.UUID, now time.Time) (string, error) {
	var seq billing_core.InvoiceSequence
	err := tx.
		Clauses(clause.Locking{
			Strength: "UPDATE",
		}).
		Model(&billing_core.InvoiceSequence{}).
		Where("org_id = ?", orgID).
		Find(&seq).
		Error
	if err != nil {
		return "", err
	}

	if seq.OrgID == uuid.Nil {
		seq = billing_core.InvoiceSequence{
			OrgID:  orgID,
			Prefix: billing_core.DefaultInvoicePrefix,
		}
	}

	seq.LastValue += 1
	err = tx.Save(&seq).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d-%04d", seq.Prefix, now.Year(), seq.LastValue), nil
}

// InvoiceCreate implements InvoiceService.
func (s *invoiceServiceImpl) InvoiceCreate(
	ctx context.Context,
	req *InvoiceCreateRequest,
) (*billing_core.Invoice, error) {
	identity, err := common.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := common.RequireManager(identity); err != nil {
		return nil, err
	}

	if len(req.Items) == 0 {
		return nil, billing_core.InvalidInputf("invoice needs at least one line item")
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, billing_core.InvalidInputf("item %d: quantity must be positive", i)
		}
		if item.UnitPrice < 0 || item.Total < 0 {
			return nil, billing_core.InvalidInputf("item %d: negative amount", i)
		}
	}

	taxRate := DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	if taxRate < 0 || taxRate > 100 {
		return nil, billing_core.InvalidInputf("tax rate must be between 0 and 100")
	}

	var subtotal int64
	for _, item := range req.Items {
		subtotal += item.Total
	}
	taxAmount := billing_core.Percent(subtotal, taxRate)

	db := s.db.WithContext(ctx)
	now := time.Now()
	var inv billing_core.Invoice

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

		number, err := nextInvoiceNumber(tx, identity.OrgID, now)
		if err != nil {
			return err
		}

		inv = billing_core.Invoice{
			ID:            uuid.New(),
			OrgID:         identity.OrgID,
			EventID:       event.ID,
			InvoiceNumber: number,
			ClientName:    event.CustomerName,
			ClientPhone:   event.CustomerPhone,
			ClientEmail:   event.CustomerEmail,
			Subtotal:      subtotal,
			TaxRate:       taxRate,
			TaxAmount:     taxAmount,
			TotalAmount:   subtotal + taxAmount,
			AmountDue:     subtotal + taxAmount,
			Status:        billing_core.InvoiceDraft,
			IssuedAt:      now,
			DueDate:       req.DueDate,
			Notes:         req.Notes,
		}

		err = tx.Create(&inv).Error
		if err != nil {
			return err
		}

		for i, item := range req.Items {
			inv.LineItems = append(inv.LineItems, &billing_core.InvoiceLineItem{
				ID:          uuid.New(),
				InvoiceID:   inv.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Total:       item.Total,
				SortOrder:   i,
			})
		}

		return tx.Create(inv.LineItems).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Int64("total_amount", inv.TotalAmount))

	return &inv, nil
}
