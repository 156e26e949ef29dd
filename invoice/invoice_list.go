package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/common"
)

type InvoiceListRequest struct {
	Limit  int    `json:"limit" form:"limit"`
	Cursor string `json:"cursor" form:"cursor"`
}

type InvoiceEventInfo struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	CustomerName string    `json:"customer_name"`
	EventDate    time.Time `json:"event_date"`
}

type InvoiceItem struct {
	billing_core.Invoice
	Event InvoiceEventInfo `json:"event" gorm:"embedded;embeddedPrefix:event_"`
}

type InvoiceListResponse struct {
	Invoices   []*InvoiceItem `json:"invoices"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// InvoiceList implements InvoiceService. Keyset pagination over
// (issued_at, id) descending, each row carrying a read-only projection
// of its event.
func (s *invoiceServiceImpl) InvoiceList(
	ctx context.Context,
	req *InvoiceListRequest,
) (*InvoiceListResponse, error) {
	identity, err := common.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}

	limit := common.ClampLimit(req.Limit)

	db := s.db.WithContext(ctx)
	query := db.
		Model(&billing_core.Invoice{}).
		Select([]string{
			"invoices.*",
			"e.id as event_id",
			"e.title as event_title",
			"e.customer_name as event_customer_name",
			"e.event_date as event_event_date",
		}).
		Joins("join events e on e.id = invoices.event_id").
		Where("invoices.org_id = ?", identity.OrgID)

	if req.Cursor != "" {
		cursor, err := common.DecodeCursor(req.Cursor)
		if err != nil {
			return nil, err
		}
		query = query.Where(
			"(invoices.issued_at < ?) OR (invoices.issued_at = ? AND invoices.id < ?)",
			cursor.Time, cursor.Time, cursor.ID,
		)
	}

	result := InvoiceListResponse{
		Invoices: []*InvoiceItem{},
	}

	err = query.
		Order("invoices.issued_at desc, invoices.id desc").
		Limit(limit + 1).
		Find(&result.Invoices).
		Error
	if err != nil {
		return nil, err
	}

	if len(result.Invoices) > limit {
		result.Invoices = result.Invoices[:limit]
		last := result.Invoices[limit-1]
		result.NextCursor = common.EncodeCursor(last.IssuedAt, last.Invoice.ID)
	}

	for _, item := range result.Invoices {
		err = db.
			Model(&billing_core.InvoiceLineItem{}).
			Where("invoice_id = ?", item.Invoice.ID).
			Order("sort_order asc").
			Find(&item.LineItems).
			Error
		if err != nil {
			return nil, err
		}
	}

	return &result, nil
}
