package billing_model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventRequested   EventStatus = "requested"
	EventAccepted    EventStatus = "accepted"
	EventDepositPaid EventStatus = "deposit_paid"
	EventInProgress  EventStatus = "in_progress"
	EventCompleted   EventStatus = "completed"
	EventCancelled   EventStatus = "cancelled"
)

// Event is the booked event record owned by the wider application. The
// billing engine reads the agreed price and status, and writes
// DepositAmount, BalanceDue and (on deposit settlement) Status.
type Event struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID         uuid.UUID   `json:"org_id" gorm:"type:uuid;index;not null"`
	Title         string      `json:"title"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	CustomerEmail string      `json:"customer_email"`
	EventDate     time.Time   `json:"event_date" gorm:"index"`
	Status        EventStatus `json:"status" gorm:"index;not null"`
	TotalAmount   int64       `json:"total_amount" gorm:"not null"`
	DepositAmount int64       `json:"deposit_amount" gorm:"not null;default:0"`
	BalanceDue    int64       `json:"balance_due" gorm:"not null;default:0"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// NewDepositEscalationHandler advances an accepted event to deposit_paid
// when its deposit milestone settles. The conditional update keeps the
// escalation a no-op for every other status.
func NewDepositEscalationHandler(db *gorm.DB) billing_core.CustomHandler {
	return func(ctx context.Context, evt billing_core.DomainEvent) error {
		deposit, ok := evt.(billing_core.DepositConfirmed)
		if !ok {
			return nil
		}

		return db.WithContext(ctx).
			Model(&Event{}).
			Where("id = ? AND org_id = ? AND status = ?", deposit.EventID, deposit.OrgID, EventAccepted).
			Update("status", EventDepositPaid).
			Error
	}
}
