package billing_core

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleTemplate string

const (
	Template305020     ScheduleTemplate = "30_50_20"
	Template5050       ScheduleTemplate = "50_50"
	Template100Upfront ScheduleTemplate = "100_upfront"
)

func (t ScheduleTemplate) Valid() bool {
	switch t {
	case Template305020, Template5050, Template100Upfront:
		return true
	}
	return false
}

type MilestoneType string

const (
	DepositMilestone  MilestoneType = "deposit"
	ProgressMilestone MilestoneType = "progress"
	FinalMilestone    MilestoneType = "final"
	FullMilestone     MilestoneType = "full"
)

type MilestoneStatus string

const (
	MilestonePending   MilestoneStatus = "pending"
	MilestoneDue       MilestoneStatus = "due"
	MilestonePaid      MilestoneStatus = "paid"
	MilestoneOverdue   MilestoneStatus = "overdue"
	MilestoneWaived    MilestoneStatus = "waived"
	MilestoneCancelled MilestoneStatus = "cancelled"
)

func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestonePending, MilestoneDue, MilestonePaid, MilestoneOverdue, MilestoneWaived, MilestoneCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCOD          PaymentMethod = "cod"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCMI          PaymentMethod = "cmi"
	MethodCheck        PaymentMethod = "check"
	MethodMobileMoney  PaymentMethod = "mobile_money"
	MethodCash         PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCOD, MethodBankTransfer, MethodCMI, MethodCheck, MethodMobileMoney, MethodCash:
		return true
	}
	return false
}

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePartial   InvoiceStatus = "partial"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// PaymentSchedule is immutable once created. Milestone amounts always sum
// to TotalAmount, rounding handled by SplitByPercent.
type PaymentSchedule struct {
	ID           uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID        uuid.UUID        `json:"org_id" gorm:"type:uuid;index;not null"`
	EventID      uuid.UUID        `json:"event_id" gorm:"type:uuid;index;not null"`
	TemplateName ScheduleTemplate `json:"template_name" gorm:"not null"`
	TotalAmount  int64            `json:"total_amount" gorm:"not null"`
	CreatedAt    time.Time        `json:"created_at"`

	Milestones []*PaymentMilestone `json:"milestones" gorm:"foreignKey:ScheduleID"`
}

// PaymentMilestone reaches paid at most once; PaymentMethod, PaidAt and
// ConfirmedBy stay null until then.
type PaymentMilestone struct {
	ID               uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ScheduleID       uuid.UUID       `json:"schedule_id" gorm:"type:uuid;index;not null"`
	Label            string          `json:"label"`
	MilestoneType    MilestoneType   `json:"milestone_type" gorm:"not null"`
	Percentage       float64         `json:"percentage"`
	Amount           int64           `json:"amount" gorm:"not null"`
	DueDate          time.Time       `json:"due_date" gorm:"index"`
	Status           MilestoneStatus `json:"status" gorm:"index;not null;default:'pending'"`
	PaymentMethod    *PaymentMethod  `json:"payment_method"`
	PaymentReference *string         `json:"payment_reference"`
	Notes            *string         `json:"notes"`
	PaidAt           *time.Time      `json:"paid_at" gorm:"index"`
	ConfirmedBy      *uuid.UUID      `json:"confirmed_by" gorm:"type:uuid"`

	Schedule *PaymentSchedule `json:"-"`
}

type Invoice struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	OrgID         uuid.UUID     `json:"org_id" gorm:"type:uuid;index;not null"`
	EventID       uuid.UUID     `json:"event_id" gorm:"type:uuid;index;not null"`
	InvoiceNumber string        `json:"invoice_number" gorm:"uniqueIndex;not null"`
	ClientName    string        `json:"client_name"`
	ClientPhone   string        `json:"client_phone"`
	ClientEmail   string        `json:"client_email"`
	Subtotal      int64         `json:"subtotal" gorm:"not null"`
	TaxRate       float64       `json:"tax_rate" gorm:"not null"`
	TaxAmount     int64         `json:"tax_amount" gorm:"not null"`
	TotalAmount   int64         `json:"total_amount" gorm:"not null"`
	AmountDue     int64         `json:"amount_due" gorm:"not null"`
	Status        InvoiceStatus `json:"status" gorm:"index;not null;default:'draft'"`
	IssuedAt      time.Time     `json:"issued_at" gorm:"index"`
	DueDate       time.Time     `json:"due_date"`
	Notes         string        `json:"notes"`

	LineItems []*InvoiceLineItem `json:"line_items" gorm:"foreignKey:InvoiceID"`
}

type InvoiceLineItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID `json:"invoice_id" gorm:"type:uuid;index;not null"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity" gorm:"not null"`
	UnitPrice   int64     `json:"unit_price" gorm:"not null"`
	Total       int64     `json:"total" gorm:"not null"`
	SortOrder   int       `json:"sort_order" gorm:"not null"`
}

// InvoiceSequence is the per-organization monotonic counter backing
// invoice numbering. The row is locked and incremented inside the same
// transaction that inserts the invoice.
type InvoiceSequence struct {
	OrgID     uuid.UUID `json:"org_id" gorm:"type:uuid;primaryKey"`
	Prefix    string    `json:"prefix" gorm:"not null;default:'INV'"`
	LastValue int64     `json:"last_value" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

const DefaultInvoicePrefix = "INV"

type MilestoneList []*PaymentMilestone

func (list MilestoneList) SumAmount() int64 {
	var total int64
	for _, m := range list {
		total += m.Amount
	}
	return total
}
