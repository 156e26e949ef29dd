package billing_core

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DomainEvent is published inside a transaction and delivered to
// registered handlers only after the transaction commits.
type DomainEvent interface {
	EventName() string
}

// DepositConfirmed is emitted when a deposit-type milestone settles.
// The booking lifecycle owner consumes it to advance the event status.
type DepositConfirmed struct {
	OrgID       uuid.UUID
	EventID     uuid.UUID
	MilestoneID uuid.UUID
}

// EventName implements DomainEvent.
func (DepositConfirmed) EventName() string {
	return "deposit_confirmed"
}

type TxManage interface {
	Publish(evt DomainEvent)
	Events() []DomainEvent
}

type txManageImpl struct {
	tx     *gorm.DB
	events []DomainEvent
}

// Publish implements TxManage.
func (t *txManageImpl) Publish(evt DomainEvent) {
	t.events = append(t.events, evt)
}

// Events implements TxManage.
func (t *txManageImpl) Events() []DomainEvent {
	return t.events
}

type CustomHandler func(ctx context.Context, evt DomainEvent) error

var customHandler = map[string]CustomHandler{}

func RegisterCustomHandler(name string, handler CustomHandler) func() {
	customHandler[name] = handler
	return func() {
		delete(customHandler, name)
	}
}

var ErrSkipTransaction = errors.New("skip transaction")

// OpenTransaction runs handle inside a gorm transaction, collecting the
// domain events it publishes. Handlers registered via
// RegisterCustomHandler run after commit, once per event.
func OpenTransaction(ctx context.Context, db *gorm.DB, handle func(tx *gorm.DB, mng TxManage) error) error {
	var err error
	var events []DomainEvent

	err = db.Transaction(func(tx *gorm.DB) error {
		hdlr := txManageImpl{
			tx: tx,
		}

		err = handle(tx, &hdlr)
		if err != nil {
			return err
		}

		events = hdlr.events
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSkipTransaction) {
			return nil
		}

		return err
	}

	for _, evt := range events {
		for _, handler := range customHandler {
			err = handler(ctx, evt)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
