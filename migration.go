package billing_service

import (
	"log"

	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/billing_model"
	"gorm.io/gorm"
)

type SeedHandler func() error

func NewSeedHandler(
	db *gorm.DB,
) SeedHandler {
	return func() error {
		log.Println("seeding billing service")

		// invoice sequence rows are created lazily on first invoice;
		// nothing needs seed data yet
		return nil
	}
}

type MigrationHandler func() error

func NewMigrationHandler(
	db *gorm.DB,
) MigrationHandler {
	return func() error {
		log.Println("migrating billing service")
		return db.AutoMigrate(
			&billing_core.PaymentSchedule{},
			&billing_core.PaymentMilestone{},
			&billing_core.Invoice{},
			&billing_core.InvoiceLineItem{},
			&billing_core.InvoiceSequence{},

			&billing_model.Event{},
		)
	}
}
