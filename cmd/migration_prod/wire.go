//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	billing_service "github.com/mounasaba/billing_service"
)

func InitializeMigration() (*Migration, error) {
	wire.Build(
		NewConfig,
		NewDatabase,
		billing_service.NewMigrationHandler,
		billing_service.NewSeedHandler,
		NewMigration,
	)

	return &Migration{}, nil
}
