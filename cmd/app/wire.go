//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	billing_service "github.com/mounasaba/billing_service"
)

func InitializeApp() (*App, error) {
	wire.Build(
		NewConfig,
		NewLogger,
		NewDatabase,
		NewAuthorization,
		NewEngine,
		billing_service.NewRegister,
		billing_service.NewMigrationHandler,
		NewApp,
	)

	return &App{}, nil
}
