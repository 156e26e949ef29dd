package main

import (
	"fmt"
	"os"

	billing_service "github.com/mounasaba/billing_service"
	"github.com/mounasaba/billing_service/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewConfig() (*config.Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "configs/config.yaml"
	}
	return config.Load(path)
}

func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
}

type Migration struct {
	Run func() error
}

func NewMigration(
	migrate billing_service.MigrationHandler,
	seed billing_service.SeedHandler,
) *Migration {
	return &Migration{
		Run: func() error {
			err := migrate()
			if err != nil {
				return err
			}

			return seed()
		},
	}
}

func main() {
	mig, err := InitializeMigration()
	if err != nil {
		panic(err)
	}

	err = mig.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
