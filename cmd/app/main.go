package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	billing_service "github.com/mounasaba/billing_service"
	"github.com/mounasaba/billing_service/common"
	"github.com/mounasaba/billing_service/config"
	"go.uber.org/zap"
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

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	return common.NewLogger(common.LoggerConfig{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
	})
}

func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func NewAuthorization(cfg *config.Config) common.Authorization {
	return common.NewAuthorization(cfg.Auth.JWTSecret)
}

func NewEngine() *gin.Engine {
	return gin.New()
}

type App struct {
	Run func() error
}

func NewApp(
	cfg *config.Config,
	engine *gin.Engine,
	logger *zap.Logger,
	register billing_service.RegisterHandler,
	migrate billing_service.MigrationHandler,
) *App {
	return &App{
		Run: func() error {
			if err := migrate(); err != nil {
				return err
			}

			register()

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			logger.Info("billing service listening", zap.String("addr", addr))

			srv := &http.Server{
				Addr:         addr,
				Handler:      engine,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			return srv.ListenAndServe()
		},
	}
}

func main() {
	app, err := InitializeApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
