package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/controller"
	"github.com/api-sage/ledger-service/internal/adapter/http/middleware"
	"github.com/api-sage/ledger-service/internal/adapter/http/router"
	"github.com/api-sage/ledger-service/internal/adapter/repository/postgres"
	"github.com/api-sage/ledger-service/internal/config"
	"github.com/api-sage/ledger-service/internal/events"
	"github.com/api-sage/ledger-service/internal/events/kafka"
	"github.com/api-sage/ledger-service/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	customerRepo := postgres.NewCustomerRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transferRepo := postgres.NewTransferRepository(db)
	ledgerStore := postgres.NewLedgerStore(db)

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	customerService := services.NewCustomerService(customerRepo)
	accountService := services.NewAccountService(accountRepo, customerRepo)
	transferService := services.NewTransferService(ledgerStore, publisher)
	statementService := services.NewStatementService(accountRepo, transferRepo)
	authService := services.NewAuthService(cfg.AuthUsername, cfg.AuthPasswordHash, cfg.TokenTTL)

	mux := router.New(
		controller.NewCustomerController(customerService),
		controller.NewAccountController(accountService),
		controller.NewTransferController(transferService),
		controller.NewStatementController(statementService),
		controller.NewAuthController(authService),
		middleware.BearerAuth(authService.ValidateToken),
	)

	log.Printf("ledger service listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("serve http: %v", err)
	}
}
