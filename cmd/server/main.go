package main

import (
	"context"
	"fmt"

	"github.com/mealdrop/mealdrop/internal/config"
	handlerhttp "github.com/mealdrop/mealdrop/internal/handler/http"
	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/internal/mail"
	"github.com/mealdrop/mealdrop/internal/server"
	"github.com/mealdrop/mealdrop/internal/service"
	"github.com/mealdrop/mealdrop/internal/store"
	"github.com/mealdrop/mealdrop/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("mealdrop-auth")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("rp_id", cfg.Passkeys.RPID).
		Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repositories := store.NewRepositories(db, log)

	mailSender := mail.NewHTTPMailClient(cfg.Mail, log)
	mailWorker := workers.NewMailWorker(mailSender, cfg.Workers.MailQueueSize, log)
	defer mailWorker.Close()

	services, err := service.NewServices(repositories, *cfg, mailWorker, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handler := handlerhttp.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(mailWorker).Run()

	// blocks until a stop signal arrives and shutdown completes
	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
