package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/ddtrack/internal/cli"
	"github.com/alexanderramin/ddtrack/internal/config"
	"github.com/alexanderramin/ddtrack/internal/db"
	"github.com/alexanderramin/ddtrack/internal/logging"
	"github.com/alexanderramin/ddtrack/internal/repository"
	"github.com/alexanderramin/ddtrack/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	app := &cli.App{}

	// Detect interactive terminal for confirmation prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Services are wired once flags and config are resolved.
	app.Setup = func(cfg *config.Config) error {
		logger, err := logging.New(cfg.Log.Level, cfg.Log.Encoding, os.Stderr)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		app.Logger = logger

		database, err = db.OpenDB(cfg.DB.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		logger.Debug("database opened", zap.String("path", cfg.DB.Path))

		// Wire repositories
		propertyRepo := repository.NewSQLitePropertyRepo(database)
		itemRepo := repository.NewSQLiteItemRepo(database)
		templateRepo := repository.NewSQLiteTemplateRepo(database)
		statsRepo := repository.NewSQLiteStatsRepo(database)

		// Wire unit of work for transactional operations
		uow := db.NewSQLiteUnitOfWork(database)

		opts := []service.Option{
			service.WithObserver(service.NewZapUseCaseObserver(logger)),
			service.WithRiskThreshold(cfg.Risk.Threshold),
			service.WithDueSoonDays(cfg.DueSoon.Days),
		}
		stats := service.NewStatsService(statsRepo, propertyRepo, opts...)

		app.Properties = service.NewPropertyService(propertyRepo, uow, opts...)
		app.Items = service.NewItemService(itemRepo, propertyRepo, opts...)
		app.Templates = service.NewTemplateService(templateRepo, uow, opts...)
		app.Stats = stats
		app.Reports = service.NewReportService(propertyRepo, stats, opts...)
		return nil
	}

	defer func() {
		if database != nil {
			database.Close()
		}
		if app.Logger != nil {
			_ = app.Logger.Sync()
		}
	}()

	// Execute root command
	return cli.NewRootCmd(app).Execute()
}
