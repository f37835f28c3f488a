package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golang-cz/devslog"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/userdirectory/internal/config"
	"github.com/siahsang/userdirectory/internal/core"
	"github.com/siahsang/userdirectory/internal/data"
	"github.com/siahsang/userdirectory/internal/database"
)

// userStore is satisfied by core.Core (Postgres) and core.MemoryCore.
type userStore interface {
	CreateNewUser(ctx context.Context, user *data.User) error
	GetAllUsers(ctx context.Context) ([]*data.User, error)
}

type application struct {
	config *config.Config
	logger *slog.Logger
	users  userStore
}

func main() {
	var (
		configPath string
		migrateDB  bool
	)
	flag.StringVar(&configPath, "config", "", "path to the TOML configuration file")
	flag.BoolVar(&migrateDB, "migrate", false, "apply database migrations before serving")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := configLogger(&cfg.Logging, os.Stdout)
	if err := run(cfg, logger, migrateDB); err != nil {
		logger.Error("Application stopped with error", "error", err.Error(), "stack", xerrors.Sprint(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, migrateDB bool) error {
	logger.Info("Starting application...")

	users, closeStore, err := openUserStore(cfg, logger, migrateDB)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("Error closing database connection", "error", err.Error())
		}
	}()

	app := &application{
		config: cfg,
		logger: logger,
		users:  users,
	}

	handler, err := app.routes()
	if err != nil {
		return err
	}

	return app.serve(handler)
}

func configLogger(cfg *config.LoggingConfig, w io.Writer) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{
		AddSource: cfg.AddSource,
		Level:     cfg.SlogLevel(),
	}

	if cfg.Format == config.FormatJSON {
		return slog.New(slog.NewJSONHandler(w, handlerOptions))
	}

	handler := devslog.NewHandler(
		w, &devslog.Options{
			HandlerOptions:  handlerOptions,
			NewLineAfterLog: false,
		})

	return slog.New(handler)
}

func openUserStore(cfg *config.Config, logger *slog.Logger, migrateDB bool) (userStore, func() error, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("Using in-memory user store, data is lost on exit")
		return core.NewMemoryCore(logger), func() error { return nil }, nil
	}

	db, err := database.Open(context.Background(), &cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection established successfully", "host", cfg.Database.Host, "name", cfg.Database.Name)

	if migrateDB {
		if err := database.Migrate(db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	return core.NewCore(db, logger, cfg.Database.QueryTimeoutDuration()), db.Close, nil
}
