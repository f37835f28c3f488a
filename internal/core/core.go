package core

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/siahsang/userdirectory/internal/utils/databaseutils"
)

// Core is the Postgres-backed user store.
type Core struct {
	log         *slog.Logger
	sqlTemplate *databaseutils.SQLTemplate
}

func NewCore(dbConn *sql.DB, log *slog.Logger, queryTimeout time.Duration) *Core {
	return &Core{
		log:         log,
		sqlTemplate: databaseutils.NewSQLTemplate(dbConn, queryTimeout),
	}
}
