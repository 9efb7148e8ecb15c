package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Config selects the SQLite database backing the event log.
type Config struct {
	DSN string
}

// Open opens the SQLite database. In-memory databases are pinned to a single
// connection so every query sees the same data.
func Open(cfg Config) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, err
	}
	if isMemory(cfg.DSN) {
		conn.SetMaxOpenConns(1)
		conn.SetConnMaxLifetime(0)
		conn.SetConnMaxIdleTime(0)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// PrivateMemoryDSN names a fresh shared-cache in-memory database. Every call
// yields a database no other connection string can reach.
func PrivateMemoryDSN(name string) string {
	return fmt.Sprintf("file:%s-%s?mode=memory&cache=shared", name, uuid.NewString())
}
