package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"departamento/internal/config"
	"departamento/internal/db"
	"departamento/internal/engine"
	"departamento/internal/events"
	"departamento/internal/migrate"
	"departamento/internal/validation"
)

// App bundles the engine with the resources it owns.
type App struct {
	Config *config.Config
	Engine engine.Engine
	Logger *zap.Logger
	conn   *sql.DB
}

// Policy translates the validation section of the config.
func Policy(cfg config.ValidationConfig) validation.Policy {
	return validation.Policy{
		EnforceCargoEnum: cfg.EnforceCargoEnum,
		EnforceNotFuture: cfg.EnforceNotFuture,
	}
}

// New opens the event log when enabled, builds the engine, and loads the
// configured fixtures.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{Config: cfg, Logger: logger}

	var writer *events.Writer
	if cfg.Audit.Enabled {
		dsn := cfg.Audit.DSN
		if dsn == config.DefaultAuditDSN {
			// the default in-memory log belongs to this App alone
			dsn = db.PrivateMemoryDSN("departamento-eventos")
		}
		conn, err := db.Open(db.Config{DSN: dsn})
		if err != nil {
			return nil, fmt.Errorf("open audit db: %w", err)
		}
		if err := migrate.Migrate(ctx, conn, logger); err != nil {
			conn.Close()
			return nil, fmt.Errorf("migrate audit db: %w", err)
		}
		a.conn = conn
		writer = &events.Writer{DB: conn}
	}

	a.Engine = engine.New(Policy(cfg.Validation), writer, logger)

	if cfg.Seed.Enabled {
		seed, err := config.LoadSeed(cfg.Seed.File)
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := a.Engine.Seed(ctx, seed); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *App) Close() error {
	if a.conn == nil {
		return nil
	}
	err := a.conn.Close()
	a.conn = nil
	return err
}
