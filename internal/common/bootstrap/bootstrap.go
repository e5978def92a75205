package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/pkravets/huddle-auth/internal/auth/repository"
	"github.com/pkravets/huddle-auth/internal/common/config"
	"github.com/pkravets/huddle-auth/internal/common/constants"
	"github.com/pkravets/huddle-auth/internal/common/db"
	"github.com/pkravets/huddle-auth/internal/common/logger"
)

// App owns process-level resources: the logger, the connection pool and the
// repository built on it. The pool is opened here and closed by a server
// shutdown hook; nothing else manages its lifecycle.
type App struct {
	Log      *logger.Logger
	Config   config.Config
	Pool     *pgxpool.Pool
	UserRepo repository.UserRepository
}

func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, "auth", cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	if pool == nil {
		return nil, fmt.Errorf("failed to initialize database pool")
	}

	if err := repository.EnsureSchema(context.Background(), pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	db.StartPoolMetrics(pool, constants.DBPoolMetricsInterval)

	return &App{
		Log:      log,
		Config:   cfg,
		Pool:     pool,
		UserRepo: repository.NewPgUserRepository(pool),
	}, nil
}
