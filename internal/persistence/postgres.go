package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/config"
)

const applicationName = "directory-service"

// Postgres owns the pgx pool shared by the user and customer-service repositories.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres opens the pool and verifies it with a ping. The DSN is required;
// callers decide beforehand whether Postgres is configured at all.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres: empty DSN")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse POSTGRES_DSN: %w", err)
	}
	applyPoolLimits(poolCfg, cfg)
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	if cfg.LogQueries {
		poolCfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   queryLogger(logger.Named("pgx")),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("connected to postgres",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns))
	return &Postgres{pool: pool}, nil
}

func applyPoolLimits(poolCfg *pgxpool.Config, cfg config.PostgresConfig) {
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}
}

// queryLogger forwards pgx trace output to zap at the matching level.
func queryLogger(logger *zap.Logger) tracelog.Logger {
	return tracelog.LoggerFunc(func(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		fields := make([]zap.Field, 0, len(data))
		for k, v := range data {
			fields = append(fields, zap.Any(k, v))
		}
		switch level {
		case tracelog.LogLevelError:
			logger.Error(msg, fields...)
		case tracelog.LogLevelWarn:
			logger.Warn(msg, fields...)
		case tracelog.LogLevelInfo:
			logger.Info(msg, fields...)
		default:
			logger.Debug(msg, fields...)
		}
	})
}

func (p *Postgres) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}

// Pool returns the underlying pgx pool, or nil when unopened.
func (p *Postgres) Pool() *pgxpool.Pool {
	if p == nil {
		return nil
	}
	return p.pool
}

// Ping verifies database connectivity for the readiness probe.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.pool == nil {
		return errors.New("postgres pool not configured")
	}
	return p.pool.Ping(ctx)
}
