package database

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BuzzLyutic/task-tracker/internal/config"
	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

// Store owns the storage engine handle for the lifetime of the process.
type Store struct {
	kind   string
	tasks  repo.TaskRepository
	pool   *pgxpool.Pool
	gormDB *gorm.DB
	logger *zap.Logger
	closed atomic.Bool
}

var ErrClosed = errors.New("storage is closed")

// Open connects to the configured backend and makes sure the schema exists.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		return openPostgres(ctx, cfg, logger)
	case config.StorageSQLite:
		return openSQLite(ctx, cfg, logger)
	case config.StorageMemory:
		logger.Info("Using in-memory storage")
		return &Store{kind: cfg.Storage, tasks: repo.NewMemoryTaskRepo(), logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

func openPostgres(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Successfully connected to the Database!")

	if err := Migrate(pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{
		kind:   cfg.Storage,
		tasks:  repo.NewTaskRepo(pool),
		pool:   pool,
		logger: logger,
	}, nil
}

func openSQLite(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: consistent.
	sqlDB.SetMaxOpenConns(1)

	if err := db.WithContext(ctx).AutoMigrate(&model.Task{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	logger.Info("Successfully opened the SQLite database", zap.String("path", cfg.SQLitePath))

	return &Store{
		kind:   cfg.Storage,
		tasks:  repo.NewSQLiteTaskRepo(db),
		gormDB: db,
		logger: logger,
	}, nil
}

func (s *Store) Kind() string {
	return s.kind
}

func (s *Store) Tasks() repo.TaskRepository {
	return s.tasks
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	switch {
	case s.closed.Load():
		return ErrClosed
	case s.pool != nil:
		return s.pool.Ping(ctx)
	case s.gormDB != nil:
		sqlDB, err := s.gormDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	default:
		return nil
	}
}

// Close releases the engine handle. It is safe to call more than once.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	if s.pool != nil {
		s.pool.Close()
	}
	if s.gormDB != nil {
		if sqlDB, err := s.gormDB.DB(); err != nil {
			errs = append(errs, err)
		} else if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.logger.Info("Storage closed", zap.String("storage", s.kind))
	return errors.Join(errs...)
}
