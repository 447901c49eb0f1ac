package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/obrienteixeira/tokyo-manicure/internal/postgres"
	"github.com/obrienteixeira/tokyo-manicure/internal/records/memory"
	"github.com/obrienteixeira/tokyo-manicure/internal/storage"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	var result *Result
	var err error
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(config)
	case MemoryBackend:
		result, err = f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	// Default: reports read from the primary store.
	result.Reader = result.Store

	if config.ReportingDSN != "" {
		reader, err := postgres.NewReader(config.ReportingDSN)
		if err != nil {
			if result.Cleanup != nil {
				result.Cleanup()
			}
			return nil, fmt.Errorf("initialize reporting replica: %w", err)
		}
		result.Reader = reader
		primaryCleanup := result.Cleanup
		result.Cleanup = func() error {
			err := reader.Close()
			if primaryCleanup != nil {
				err = errors.Join(err, primaryCleanup())
			}
			return err
		}
		f.logger.Info("Initialized Postgres reporting replica")
	}

	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	if config.SQLiteDBPath == "" {
		return nil, fmt.Errorf("sqlite database path is required for sqlite backend")
	}

	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(Config) (*Result, error) {
	store := memory.New()

	f.logger.Info("Initialized memory backend")

	return &Result{
		Store:   store,
		Cleanup: nil,
	}, nil
}
