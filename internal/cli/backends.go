package cli

import (
	"context"
	"io"
	"os"

	"github.com/planline/planline/pkg/cache"
	"github.com/planline/planline/pkg/config"
	"github.com/planline/planline/pkg/errors"
	"github.com/planline/planline/pkg/history"
)

// openCache constructs the result cache selected by cfg.
func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "file":
		return cache.NewFileCache(cfg.Cache.Dir)
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// openHistory constructs the run history store selected by cfg.
func openHistory(ctx context.Context, cfg *config.Config) (history.Store, error) {
	switch cfg.History.Backend {
	case "memory":
		return history.NewMemoryStore(), nil
	case "sqlite":
		return history.NewSQLiteStore(cfg.History.Path)
	case "mongo":
		return history.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown history backend: %s", cfg.History.Backend)
	}
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeArtifact writes rendered bytes to path, or stdout when path is empty.
func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}
