package prefs

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"domain_expiry/internal/cache"
	"domain_expiry/internal/config"
	"domain_expiry/internal/db"
)

// Open builds the Provider selected by cfg.Preferences.Backend
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Entry) (Provider, error) {
	logger = logger.WithField("backend", cfg.Preferences.Backend)

	switch cfg.Preferences.Backend {
	case config.BackendMemory:
		logger.Warn("Preferences are kept in memory and lost on restart")
		return NewMemoryProvider(), nil

	case config.BackendRedis:
		rdb, err := cache.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		return NewRedisProvider(rdb), nil

	case config.BackendMySQL:
		gdb, err := db.InitMySQL(cfg.MySQL.DSN, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			if err := db.Migrate(gdb, logger); err != nil {
				return nil, err
			}
		}
		return NewGormProvider(gdb), nil

	case config.BackendINI:
		return NewINIProvider(cfg.Preferences.INIPath)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Preferences.Backend)
	}
}
