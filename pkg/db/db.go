package db

import (
	"time"

	"github.com/stockswift/stockswift/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module provides the shared gorm handle, owned by the composition root and
// injected into every repository.
var Module = fx.Module("db",
	fx.Provide(Open),
)

// Open opens the configured database and applies connection pool settings.
// Opening an already-initialized store is a no-op schema-wise; the schema
// itself is managed by the migration module.
func Open(cfg config.Config) (*gorm.DB, error) {
	dialect, err := Dialect(cfg)
	if err != nil {
		return nil, WrapStorage("open", err)
	}

	conn, err := gorm.Open(dialect, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, WrapStorage("open", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, WrapStorage("open", err)
	}

	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConn)
	if cfg.DBMaxOpenConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConn)
	}
	if cfg.DBConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Second)
	}

	return conn, nil
}
