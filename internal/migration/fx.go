package migration

import (
	"github.com/stockswift/stockswift/internal/config"
	productdomain "github.com/stockswift/stockswift/internal/product/domain"
	saledomain "github.com/stockswift/stockswift/internal/sale/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "sqlite" {
			// Server dialects let gorm derive the schema from the models.
			return conn.AutoMigrate(
				&productdomain.Product{},
				&saledomain.Sale{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
