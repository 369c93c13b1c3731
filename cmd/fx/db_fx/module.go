package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"cropgenesis/internal/infra"
	"cropgenesis/pkg/config"
)

var Module = fx.Options(
	fx.Provide(provideDatabase),
	fx.Invoke(infra.Migrate),
)

func provideDatabase(lc fx.Lifecycle, cfg *config.Config) *gorm.DB {
	db := infra.InitPostgresql(cfg.PostgresURL)
	lc.Append(fx.StopHook(func() {
		infra.ClosePostgresql(db)
	}))
	return db
}
