package upload_fx

import (
	"go.uber.org/fx"

	"cropgenesis/pkg/config"
	"cropgenesis/pkg/utils"
)

var Module = fx.Provide(provideFileStore)

func provideFileStore(cfg *config.Config) (utils.FileStoreInterface, error) {
	return utils.NewFileStore(cfg.UploadDir, cfg.MaxUploadBytes())
}
