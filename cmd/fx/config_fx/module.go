package config_fx

import (
	"go.uber.org/fx"

	"cropgenesis/pkg/config"
)

var Module = fx.Provide(config.Load)
