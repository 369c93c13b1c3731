package controllers_fx

import (
	"go.uber.org/fx"

	"cropgenesis/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewCropPlanController),
	fx.Provide(controllers.NewDiagnosisController),
	fx.Provide(controllers.NewHistoryController),
)
