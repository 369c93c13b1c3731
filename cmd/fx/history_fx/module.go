package history_fx

import (
	"go.uber.org/fx"

	"cropgenesis/internal/repositories"
	"cropgenesis/internal/services"
	"cropgenesis/pkg/config"
	"cropgenesis/pkg/utils"
)

var Module = fx.Provide(provideHistoryService)

func provideHistoryService(
	planRepo repositories.CropPlanRepository,
	diagnosisRepo repositories.DiagnosisRepository,
	store utils.FileStoreInterface,
	cfg *config.Config,
) services.HistoryServiceInterface {
	return services.NewHistoryService(planRepo, diagnosisRepo, store, cfg)
}
