package cropplan_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"cropgenesis/internal/repositories"
	"cropgenesis/internal/services"
	"cropgenesis/pkg/config"
	"cropgenesis/pkg/memcache"
	"cropgenesis/pkg/utils"
)

var Module = fx.Provide(
	providePlanRepo,
	providePlanService,
)

func providePlanRepo(db *gorm.DB) repositories.CropPlanRepository {
	return repositories.NewCropPlanRepository(db)
}

func providePlanService(
	planRepo repositories.CropPlanRepository,
	userRepo repositories.UserRepository,
	ai utils.AIClientInterface,
	tts utils.TTSClientInterface,
	store utils.FileStoreInterface,
	statusCache memcache.AIStatusStore,
	cfg *config.Config,
) services.CropPlanServiceInterface {
	return services.NewCropPlanService(planRepo, userRepo, ai, tts, store, statusCache, cfg)
}
