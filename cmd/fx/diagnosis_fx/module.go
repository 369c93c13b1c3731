package diagnosis_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"cropgenesis/internal/repositories"
	"cropgenesis/internal/services"
	"cropgenesis/pkg/config"
	"cropgenesis/pkg/utils"
)

var Module = fx.Provide(
	provideDiagnosisRepo,
	provideDiagnosisService,
)

func provideDiagnosisRepo(db *gorm.DB) repositories.DiagnosisRepository {
	return repositories.NewDiagnosisRepository(db)
}

func provideDiagnosisService(
	diagnosisRepo repositories.DiagnosisRepository,
	userRepo repositories.UserRepository,
	ai utils.AIClientInterface,
	tts utils.TTSClientInterface,
	store utils.FileStoreInterface,
	cfg *config.Config,
) services.DiagnosisServiceInterface {
	return services.NewDiagnosisService(diagnosisRepo, userRepo, ai, tts, store, cfg)
}
