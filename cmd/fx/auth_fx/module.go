package auth_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"cropgenesis/internal/repositories"
	"cropgenesis/internal/services"
)

var Module = fx.Provide(
	provideUserRepo,
	provideAuthService,
)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAuthService(userRepo repositories.UserRepository) services.AuthServiceInterface {
	return services.NewAuthService(userRepo)
}
