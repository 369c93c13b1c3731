package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"cropgenesis/internal/models/db_models"
	"cropgenesis/internal/models/request_models"
	"cropgenesis/internal/models/response_models"
	"cropgenesis/internal/repositories"
	"cropgenesis/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.UserProfile, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, request request_models.ChangePasswordRequest) error
}

type AuthService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthServiceInterface {
	return &AuthService{
		userRepo: userRepo,
	}
}

func (a *AuthService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error) {
	existing, err := a.userRepo.FindByPhone(ctx, request.Phone)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrPhoneAlreadyExists
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	language := request.Language
	if language == "" {
		language = "en"
	}

	user := &db_models.User{
		Name:         request.Name,
		Phone:        request.Phone,
		Location:     request.Location,
		Language:     language,
		PasswordHash: hashed,
		LastLogin:    time.Now().Unix(),
	}

	if err := a.userRepo.Insert(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	token, err := utils.CreateToken(user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	log.Printf("Registered new user %s", user.ID)
	return &response_models.AuthResponse{
		Token: token,
		User:  toProfile(user),
	}, nil
}

func (a *AuthService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error) {
	user, err := a.userRepo.FindByPhone(ctx, request.Phone)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := a.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		log.Printf("Failed to update last login for user %s: %v", user.ID, err)
	}
	user.LastLogin = time.Now().Unix()

	token, err := utils.CreateToken(user.ID)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.AuthResponse{
		Token: token,
		User:  toProfile(user),
	}, nil
}

func (a *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.UserProfile, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	profile := toProfile(user)
	return &profile, nil
}

func (a *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.UserProfile, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	if request.Name != "" {
		user.Name = request.Name
	}
	if request.Location != "" {
		user.Location = request.Location
	}
	if request.Language != "" {
		user.Language = request.Language
	}

	if err := a.userRepo.Update(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	profile := toProfile(user)
	return &profile, nil
}

func (a *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, request request_models.ChangePasswordRequest) error {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.CurrentPassword); err != nil {
		return utils.ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	user.PasswordHash = hashed

	if err := a.userRepo.Update(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func toProfile(user *db_models.User) response_models.UserProfile {
	return response_models.UserProfile{
		ID:        user.ID,
		Name:      user.Name,
		Phone:     user.Phone,
		Location:  user.Location,
		Language:  user.Language,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}
