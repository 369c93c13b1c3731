package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"cropgenesis/internal/models/db_models"
	"cropgenesis/internal/models/request_models"
	"cropgenesis/pkg/utils"
)

func TestRegisterCreatesUserAndToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newUserRepoMock()
	service := NewAuthService(repo)

	result, err := service.Register(context.Background(), request_models.RegisterRequest{
		Name:     "Ravi Kumar",
		Phone:    "9876543210",
		Location: "Warangal",
		Password: "secret123",
		Language: "te",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if result.Token == "" {
		t.Error("expected a signed token")
	}
	if result.User.Language != "te" {
		t.Errorf("language = %q, want te", result.User.Language)
	}
	stored, _ := repo.FindByPhone(context.Background(), "9876543210")
	if stored == nil {
		t.Fatal("user was not persisted")
	}
	if stored.PasswordHash == "secret123" || stored.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestRegisterDefaultsLanguageToEnglish(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	service := NewAuthService(newUserRepoMock())
	result, err := service.Register(context.Background(), request_models.RegisterRequest{
		Name:     "Asha",
		Phone:    "9876500000",
		Location: "Pune",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.User.Language != "en" {
		t.Errorf("language = %q, want en", result.User.Language)
	}
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	existing := &db_models.User{Phone: "9876543210"}
	existing.ID = uuid.New()
	service := NewAuthService(newUserRepoMock(existing))

	_, err := service.Register(context.Background(), request_models.RegisterRequest{
		Name:     "Ravi",
		Phone:    "9876543210",
		Location: "Warangal",
		Password: "secret123",
	})
	if !errors.Is(err, utils.ErrPhoneAlreadyExists) {
		t.Fatalf("err = %v, want ErrPhoneAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := utils.HashPassword("right-password")
	if err != nil {
		t.Fatal(err)
	}
	user := &db_models.User{Phone: "9876543210", PasswordHash: hash}
	user.ID = uuid.New()
	service := NewAuthService(newUserRepoMock(user))

	_, err = service.Login(context.Background(), request_models.LoginRequest{
		Phone:    "9876543210",
		Password: "wrong-password",
	})
	if !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownPhoneLooksLikeBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	service := NewAuthService(newUserRepoMock())
	_, err := service.Login(context.Background(), request_models.LoginRequest{
		Phone:    "9999999999",
		Password: "whatever",
	})
	if !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	hash, err := utils.HashPassword("current")
	if err != nil {
		t.Fatal(err)
	}
	user := &db_models.User{Phone: "9876543210", PasswordHash: hash}
	user.ID = uuid.New()
	service := NewAuthService(newUserRepoMock(user))

	err = service.ChangePassword(context.Background(), user.ID, request_models.ChangePasswordRequest{
		CurrentPassword: "not-current",
		NewPassword:     "brand-new",
	})
	if !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	if err := service.ChangePassword(context.Background(), user.ID, request_models.ChangePasswordRequest{
		CurrentPassword: "current",
		NewPassword:     "brand-new",
	}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if err := utils.ComparePasswords(user.PasswordHash, "brand-new"); err != nil {
		t.Error("new password was not stored")
	}
}
