package request_models

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"required,len=10,numeric"`
	Location string `json:"location" binding:"required,min=2,max=200"`
	Password string `json:"password" binding:"required,min=6"`
	Language string `json:"language" binding:"omitempty,oneof=en hi te ta bn mr gu kn ml or pa as"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required,len=10,numeric"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=100"`
	Location string `json:"location" binding:"omitempty,min=2,max=200"`
	Language string `json:"language" binding:"omitempty,oneof=en hi te ta bn mr gu kn ml or pa as"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}
