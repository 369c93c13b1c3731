package response_models

import "github.com/google/uuid"

type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	Language  string    `json:"language"`
	CreatedAt int64     `json:"createdAt"`
	LastLogin int64     `json:"lastLogin"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
