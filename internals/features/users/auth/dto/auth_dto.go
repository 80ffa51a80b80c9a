// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"time"

	model "tilawahku_backend/internals/features/users/user/model"
)

/* ===================== REQUESTS ===================== */

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Gender   string `json:"gender" validate:"required,oneof=male female"`
}

type LoginRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

/* ===================== RESPONSES ===================== */

type UserResponse struct {
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserGender    string    `json:"user_gender,omitempty"`
	UserRole      string    `json:"user_role"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

func NewUserResponse(m *model.UserModel) *UserResponse {
	if m == nil {
		return nil
	}
	return &UserResponse{
		UserID:        m.UserID.String(),
		UserName:      m.UserName,
		UserGender:    m.UserGender,
		UserRole:      m.UserRole,
		UserCreatedAt: m.UserCreatedAt,
	}
}

type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"` // selalu "Bearer"
	ExpiresIn   int64         `json:"expires_in"` // detik
	User        *UserResponse `json:"user"`
}
