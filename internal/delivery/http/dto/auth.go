package dto

import (
	"campus-jobs/internal/domain/user"
	ucauth "campus-jobs/internal/usecase/auth"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

type SessionResponse struct {
	User         UserResponse `json:"user"`
	ProfileID    uuid.UUID    `json:"profileId"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int64        `json:"expiresIn"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Role: u.Role}
}

func NewSessionResponse(s ucauth.Session) SessionResponse {
	return SessionResponse{
		User:         NewUserResponse(s.User),
		ProfileID:    s.ProfileID,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    int64(s.ExpiresIn.Seconds()),
	}
}
