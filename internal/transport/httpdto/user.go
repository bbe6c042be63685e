package httpdto

import (
	"time"

	"playtube/internal/services"
)

// UserDTO is the sanitized user representation. It is built by
// construction without password or refresh-token fields, so no response
// can ever leak them.
type UserDTO struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	AvatarURL     string `json:"avatarUrl"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// FromUserInfo converts a service-level user view to UserDTO
func FromUserInfo(u services.UserInfo) UserDTO {
	return UserDTO{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}
