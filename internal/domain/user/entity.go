package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents the users table. Username and email carry unique
// indexes at the database level; the registration pre-check is only a
// fast path, concurrent registrations are settled by these constraints.
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Username      string         `gorm:"uniqueIndex;not null"` // stored lowercase
	Email         string         `gorm:"uniqueIndex;not null"`
	FullName      string         `gorm:"not null"`
	PasswordHash  string         `gorm:"not null"`
	AvatarURL     string         `gorm:"not null"`
	CoverImageURL string
	RefreshToken  sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (User) TableName() string {
	return "users"
}
