package admin

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser marks a user as a catalog moderator. Membership in this
// table is the single authorization gate for admin endpoints.
type AdminUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Email     string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
