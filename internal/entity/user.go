package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

type User struct {
	ID                int             `json:"id"`
	Username          string          `json:"username"`
	Email             string          `json:"email"`
	PasswordHash      string          `json:"-"`
	ProfilePictureURL string          `json:"profile_picture_url,omitempty"`
	ContactDetails    string          `json:"contact_details,omitempty"`
	Role              string          `json:"role"`
	IsActive          bool            `json:"is_active"`
	Balance           decimal.Decimal `json:"balance"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CanModify reports whether the actor may mutate a resource owned by ownerID.
// Admins may modify anything; everyone else only their own resources.
func CanModify(actorID int, actorRole string, ownerID int) bool {
	return actorRole == RoleAdmin || actorID == ownerID
}
