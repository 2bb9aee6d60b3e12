package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership roles in baby_users
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Baby represents a tracked baby profile shared by a household
type Baby struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Birthday   *time.Time `json:"birthday,omitempty" db:"birthday"` // birthday or due date
	Gender     *string    `json:"gender,omitempty" db:"gender"`     // "male", "female", "other"
	InviteCode string     `json:"invite_code" db:"invite_code"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// BabyMember represents a user's membership in a baby's household
type BabyMember struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BabyID    uuid.UUID `json:"baby_id" db:"baby_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Role      string    `json:"role" db:"role"` // "owner", "member"
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
