package models

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID             uuid.UUID  `db:"id"              json:"id"`
	Email          string     `db:"email"           json:"email"`
	Password       string     `db:"password"        json:"-"`
	Role           string     `db:"role"            json:"role"`
	OrgID          uuid.UUID  `db:"org_id"          json:"orgId"`
	FailedAttempts int        `db:"failed_attempts" json:"failedAttempts"`
	LockUntil      *time.Time `db:"lock_until"      json:"lockUntil,omitempty"`
	LastLoginAt    *time.Time `db:"last_login_at"   json:"lastLoginAt,omitempty"`
	MaxDevices     int        `db:"max_devices"     json:"maxDevices"`
	CreatedAt      time.Time  `db:"created_at"      json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at"      json:"updatedAt"`
}
