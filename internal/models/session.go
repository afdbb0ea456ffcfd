package models

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type DeviceSession struct {
	ID             uuid.UUID  `db:"id"               json:"id"`
	AccountID      uuid.UUID  `db:"account_id"       json:"accountId"`
	Fingerprint    string     `db:"fingerprint"      json:"fingerprint"`
	Name           string     `db:"name"             json:"name"`
	DeviceType     string     `db:"device_type"      json:"deviceType"`
	OS             string     `db:"os"               json:"os"`
	Browser        string     `db:"browser"          json:"browser"`
	UA             string     `db:"user_agent"       json:"ua"`
	IP             string     `db:"ip"               json:"ip"`
	IsActive       bool       `db:"is_active"        json:"isActive"`
	IsTrusted      bool       `db:"is_trusted"       json:"isTrusted"`
	AccessToken    string     `db:"access_token"     json:"-"`
	RefreshToken   string     `db:"refresh_token"    json:"-"`
	TokenExpiresAt *time.Time `db:"token_expires_at" json:"tokenExpiresAt,omitempty"`
	LockUntil      *time.Time `db:"lock_until"       json:"lockUntil,omitempty"`
	FailedAttempts int        `db:"failed_attempts"  json:"failedAttempts"`
	LoginCount     int        `db:"login_count"      json:"loginCount"`
	LastActive     time.Time  `db:"last_active"      json:"lastActive"`
	LastLoginAt    *time.Time `db:"last_login_at"    json:"lastLoginAt,omitempty"`
	LastLogoutAt   *time.Time `db:"last_logout_at"   json:"lastLogoutAt,omitempty"`
	ActionLog      ActionLog  `db:"action_log"       json:"actionLog"`
	CreatedAt      time.Time  `db:"created_at"       json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at"       json:"updatedAt"`
}

// IsLocked reports whether the device lock is still in force at now.
func (s *DeviceSession) IsLocked(now time.Time) bool {
	return s.LockUntil != nil && now.Before(*s.LockUntil)
}

type ActionLogEntry struct {
	Action  string         `json:"action"`
	Details map[string]any `json:"details,omitempty"`
	At      time.Time      `json:"at"`
}

// ActionLog is stored as a jsonb array, oldest entry first.
type ActionLog []ActionLogEntry

// Append adds e and evicts the oldest entries above limit.
func (l ActionLog) Append(e ActionLogEntry, limit int) ActionLog {
	out := append(l, e)
	if limit > 0 && len(out) > limit {
		out = append(ActionLog(nil), out[len(out)-limit:]...)
	}
	return out
}

func (l ActionLog) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *ActionLog) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = ActionLog{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported action log type")
	}
	return json.Unmarshal(data, l)
}
