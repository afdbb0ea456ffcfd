package dto

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	md "github.com/JMURv/session-guard/internal/models"
	"github.com/google/uuid"
)

// DeviceMeta holds the client signals a device fingerprint is derived from.
type DeviceMeta struct {
	Fingerprint string `json:"fingerprint"`
	Name        string `json:"name"`
	DeviceType  string `json:"deviceType"`
	OS          string `json:"os"`
	Browser     string `json:"browser"`
	Screen      string `json:"screen"`
	Timezone    string `json:"timezone"`
	IP          string `json:"-"`
	UA          string `json:"-"`
}

// EnsureFingerprint derives a fingerprint from the other client signals
// when the client did not send one, and returns it.
func (d *DeviceMeta) EnsureFingerprint() string {
	if d.Fingerprint != "" {
		return d.Fingerprint
	}

	sum := sha256.Sum256([]byte(strings.Join(
		[]string{d.UA, d.DeviceType, d.OS, d.Browser, d.Screen, d.Timezone}, "|",
	)))
	d.Fingerprint = hex.EncodeToString(sum[:16])
	return d.Fingerprint
}

type DeviceAction string

const (
	ActionTrust   DeviceAction = "trust"
	ActionUntrust DeviceAction = "untrust"
	ActionLock    DeviceAction = "lock"
	ActionUnlock  DeviceAction = "unlock"
	ActionLogout  DeviceAction = "logout"
)

type DeviceActionRequest struct {
	Action DeviceAction `json:"action" validate:"required"`
}

type ActivityRequest struct {
	Action  string         `json:"action"  validate:"required,max=64"`
	Details map[string]any `json:"details"`
}

type SessionSummary struct {
	ID          uuid.UUID  `json:"id"`
	Fingerprint string     `json:"fingerprint"`
	Name        string     `json:"name"`
	DeviceType  string     `json:"deviceType"`
	OS          string     `json:"os"`
	Browser     string     `json:"browser"`
	IP          string     `json:"ip"`
	IsActive    bool       `json:"isActive"`
	IsTrusted   bool       `json:"isTrusted"`
	IsCurrent   bool       `json:"isCurrent"`
	LockUntil   *time.Time `json:"lockUntil,omitempty"`
	LoginCount  int        `json:"loginCount"`
	LastActive  time.Time  `json:"lastActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func NewSessionSummary(s *md.DeviceSession, currentFP string) SessionSummary {
	return SessionSummary{
		ID:          s.ID,
		Fingerprint: s.Fingerprint,
		Name:        s.Name,
		DeviceType:  s.DeviceType,
		OS:          s.OS,
		Browser:     s.Browser,
		IP:          s.IP,
		IsActive:    s.IsActive,
		IsTrusted:   s.IsTrusted,
		IsCurrent:   currentFP != "" && s.Fingerprint == currentFP,
		LockUntil:   s.LockUntil,
		LoginCount:  s.LoginCount,
		LastActive:  s.LastActive,
		LastLoginAt: s.LastLoginAt,
	}
}

type ListSessionsResponse struct {
	Data   []SessionSummary `json:"data"`
	Active int              `json:"active"`
	Limit  int              `json:"limit"`
}
