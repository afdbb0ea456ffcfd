package dto

import (
	"time"

	md "github.com/JMURv/session-guard/internal/models"
	"github.com/google/uuid"
)

type TokenPair struct {
	Access           string    `json:"access"`
	Refresh          string    `json:"refresh"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

type LoginRequest struct {
	Email      string     `json:"email"      validate:"required,email"`
	Password   string     `json:"password"   validate:"required"`
	RememberMe bool       `json:"rememberMe"`
	Token      string     `json:"token"`
	Device     DeviceMeta `json:"device"`
}

type LoginResponse struct {
	Account   AccountSummary `json:"account"`
	Session   SessionSummary `json:"session"`
	Access    string         `json:"access"`
	Refresh   string         `json:"refresh"`
	ExpiresIn int64          `json:"expiresIn"`
}

type RefreshRequest struct {
	Refresh     string `json:"refresh"`
	Fingerprint string `json:"fingerprint"`
}

type RefreshResponse struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
	ExpiresIn int64  `json:"expiresIn"`
}

type LogoutRequest struct {
	Fingerprint string `json:"fingerprint"`
	LogoutAll   bool   `json:"logoutAll"`

	Access  string `json:"-"`
	Refresh string `json:"-"`
}

type AccountSummary struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	OrgID       uuid.UUID  `json:"orgId"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func NewAccountSummary(a *md.Account) AccountSummary {
	return AccountSummary{
		ID:          a.ID,
		Email:       a.Email,
		Role:        a.Role,
		OrgID:       a.OrgID,
		LastLoginAt: a.LastLoginAt,
	}
}

// Principal is the identity an authorized request runs as.
type Principal struct {
	UID         uuid.UUID `json:"uid"`
	Role        string    `json:"role"`
	OrgID       uuid.UUID `json:"orgId"`
	Fingerprint string    `json:"fingerprint"`
}

// CredentialUpdate carries a pair minted while authorizing a request with an
// expired access token. The transport layer turns it into headers/cookies.
type CredentialUpdate struct {
	Access    string
	Refresh   string
	ExpiresIn int64
	Rotated   bool
}

type RecaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}
