package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditKind string

const (
	AuditLoginSuccess        AuditKind = "login_success"
	AuditLoginFailed         AuditKind = "login_failed"
	AuditLogout              AuditKind = "logout"
	AuditAccountLocked       AuditKind = "account_locked"
	AuditCredentialMigrated  AuditKind = "credential_migrated"
	AuditDeviceLimitExceeded AuditKind = "device_limit_exceeded"
	AuditTokenRefreshed      AuditKind = "token_refreshed"
	AuditRefreshReuse        AuditKind = "refresh_reuse"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type AuditEvent struct {
	ID          uuid.UUID      `db:"id"          json:"id"`
	AccountID   *uuid.UUID     `db:"account_id"  json:"accountId"`
	Kind        AuditKind      `db:"kind"        json:"kind"`
	Severity    Severity       `db:"severity"    json:"severity"`
	Fingerprint string         `db:"fingerprint" json:"deviceFingerprint"`
	IP          string         `db:"ip"          json:"ipAddress"`
	Metadata    map[string]any `db:"-"           json:"metadata"`
	CreatedAt   time.Time      `db:"created_at"  json:"timestamp"`
}
