package config

import "time"

type ctxKey string

const (
	UidKey         ctxKey = "uid"
	ClaimsKey      ctxKey = "claims"
	FingerprintKey ctxKey = "fingerprint"
	IpKey          ctxKey = "ip"
	UaKey          ctxKey = "ua"
	DeviceKey      ctxKey = "device"
)

const ErrorSpanTag = "error"

const (
	DefaultCacheTime = time.Hour
	MinCacheTime     = time.Minute * 5
)

const (
	AccessCookieName  = "access"
	RefreshCookieName = "refresh"

	AccessHeader      = "X-Access-Token"
	RefreshHeader     = "X-Refresh-Token"
	RotatedHeader     = "X-Tokens-Rotated"
	FingerprintHeader = "X-Device-Fingerprint"
)

const (
	AccessTokenDuration    = time.Minute * 30
	RefreshTokenDuration   = time.Hour * 24 * 7
	RememberMeDuration     = time.Hour * 24 * 30
	LockoutThreshold       = 5
	LockoutDuration        = time.Minute * 30
	DeviceLockDuration     = time.Minute * 30
	DefaultMaxDevices      = 5
	ActionLogCap           = 100
	DefaultStoreTimeout    = time.Second * 5
	DefaultBcryptCost      = 10
	DefaultHashConcurrency = 4
)
