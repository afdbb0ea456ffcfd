package credential

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/JMURv/session-guard/internal/config"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const (
	AlgBcrypt   = "bcrypt"
	AlgArgon2id = "argon2id"
)

type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

var DefaultArgon2 = Argon2Params{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 2,
	KeyLen:  32,
	SaltLen: 16,
}

// Hasher produces and checks password hashes. Hash computations are bounded
// by a weighted semaphore so a burst of logins queues instead of pinning
// every CPU.
type Hasher struct {
	alg   string
	cost  int
	argon Argon2Params
	limit *semaphore.Weighted
}

func NewHasher(conf config.HashConfig) *Hasher {
	cost := conf.BcryptCost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	n := conf.Concurrency
	if n <= 0 {
		n = config.DefaultHashConcurrency
	}

	alg := conf.Algorithm
	if alg == "" {
		alg = AlgBcrypt
	}

	return &Hasher{
		alg:   alg,
		cost:  cost,
		argon: DefaultArgon2,
		limit: semaphore.NewWeighted(int64(n)),
	}
}

func (h *Hasher) Hash(ctx context.Context, secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	if err := h.limit.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.limit.Release(1)

	switch h.alg {
	case AlgBcrypt:
		b, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case AlgArgon2id:
		return h.hashArgon2(secret)
	default:
		return "", ErrUnknownAlgorithm
	}
}

// Compare returns nil when secret matches hashed, ErrMismatch when it does not.
func (h *Hasher) Compare(ctx context.Context, hashed, secret string) error {
	if err := h.limit.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.limit.Release(1)

	switch {
	case isBcrypt(hashed):
		if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)); err != nil {
			return ErrMismatch
		}
		return nil
	case isArgon2(hashed):
		return compareArgon2(hashed, secret)
	default:
		return ErrMalformedHash
	}
}

// IsHash reports whether stored looks like a hash this package can verify.
func IsHash(stored string) bool {
	return isBcrypt(stored) || isArgon2(stored)
}

func isBcrypt(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func isArgon2(s string) bool {
	return strings.HasPrefix(s, "$argon2id$")
}

func (h *Hasher) hashArgon2(secret string) (string, error) {
	p := h.argon
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(secret), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func compareArgon2(encoded, secret string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return ErrMalformedHash
	}

	var p Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ErrMalformedHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return ErrMalformedHash
	}
	if p.Time == 0 || p.Threads == 0 {
		return ErrMalformedHash
	}

	computed := argon2.IDKey([]byte(secret), salt, p.Time, p.Memory, p.Threads, uint32(len(key)))
	if subtle.ConstantTimeCompare(key, computed) != 1 {
		return ErrMismatch
	}
	return nil
}
