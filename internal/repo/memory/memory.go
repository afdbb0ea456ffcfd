package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JMURv/session-guard/internal/dto"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/JMURv/session-guard/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

// Repository keeps accounts, device sessions and audit events in process
// memory. Every method holds one mutex, so each call is atomic with respect
// to the others.
type Repository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*md.Account
	sessions map[uuid.UUID]*md.DeviceSession
	audit    []md.AuditEvent
}

func New() *Repository {
	return &Repository{
		accounts: make(map[uuid.UUID]*md.Account),
		sessions: make(map[uuid.UUID]*md.DeviceSession),
	}
}

func (r *Repository) Close(_ context.Context) error {
	return nil
}

// PutAccount inserts or replaces an account. Used to seed development
// instances and tests.
func (r *Repository) PutAccount(a *md.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	r.accounts[a.ID] = &cp
}

func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*md.Account, error) {
	const op = "accounts.GetAccountByEmail.memory"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *Repository) GetAccountByID(ctx context.Context, id uuid.UUID) (*md.Account, error) {
	const op = "accounts.GetAccountByID.memory"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *Repository) UpdatePassword(_ context.Context, id uuid.UUID, hashed string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return repo.ErrNotFound
	}
	a.Password = hashed
	a.UpdatedAt = time.Now()
	return nil
}

func (r *Repository) IncrementFailedAttempts(
	_ context.Context,
	id uuid.UUID,
	threshold int,
	lockUntil time.Time,
) (int, *time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return 0, nil, repo.ErrNotFound
	}

	a.FailedAttempts++
	if a.FailedAttempts >= threshold {
		until := lockUntil
		a.LockUntil = &until
	}
	a.UpdatedAt = time.Now()

	if a.LockUntil == nil {
		return a.FailedAttempts, nil, nil
	}
	until := *a.LockUntil
	return a.FailedAttempts, &until, nil
}

func (r *Repository) ResetFailedAttempts(_ context.Context, id uuid.UUID, loginAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return repo.ErrNotFound
	}
	a.FailedAttempts = 0
	a.LockUntil = nil
	a.LastLoginAt = &loginAt
	a.UpdatedAt = time.Now()
	return nil
}

func (r *Repository) GetSession(ctx context.Context, accountID uuid.UUID, fingerprint string) (*md.DeviceSession, error) {
	const op = "sessions.GetSession.memory"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.byFingerprint(accountID, fingerprint)
	if s == nil {
		return nil, repo.ErrNotFound
	}
	return cloneSession(s), nil
}

func (r *Repository) GetSessionByID(_ context.Context, accountID, id uuid.UUID) (*md.DeviceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || s.AccountID != accountID {
		return nil, repo.ErrNotFound
	}
	return cloneSession(s), nil
}

func (r *Repository) GetSessionByRefreshToken(_ context.Context, token string) (*md.DeviceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token == "" {
		return nil, repo.ErrNotFound
	}
	for _, s := range r.sessions {
		if s.RefreshToken == token {
			return cloneSession(s), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *Repository) CountActiveSessions(_ context.Context, accountID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, s := range r.sessions {
		if s.AccountID == accountID && s.IsActive {
			count++
		}
	}
	return count, nil
}

func (r *Repository) CreateSession(_ context.Context, s *md.DeviceSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byFingerprint(s.AccountID, s.Fingerprint) != nil {
		return repo.ErrAlreadyExists
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	now := time.Now()
	at := s.LastActive
	s.IsActive = true
	s.LoginCount = 1
	s.LastLoginAt = &at
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.ActionLog == nil {
		s.ActionLog = md.ActionLog{}
	}

	r.sessions[s.ID] = cloneSession(s)
	return nil
}

func (r *Repository) ReactivateSession(
	_ context.Context,
	id uuid.UUID,
	meta *dto.DeviceMeta,
	at time.Time,
) (*md.DeviceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	s.IsActive = true
	s.LoginCount++
	s.Name = coalesce(meta.Name, s.Name)
	s.DeviceType = coalesce(meta.DeviceType, s.DeviceType)
	s.OS = coalesce(meta.OS, s.OS)
	s.Browser = coalesce(meta.Browser, s.Browser)
	s.UA = coalesce(meta.UA, s.UA)
	s.IP = coalesce(meta.IP, s.IP)
	s.LastActive = at
	s.LastLoginAt = &at
	s.UpdatedAt = time.Now()

	return cloneSession(s), nil
}

func (r *Repository) UpdateSessionTokens(
	_ context.Context,
	id uuid.UUID,
	prevRefresh string,
	pair *dto.TokenPair,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return repo.ErrNotFound
	}
	if prevRefresh != "" && (s.RefreshToken != prevRefresh || !s.IsActive) {
		return repo.ErrNotFound
	}

	exp := pair.RefreshExpiresAt
	s.AccessToken = pair.Access
	s.RefreshToken = pair.Refresh
	s.TokenExpiresAt = &exp
	s.UpdatedAt = time.Now()
	return nil
}

func (r *Repository) SetSessionTrusted(_ context.Context, id uuid.UUID, trusted bool) error {
	return r.mutate(id, func(s *md.DeviceSession) {
		s.IsTrusted = trusted
	})
}

func (r *Repository) SetSessionLock(_ context.Context, id uuid.UUID, until *time.Time) error {
	return r.mutate(id, func(s *md.DeviceSession) {
		if until == nil {
			s.LockUntil = nil
			s.FailedAttempts = 0
			return
		}
		u := *until
		s.LockUntil = &u
	})
}

func (r *Repository) IncrementSessionFailures(_ context.Context, id uuid.UUID) error {
	return r.mutate(id, func(s *md.DeviceSession) {
		s.FailedAttempts++
	})
}

func (r *Repository) DeactivateSession(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || !s.IsActive {
		return false, nil
	}
	deactivate(s, at)
	return true, nil
}

func (r *Repository) DeactivateAllSessions(_ context.Context, accountID uuid.UUID, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, s := range r.sessions {
		if s.AccountID == accountID && s.IsActive {
			deactivate(s, at)
			n++
		}
	}
	return n, nil
}

func (r *Repository) AppendSessionAction(
	_ context.Context,
	id uuid.UUID,
	entry md.ActionLogEntry,
	limit int,
) error {
	return r.mutate(id, func(s *md.DeviceSession) {
		s.ActionLog = s.ActionLog.Append(entry, limit)
		s.LastActive = entry.At
	})
}

func (r *Repository) ListSessions(
	_ context.Context,
	accountID uuid.UUID,
	filters map[string]any,
) ([]md.DeviceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := make([]md.DeviceSession, 0, 4)
	for _, s := range r.sessions {
		if s.AccountID != accountID {
			continue
		}
		if v, ok := filters["is_active"].(bool); ok && s.IsActive != v {
			continue
		}
		if v, ok := filters["is_trusted"].(bool); ok && s.IsTrusted != v {
			continue
		}
		res = append(res, *cloneSession(s))
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].LastActive.After(res[j].LastActive)
	})
	return res, nil
}

func (r *Repository) DeleteSession(_ context.Context, accountID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || s.AccountID != accountID {
		return repo.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *Repository) CreateAuditEvent(_ context.Context, e *md.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.audit = append(r.audit, *e)
	return nil
}

// AuditEvents returns a copy of every persisted audit event in insertion order.
func (r *Repository) AuditEvents() []md.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]md.AuditEvent(nil), r.audit...)
}

func (r *Repository) mutate(id uuid.UUID, fn func(s *md.DeviceSession)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return repo.ErrNotFound
	}
	fn(s)
	s.UpdatedAt = time.Now()
	return nil
}

func (r *Repository) byFingerprint(accountID uuid.UUID, fingerprint string) *md.DeviceSession {
	for _, s := range r.sessions {
		if s.AccountID == accountID && s.Fingerprint == fingerprint {
			return s
		}
	}
	return nil
}

func deactivate(s *md.DeviceSession, at time.Time) {
	s.IsActive = false
	s.AccessToken = ""
	s.RefreshToken = ""
	s.TokenExpiresAt = nil
	s.LastLogoutAt = &at
	s.UpdatedAt = time.Now()
}

func cloneSession(s *md.DeviceSession) *md.DeviceSession {
	cp := *s
	cp.ActionLog = append(md.ActionLog{}, s.ActionLog...)
	return &cp
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
