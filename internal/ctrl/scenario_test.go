package ctrl_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/JMURv/session-guard/internal/audit"
	"github.com/JMURv/session-guard/internal/auth/credential"
	"github.com/JMURv/session-guard/internal/auth/jwt"
	"github.com/JMURv/session-guard/internal/cache/noop"
	"github.com/JMURv/session-guard/internal/config"
	"github.com/JMURv/session-guard/internal/ctrl"
	"github.com/JMURv/session-guard/internal/dto"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/JMURv/session-guard/internal/repo/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type env struct {
	ctrl    *ctrl.Controller
	store   *memory.Repository
	clk     *clock
	account *md.Account
}

func newEnv(t *testing.T, mutate func(conf *config.Config)) *env {
	t.Helper()

	conf := config.Config{}
	conf.Auth = config.AuthConfig{
		JWT: config.JWTConfig{
			AccessSecret:  "access-secret",
			RefreshSecret: "refresh-secret",
			Issuer:        "test",
			AccessTTL:     time.Minute,
			RefreshTTL:    time.Hour,
			RememberMeTTL: time.Hour * 24,
		},
		Lockout:      config.LockoutConfig{Threshold: 5, Duration: time.Minute * 30},
		MaxDevices:   5,
		Hash:         config.HashConfig{Algorithm: "bcrypt", BcryptCost: 4, Concurrency: 4},
		StoreTimeout: time.Second,
	}
	if mutate != nil {
		mutate(&conf)
	}

	hashed, err := credential.NewHasher(conf.Auth.Hash).Hash(context.Background(), "s3cret")
	require.NoError(t, err)

	clk := &clock{t: time.Now()}
	store := memory.New()
	account := &md.Account{ID: uuid.New(), Email: "owner@example.com", Password: hashed, Role: "user"}
	store.PutAccount(account)

	c := ctrl.New(
		jwt.New(conf, jwt.WithClock(clk.Now)),
		store,
		noop.New(),
		conf,
		ctrl.WithClock(clk.Now),
		ctrl.WithAudit(audit.NewStoreSink(store, time.Second)),
	)
	return &env{ctrl: c, store: store, clk: clk, account: account}
}

func (e *env) login(t *testing.T, fp string) (*dto.LoginResponse, error) {
	t.Helper()
	return e.ctrl.Login(
		context.Background(), &dto.LoginRequest{
			Email:    e.account.Email,
			Password: "s3cret",
			Device:   dto.DeviceMeta{Fingerprint: fp, Name: fp},
		},
	)
}

func (e *env) sessions(t *testing.T) []md.DeviceSession {
	t.Helper()
	res, err := e.store.ListSessions(context.Background(), e.account.ID, nil)
	require.NoError(t, err)
	return res
}

func (e *env) auditKinds() []md.AuditKind {
	var res []md.AuditKind
	for _, ev := range e.store.AuditEvents() {
		res = append(res, ev.Kind)
	}
	return res
}

func TestScenario_LockoutAfterThreshold(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	bad := &dto.LoginRequest{Email: e.account.Email, Password: "nope", Device: dto.DeviceMeta{Fingerprint: "fp"}}

	for i := 0; i < 5; i++ {
		_, err := e.ctrl.Login(ctx, bad)
		require.ErrorIs(t, err, ctrl.ErrInvalidCredentials)
	}

	_, err := e.login(t, "fp")
	assert.ErrorIs(t, err, ctrl.ErrAccountLocked)

	a, err := e.store.GetAccountByID(ctx, e.account.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, a.FailedAttempts)
	assert.NotNil(t, a.LockUntil)
	assert.Empty(t, e.sessions(t))
}

func TestScenario_LockoutExpires(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	bad := &dto.LoginRequest{Email: e.account.Email, Password: "nope", Device: dto.DeviceMeta{Fingerprint: "fp"}}

	for i := 0; i < 5; i++ {
		_, err := e.ctrl.Login(ctx, bad)
		require.ErrorIs(t, err, ctrl.ErrInvalidCredentials)
	}

	e.clk.Advance(time.Minute * 29)
	_, err := e.login(t, "fp")
	require.ErrorIs(t, err, ctrl.ErrAccountLocked)

	e.clk.Advance(time.Minute * 2)
	res, err := e.login(t, "fp")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Access)

	a, err := e.store.GetAccountByID(ctx, e.account.ID)
	require.NoError(t, err)
	assert.Zero(t, a.FailedAttempts)
	assert.Nil(t, a.LockUntil)
}

func TestScenario_SuccessResetsFailures(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := e.ctrl.Login(ctx, &dto.LoginRequest{Email: e.account.Email, Password: "nope"})
		require.ErrorIs(t, err, ctrl.ErrInvalidCredentials)
	}
	_, err := e.login(t, "fp")
	require.NoError(t, err)

	a, err := e.store.GetAccountByID(ctx, e.account.ID)
	require.NoError(t, err)
	assert.Zero(t, a.FailedAttempts)
	assert.Nil(t, a.LockUntil)
	assert.NotNil(t, a.LastLoginAt)
}

func TestScenario_ConcurrentLoginsShareOneSession(t *testing.T) {
	e := newEnv(t, nil)
	const n = 16

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := e.ctrl.FindOrCreate(
				context.Background(), e.account.ID, 0, &dto.DeviceMeta{Fingerprint: "same-device"},
			)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	sessions := e.sessions(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, n, sessions[0].LoginCount)
	assert.True(t, sessions[0].IsActive)
}

func TestScenario_DeviceLimit(t *testing.T) {
	e := newEnv(t, func(conf *config.Config) { conf.Auth.MaxDevices = 2 })

	a, err := e.login(t, "A")
	require.NoError(t, err)
	_, err = e.login(t, "B")
	require.NoError(t, err)

	_, err = e.login(t, "C")
	var limitErr *ctrl.DeviceLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 2, limitErr.Active)
	assert.Equal(t, 2, limitErr.Limit)
	assert.Len(t, e.sessions(t), 2)

	_, err = e.login(t, "A")
	require.NoError(t, err, "a known active device never counts twice")

	require.NoError(t, e.ctrl.Logout(context.Background(), &dto.LogoutRequest{Access: a.Access}))

	_, err = e.login(t, "C")
	require.NoError(t, err)

	_, err = e.login(t, "A")
	assert.ErrorIs(t, err, ctrl.ErrDeviceLimitExceeded, "reactivating A needs a free slot")
	assert.Contains(t, e.auditKinds(), md.AuditDeviceLimitExceeded)
}

func TestScenario_RefreshReplayRejected(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	first, err := e.login(t, "fp")
	require.NoError(t, err)

	second, err := e.ctrl.Refresh(ctx, &dto.RefreshRequest{Refresh: first.Refresh})
	require.NoError(t, err)
	assert.NotEqual(t, first.Refresh, second.Refresh)

	_, err = e.ctrl.Refresh(ctx, &dto.RefreshRequest{Refresh: first.Refresh})
	assert.ErrorIs(t, err, ctrl.ErrRefreshInvalid)
	assert.Contains(t, e.auditKinds(), md.AuditRefreshReuse)

	sessions := e.sessions(t)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].FailedAttempts)

	_, err = e.ctrl.Refresh(ctx, &dto.RefreshRequest{Refresh: second.Refresh})
	assert.NoError(t, err)
}

func TestScenario_ConcurrentRefreshOneWinner(t *testing.T) {
	e := newEnv(t, nil)
	res, err := e.login(t, "fp")
	require.NoError(t, err)

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.ctrl.Refresh(context.Background(), &dto.RefreshRequest{Refresh: res.Refresh})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ctrl.ErrRefreshInvalid)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestScenario_LogoutIsIdempotent(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	res, err := e.login(t, "fp")
	require.NoError(t, err)

	req := &dto.LogoutRequest{Access: res.Access, Refresh: res.Refresh}
	require.NoError(t, e.ctrl.Logout(ctx, req))
	require.NoError(t, e.ctrl.Logout(ctx, req))

	sessions := e.sessions(t)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].IsActive)
	assert.Empty(t, sessions[0].RefreshToken)

	_, err = e.ctrl.Refresh(ctx, &dto.RefreshRequest{Refresh: res.Refresh})
	assert.ErrorIs(t, err, ctrl.ErrRefreshInvalid)
}

func TestScenario_LogoutWithExpiredAccess(t *testing.T) {
	e := newEnv(t, nil)

	res, err := e.login(t, "fp")
	require.NoError(t, err)

	e.clk.Advance(time.Minute * 10)
	require.NoError(t, e.ctrl.Logout(context.Background(), &dto.LogoutRequest{Access: res.Access}))
	assert.False(t, e.sessions(t)[0].IsActive)
}

func TestScenario_LogoutAll(t *testing.T) {
	e := newEnv(t, nil)

	res, err := e.login(t, "A")
	require.NoError(t, err)
	_, err = e.login(t, "B")
	require.NoError(t, err)

	require.NoError(
		t, e.ctrl.Logout(context.Background(), &dto.LogoutRequest{Access: res.Access, LogoutAll: true}),
	)
	for _, s := range e.sessions(t) {
		assert.False(t, s.IsActive, s.Fingerprint)
	}
}

func TestScenario_LegacyCredentialMigrated(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	legacy := &md.Account{ID: uuid.New(), Email: "legacy@example.com", Password: "plain-text"}
	e.store.PutAccount(legacy)

	req := &dto.LoginRequest{Email: legacy.Email, Password: "plain-text", Device: dto.DeviceMeta{Fingerprint: "fp"}}
	_, err := e.ctrl.Login(ctx, req)
	require.NoError(t, err)

	stored, err := e.store.GetAccountByID(ctx, legacy.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "plain-text", stored.Password)
	assert.True(t, credential.IsHash(stored.Password))
	assert.Contains(t, e.auditKinds(), md.AuditCredentialMigrated)

	_, err = e.ctrl.Login(ctx, req)
	require.NoError(t, err)

	again, err := e.store.GetAccountByID(ctx, legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Password, again.Password)
}

func TestScenario_TransparentRefresh(t *testing.T) {
	e := newEnv(t, func(conf *config.Config) { conf.Auth.JWT.AccessTTL = time.Second })
	ctx := context.Background()

	res, err := e.login(t, "fp")
	require.NoError(t, err)

	p, upd, err := e.ctrl.Authorize(ctx, res.Access, res.Refresh)
	require.NoError(t, err)
	assert.Nil(t, upd)
	assert.Equal(t, e.account.ID, p.UID)

	e.clk.Advance(time.Second * 2)

	p, upd, err = e.ctrl.Authorize(ctx, res.Access, res.Refresh)
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.True(t, upd.Rotated)
	assert.NotEqual(t, res.Access, upd.Access)
	assert.NotEqual(t, res.Refresh, upd.Refresh)
	assert.Equal(t, "fp", p.Fingerprint)

	_, _, err = e.ctrl.Authorize(ctx, res.Access, res.Refresh)
	assert.ErrorIs(t, err, ctrl.ErrUnauthorized)

	_, upd2, err := e.ctrl.Authorize(ctx, upd.Access, upd.Refresh)
	require.NoError(t, err)
	assert.Nil(t, upd2)
}

func TestScenario_LockedDeviceCannotRefresh(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	res, err := e.login(t, "fp")
	require.NoError(t, err)
	sid := e.sessions(t)[0].ID

	require.NoError(t, e.ctrl.SetAction(ctx, e.account.ID, sid, dto.ActionLock))
	_, err = e.ctrl.Refresh(ctx, &dto.RefreshRequest{Refresh: res.Refresh})
	assert.ErrorIs(t, err, ctrl.ErrDeviceLocked)
	assert.ErrorIs(
		t, e.ctrl.RecordActivity(ctx, e.account.ID, "fp", &dto.ActivityRequest{Action: "click"}),
		ctrl.ErrDeviceLocked,
	)

	e.clk.Advance(time.Minute * 31)
	_, err = e.ctrl.Refresh(ctx, &dto.RefreshRequest{Refresh: res.Refresh})
	assert.NoError(t, err, "device lock expires on its own")
}

func TestScenario_ActivityLogCapped(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	_, err := e.login(t, "fp")
	require.NoError(t, err)

	for i := 0; i < config.ActionLogCap+5; i++ {
		e.clk.Advance(time.Second)
		require.NoError(t, e.ctrl.RecordActivity(ctx, e.account.ID, "fp", &dto.ActivityRequest{Action: "tick"}))
	}

	s, err := e.store.GetSession(ctx, e.account.ID, "fp")
	require.NoError(t, err)
	assert.Len(t, s.ActionLog, config.ActionLogCap)
	assert.True(t, s.ActionLog[0].At.Before(s.ActionLog[len(s.ActionLog)-1].At))
}
