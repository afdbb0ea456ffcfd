package ctrl

import (
	"context"
	"testing"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	"github.com/JMURv/session-guard/internal/dto"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/JMURv/session-guard/internal/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestController_FindOrCreate(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	meta := func() *dto.DeviceMeta {
		return &dto.DeviceMeta{Fingerprint: "fp", Name: "phone"}
	}

	tests := []struct {
		name        string
		expect      func(d testDeps)
		wantErr     error
		wantCreated bool
	}{
		{
			name: "InactiveSessionCountsAgainstLimit",
			expect: func(d testDeps) {
				s := &md.DeviceSession{ID: uuid.New(), AccountID: uid, Fingerprint: "fp"}
				d.repo.EXPECT().GetSession(gomock.Any(), uid, "fp").Return(s, nil)
				d.repo.EXPECT().CountActiveSessions(gomock.Any(), uid).Return(2, nil)
			},
			wantErr: ErrDeviceLimitExceeded,
		},
		{
			name: "InactiveSessionReactivated",
			expect: func(d testDeps) {
				s := &md.DeviceSession{ID: uuid.New(), AccountID: uid, Fingerprint: "fp"}
				d.repo.EXPECT().GetSession(gomock.Any(), uid, "fp").Return(s, nil)
				d.repo.EXPECT().CountActiveSessions(gomock.Any(), uid).Return(1, nil)
				d.repo.EXPECT().ReactivateSession(gomock.Any(), s.ID, gomock.Any(), gomock.Any()).Return(s, nil)
			},
		},
		{
			name: "ActiveSessionSkipsLimit",
			expect: func(d testDeps) {
				s := &md.DeviceSession{ID: uuid.New(), AccountID: uid, Fingerprint: "fp", IsActive: true}
				d.repo.EXPECT().GetSession(gomock.Any(), uid, "fp").Return(s, nil)
				d.repo.EXPECT().ReactivateSession(gomock.Any(), s.ID, gomock.Any(), gomock.Any()).Return(s, nil)
			},
		},
		{
			name: "ConcurrentInsertReused",
			expect: func(d testDeps) {
				s := &md.DeviceSession{ID: uuid.New(), AccountID: uid, Fingerprint: "fp", IsActive: true}
				gomock.InOrder(
					d.repo.EXPECT().GetSession(gomock.Any(), uid, "fp").Return(nil, repo.ErrNotFound),
					d.repo.EXPECT().CountActiveSessions(gomock.Any(), uid).Return(0, nil),
					d.repo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(repo.ErrAlreadyExists),
					d.repo.EXPECT().GetSession(gomock.Any(), uid, "fp").Return(s, nil),
					d.repo.EXPECT().ReactivateSession(gomock.Any(), s.ID, gomock.Any(), gomock.Any()).Return(s, nil),
				)
			},
		},
		{
			name: "Created",
			expect: func(d testDeps) {
				d.repo.EXPECT().GetSession(gomock.Any(), uid, "fp").Return(nil, repo.ErrNotFound)
				d.repo.EXPECT().CountActiveSessions(gomock.Any(), uid).Return(0, nil)
				d.repo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, s *md.DeviceSession) error {
						assert.Equal(t, "phone", s.Name)
						assert.Equal(t, uid, s.AccountID)
						s.ID = uuid.New()
						return nil
					},
				)
			},
			wantCreated: true,
		},
		{
			name: "StoreUnavailable",
			expect: func(d testDeps) {
				d.repo.EXPECT().GetSession(gomock.Any(), uid, "fp").Return(nil, errStore)
			},
			wantErr: ErrServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, deps := newMockController(t, testConfig())
			tt.expect(deps)

			s, created, err := c.FindOrCreate(ctx, uid, 2, meta())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
			assert.Equal(t, tt.wantCreated, created)
		})
	}
}

func TestController_AttachTokens(t *testing.T) {
	pair := &dto.TokenPair{Access: "a", Refresh: "r", RefreshExpiresAt: time.Now().Add(time.Hour)}

	t.Run("SurvivesCanceledRequest", func(t *testing.T) {
		c, d := newMockController(t, testConfig())
		s := &md.DeviceSession{ID: uuid.New()}
		d.repo.EXPECT().UpdateSessionTokens(gomock.Any(), s.ID, "", pair).DoAndReturn(
			func(ctx context.Context, _ uuid.UUID, _ string, _ *dto.TokenPair) error {
				return ctx.Err()
			},
		)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, c.AttachTokens(ctx, s, pair))
		assert.Equal(t, "r", s.RefreshToken)
		assert.NotNil(t, s.TokenExpiresAt)
	})

	t.Run("RecreatesVanishedRow", func(t *testing.T) {
		c, d := newMockController(t, testConfig())
		s := &md.DeviceSession{ID: uuid.New(), AccountID: uuid.New(), Fingerprint: "fp"}
		old := s.ID
		gomock.InOrder(
			d.repo.EXPECT().UpdateSessionTokens(gomock.Any(), old, "", pair).Return(repo.ErrNotFound),
			d.repo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, fresh *md.DeviceSession) error {
					assert.Equal(t, uuid.Nil, fresh.ID)
					fresh.ID = uuid.New()
					return nil
				},
			),
			d.repo.EXPECT().UpdateSessionTokens(gomock.Any(), gomock.Not(old), "", pair).Return(nil),
		)

		require.NoError(t, c.AttachTokens(context.Background(), s, pair))
		assert.NotEqual(t, old, s.ID)
	})

	t.Run("StoreUnavailable", func(t *testing.T) {
		c, d := newMockController(t, testConfig())
		s := &md.DeviceSession{ID: uuid.New()}
		d.repo.EXPECT().UpdateSessionTokens(gomock.Any(), s.ID, "", pair).Return(errStore)

		assert.ErrorIs(t, c.AttachTokens(context.Background(), s, pair), ErrServiceUnavailable)
	})
}

func TestController_SetAction(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	sid := uuid.New()
	session := &md.DeviceSession{ID: sid, AccountID: uid, Fingerprint: "fp", IsActive: true}

	tests := []struct {
		name       string
		action     dto.DeviceAction
		expect     func(d testDeps)
		wantErr    error
		wantEvents []md.AuditKind
	}{
		{
			name:    "UnknownAction",
			action:  "explode",
			expect:  func(d testDeps) {},
			wantErr: ErrInvalidAction,
		},
		{
			name:   "SessionNotFound",
			action: dto.ActionTrust,
			expect: func(d testDeps) {
				d.repo.EXPECT().GetSessionByID(gomock.Any(), uid, sid).Return(nil, repo.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "Trust",
			action: dto.ActionTrust,
			expect: func(d testDeps) {
				d.repo.EXPECT().GetSessionByID(gomock.Any(), uid, sid).Return(session, nil)
				d.repo.EXPECT().SetSessionTrusted(gomock.Any(), sid, true).Return(nil)
				d.cache.EXPECT().Delete(gomock.Any(), sessionsCacheKey(uid))
			},
		},
		{
			name:   "Untrust",
			action: dto.ActionUntrust,
			expect: func(d testDeps) {
				d.repo.EXPECT().GetSessionByID(gomock.Any(), uid, sid).Return(session, nil)
				d.repo.EXPECT().SetSessionTrusted(gomock.Any(), sid, false).Return(nil)
				d.cache.EXPECT().Delete(gomock.Any(), sessionsCacheKey(uid))
			},
		},
		{
			name:   "Lock",
			action: dto.ActionLock,
			expect: func(d testDeps) {
				d.repo.EXPECT().GetSessionByID(gomock.Any(), uid, sid).Return(session, nil)
				d.repo.EXPECT().SetSessionLock(gomock.Any(), sid, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ uuid.UUID, until *time.Time) error {
						require.NotNil(t, until)
						assert.WithinDuration(t, time.Now().Add(time.Minute*30), *until, time.Minute)
						return nil
					},
				)
				d.cache.EXPECT().Delete(gomock.Any(), sessionsCacheKey(uid))
			},
		},
		{
			name:   "Unlock",
			action: dto.ActionUnlock,
			expect: func(d testDeps) {
				d.repo.EXPECT().GetSessionByID(gomock.Any(), uid, sid).Return(session, nil)
				d.repo.EXPECT().SetSessionLock(gomock.Any(), sid, nil).Return(nil)
				d.cache.EXPECT().Delete(gomock.Any(), sessionsCacheKey(uid))
			},
		},
		{
			name:   "Logout",
			action: dto.ActionLogout,
			expect: func(d testDeps) {
				d.repo.EXPECT().GetSessionByID(gomock.Any(), uid, sid).Return(session, nil)
				d.repo.EXPECT().DeactivateSession(gomock.Any(), sid, gomock.Any()).Return(true, nil)
				d.cache.EXPECT().Delete(gomock.Any(), sessionsCacheKey(uid))
			},
			wantEvents: []md.AuditKind{md.AuditLogout},
		},
		{
			name:   "StoreUnavailable",
			action: dto.ActionTrust,
			expect: func(d testDeps) {
				d.repo.EXPECT().GetSessionByID(gomock.Any(), uid, sid).Return(session, nil)
				d.repo.EXPECT().SetSessionTrusted(gomock.Any(), sid, true).Return(errStore)
			},
			wantErr: ErrServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, deps := newMockController(t, testConfig())
			tt.expect(deps)

			err := c.SetAction(ctx, uid, sid, tt.action)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantEvents, deps.sink.kinds())
		})
	}
}

func TestController_RecordActivity(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	req := &dto.ActivityRequest{Action: "page_view", Details: map[string]any{"path": "/home"}}
	locked := time.Now().Add(time.Hour)

	tests := []struct {
		name    string
		session *md.DeviceSession
		getErr  error
		wantErr error
	}{
		{
			name:    "NotFound",
			getErr:  repo.ErrNotFound,
			wantErr: ErrNotFound,
		},
		{
			name:    "Locked",
			session: &md.DeviceSession{ID: uuid.New(), IsActive: true, LockUntil: &locked},
			wantErr: ErrDeviceLocked,
		},
		{
			name:    "Inactive",
			session: &md.DeviceSession{ID: uuid.New()},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "Appended",
			session: &md.DeviceSession{ID: uuid.New(), IsActive: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newMockController(t, testConfig())
			d.repo.EXPECT().GetSession(gomock.Any(), uid, "fp").Return(tt.session, tt.getErr)
			if tt.wantErr == nil {
				d.repo.EXPECT().
					AppendSessionAction(gomock.Any(), tt.session.ID, gomock.Any(), config.ActionLogCap).
					DoAndReturn(
						func(_ context.Context, _ uuid.UUID, e md.ActionLogEntry, _ int) error {
							assert.Equal(t, "page_view", e.Action)
							assert.Equal(t, "/home", e.Details["path"])
							return nil
						},
					)
				d.cache.EXPECT().Delete(gomock.Any(), sessionsCacheKey(uid))
			}

			assert.ErrorIs(t, c.RecordActivity(ctx, uid, "fp", req), tt.wantErr)
		})
	}
}

func TestController_ListSessions(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()

	t.Run("CacheHit", func(t *testing.T) {
		c, d := newMockController(t, testConfig())
		d.cache.EXPECT().GetToStruct(gomock.Any(), sessionsCacheKey(uid), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, dest any) error {
				*dest.(*dto.ListSessionsResponse) = dto.ListSessionsResponse{
					Data:   []dto.SessionSummary{{Fingerprint: "a"}, {Fingerprint: "b"}},
					Active: 2,
					Limit:  5,
				}
				return nil
			},
		)

		res, err := c.ListSessions(ctx, uid, "b")
		require.NoError(t, err)
		assert.False(t, res.Data[0].IsCurrent)
		assert.True(t, res.Data[1].IsCurrent)
	})

	t.Run("CacheMiss", func(t *testing.T) {
		c, d := newMockController(t, testConfig())
		d.cache.EXPECT().GetToStruct(gomock.Any(), sessionsCacheKey(uid), gomock.Any()).Return(assert.AnError)
		d.repo.EXPECT().GetAccountByID(gomock.Any(), uid).Return(&md.Account{ID: uid, MaxDevices: 3}, nil)
		d.repo.EXPECT().ListSessions(gomock.Any(), uid, gomock.Nil()).Return(
			[]md.DeviceSession{
				{ID: uuid.New(), Fingerprint: "a", IsActive: true},
				{ID: uuid.New(), Fingerprint: "b"},
			}, nil,
		)
		d.cache.EXPECT().Set(gomock.Any(), config.MinCacheTime, sessionsCacheKey(uid), gomock.Any())

		res, err := c.ListSessions(ctx, uid, "a")
		require.NoError(t, err)
		assert.Len(t, res.Data, 2)
		assert.Equal(t, 1, res.Active)
		assert.Equal(t, 3, res.Limit)
		assert.True(t, res.Data[0].IsCurrent)
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		c, d := newMockController(t, testConfig())
		d.cache.EXPECT().GetToStruct(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
		d.repo.EXPECT().GetAccountByID(gomock.Any(), uid).Return(nil, repo.ErrNotFound)

		_, err := c.ListSessions(ctx, uid, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestController_DeleteSession(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	sid := uuid.New()
	session := &md.DeviceSession{ID: sid, AccountID: uid, Fingerprint: "other", IsActive: true}

	t.Run("CurrentSession", func(t *testing.T) {
		c, d := newMockController(t, testConfig())
		d.repo.EXPECT().GetSessionByID(gomock.Any(), uid, sid).Return(session, nil)

		assert.ErrorIs(t, c.DeleteSession(ctx, uid, sid, "other"), ErrCurrentSession)
	})

	t.Run("NotFound", func(t *testing.T) {
		c, d := newMockController(t, testConfig())
		d.repo.EXPECT().GetSessionByID(gomock.Any(), uid, sid).Return(nil, repo.ErrNotFound)

		assert.ErrorIs(t, c.DeleteSession(ctx, uid, sid, "mine"), ErrNotFound)
	})

	t.Run("Deleted", func(t *testing.T) {
		c, d := newMockController(t, testConfig())
		d.repo.EXPECT().GetSessionByID(gomock.Any(), uid, sid).Return(session, nil)
		d.repo.EXPECT().DeleteSession(gomock.Any(), uid, sid).Return(nil)
		d.cache.EXPECT().Delete(gomock.Any(), sessionsCacheKey(uid))

		assert.NoError(t, c.DeleteSession(ctx, uid, sid, "mine"))
	})
}
