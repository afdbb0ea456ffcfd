package ctrl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/JMURv/session-guard/tests/mocks"
	"go.uber.org/mock/gomock"
)

type recordingSink struct {
	mu     sync.Mutex
	events []md.AuditEvent
}

func (s *recordingSink) Record(_ context.Context, e md.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) kinds() []md.AuditKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []md.AuditKind
	for _, e := range s.events {
		res = append(res, e.Kind)
	}
	return res
}

type panickingSink struct{}

func (panickingSink) Record(context.Context, md.AuditEvent) {
	panic("sink exploded")
}

func testConfig() config.Config {
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
		Lockout:            config.LockoutConfig{Threshold: 3, Duration: time.Minute * 30},
		DeviceLockDuration: time.Minute * 30,
		MaxDevices:         2,
		Hash:               config.HashConfig{Algorithm: "bcrypt", BcryptCost: 4, Concurrency: 2},
		StoreTimeout:       time.Second,
	}
	return conf
}

type testDeps struct {
	au    *mocks.MockPort
	repo  *mocks.MockAppRepo
	cache *mocks.MockCacheService
	sink  *recordingSink
}

func newMockController(t *testing.T, conf config.Config, opts ...Option) (*Controller, testDeps) {
	mc := gomock.NewController(t)
	deps := testDeps{
		au:    mocks.NewMockPort(mc),
		repo:  mocks.NewMockAppRepo(mc),
		cache: mocks.NewMockCacheService(mc),
		sink:  &recordingSink{},
	}

	opts = append([]Option{WithAudit(deps.sink)}, opts...)
	return New(deps.au, deps.repo, deps.cache, conf, opts...), deps
}
