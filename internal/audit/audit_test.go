package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []md.AuditEvent
	block  chan struct{}
}

func (s *recordingSink) Record(_ context.Context, e md.AuditEvent) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type failingStore struct {
	calls int
	err   error
	last  *md.AuditEvent
}

func (s *failingStore) CreateAuditEvent(_ context.Context, e *md.AuditEvent) error {
	s.calls++
	s.last = e
	return s.err
}

func TestDispatcher_CloseDrains(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(config.AuditConfig{BufferSize: 16}, sink)

	for i := 0; i < 10; i++ {
		d.Record(context.Background(), md.AuditEvent{Kind: md.AuditLoginSuccess})
	}
	require.NoError(t, d.Close())
	assert.Equal(t, 10, sink.len())

	d.Record(context.Background(), md.AuditEvent{Kind: md.AuditLogout})
	assert.Equal(t, 10, sink.len())
}

func TestDispatcher_DropIfFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(config.AuditConfig{BufferSize: 1, DropIfFull: true}, sink)

	start := time.Now()
	for i := 0; i < 5; i++ {
		d.Record(context.Background(), md.AuditEvent{Kind: md.AuditLoginFailed})
	}
	assert.Less(t, time.Since(start), time.Second)
	assert.GreaterOrEqual(t, d.Dropped(), uint64(3))

	close(sink.block)
	require.NoError(t, d.Close())
}

func TestDispatcher_BlockingRespectsContext(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(config.AuditConfig{BufferSize: 1}, sink)

	d.Record(context.Background(), md.AuditEvent{})
	d.Record(context.Background(), md.AuditEvent{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*50)
	defer cancel()
	d.Record(ctx, md.AuditEvent{})
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)

	close(sink.block)
	require.NoError(t, d.Close())
}

func TestStoreSink_Record(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "Success"},
		{name: "StoreErrorSwallowed", err: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &failingStore{err: tt.err}
			s := NewStoreSink(store, time.Second)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			s.Record(ctx, md.AuditEvent{Kind: md.AuditLogout})

			assert.Equal(t, 1, store.calls)
			require.NotNil(t, store.last)
			assert.NotEqual(t, uuid.Nil, store.last.ID)
		})
	}
}

func TestMulti_Record(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	Multi{a, LogSink{}, NoOp{}, b}.Record(context.Background(), md.AuditEvent{Severity: md.SeverityCritical})
	assert.Equal(t, 1, a.len())
	assert.Equal(t, 1, b.len())
}
