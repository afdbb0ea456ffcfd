package audit

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"go.uber.org/zap"
)

// Dispatcher decouples event producers from a slow sink with a buffered
// channel drained by a single goroutine.
type Dispatcher struct {
	sink       Sink
	dropIfFull bool
	ch         chan md.AuditEvent
	done       chan struct{}
	wg         sync.WaitGroup
	dropped    atomic.Uint64
	closed     atomic.Bool
	closeOnce  sync.Once
}

func NewDispatcher(conf config.AuditConfig, sink Sink) *Dispatcher {
	size := conf.BufferSize
	if size <= 0 {
		size = 1
	}
	if sink == nil {
		sink = NoOp{}
	}

	d := &Dispatcher{
		sink:       sink,
		dropIfFull: conf.DropIfFull,
		ch:         make(chan md.AuditEvent, size),
		done:       make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case e := <-d.ch:
			d.forward(e)
		case <-d.done:
			for {
				select {
				case e := <-d.ch:
					d.forward(e)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) forward(e md.AuditEvent) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("audit sink panicked", zap.Any("error", r))
		}
	}()
	d.sink.Record(context.Background(), e)
}

func (d *Dispatcher) Record(ctx context.Context, e md.AuditEvent) {
	if d.closed.Load() {
		return
	}

	if d.dropIfFull {
		select {
		case d.ch <- e:
		case <-d.done:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.ch <- e:
	case <-ctx.Done():
	case <-d.done:
	}
}

// Close stops accepting events and waits until the buffer is drained.
func (d *Dispatcher) Close() error {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
	return nil
}

func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}
