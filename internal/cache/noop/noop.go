// Package noop provides cache and limiter stand-ins used when redis is
// disabled.
package noop

import (
	"context"
	"time"

	"github.com/JMURv/session-guard/internal/cache"
)

type Cache struct{}

func New() Cache {
	return Cache{}
}

func (Cache) Close() error {
	return nil
}

func (Cache) GetToStruct(_ context.Context, _ string, _ any) error {
	return cache.ErrNotFoundInCache
}

func (Cache) Set(_ context.Context, _ time.Duration, _ string, _ any) {}

func (Cache) Delete(_ context.Context, _ string) {}

func (Cache) InvalidateKeysByPattern(_ context.Context, _ string) {}

func (Cache) Allow(_ context.Context, _ string, _ int64, _ time.Duration) (bool, error) {
	return true, nil
}
