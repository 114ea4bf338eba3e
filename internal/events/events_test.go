package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"back2u/internal/model"
	"back2u/internal/worker"

	"github.com/stretchr/testify/require"
)

type FakePublisher struct {
	PublishFn func(ctx context.Context, key string, payload any) error
}

func (f *FakePublisher) Publish(ctx context.Context, key string, payload any) error {
	return f.PublishFn(ctx, key, payload)
}

func (f *FakePublisher) Close() error { return nil }

func TestDispatcherEmit(t *testing.T) {
	var gotKey string
	var gotPayload any
	var hadDeadline bool
	d := &Dispatcher{
		Pool: worker.Inline{},
		Publisher: &FakePublisher{PublishFn: func(ctx context.Context, key string, payload any) error {
			_, hadDeadline = ctx.Deadline()
			gotKey, gotPayload = key, payload
			return nil
		}},
	}
	d.Emit(ItemCreated, "x")
	require.Equal(t, ItemCreated, gotKey)
	require.Equal(t, "x", gotPayload)
	require.True(t, hadDeadline)
}

func TestDispatcherSwallowsErrors(t *testing.T) {
	d := &Dispatcher{
		Pool:      worker.Inline{},
		Publisher: &FakePublisher{PublishFn: func(context.Context, string, any) error { return errors.New("broker down") }},
		Timeout:   time.Second,
	}
	require.NotPanics(t, func() { d.Emit(ItemResolved, nil) })

	var nilDispatcher *Dispatcher
	require.NotPanics(t, func() { nilDispatcher.Emit(ItemResolved, nil) })
}

func TestDispatcherDoesNotWaitOnSlowBroker(t *testing.T) {
	release := make(chan struct{})
	var published atomic.Int32
	pool := worker.NewPool(1, 2)
	d := &Dispatcher{
		Pool: pool,
		Publisher: &FakePublisher{PublishFn: func(ctx context.Context, _ string, _ any) error {
			select {
			case <-release:
			case <-ctx.Done():
			}
			published.Add(1)
			return nil
		}},
		Timeout: 5 * time.Second,
	}

	start := time.Now()
	for i := 0; i < 5; i++ {
		d.Emit(ItemUpdated, i)
	}
	require.Less(t, time.Since(start), 200*time.Millisecond)

	close(release)
	pool.Stop()
	require.GreaterOrEqual(t, published.Load(), int32(1))
	require.Less(t, published.Load(), int32(5))
}

func TestNewItemEvent(t *testing.T) {
	by := "u2"
	now := time.Now()
	ev := NewItemEvent(&model.Item{
		ID: "i1", OwnerID: "u1", Title: "Keys", Type: model.ItemTypeFound,
		Category: model.CategoryOthers, IsResolved: true, ResolvedBy: &by,
	}, now)
	require.Equal(t, ItemEvent{
		ItemID: "i1", OwnerID: "u1", Title: "Keys", Type: model.ItemTypeFound,
		Category: model.CategoryOthers, IsResolved: true, ResolvedBy: &by, At: now,
	}, ev)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	require.NoError(t, p.Publish(context.Background(), ItemCreated, nil))
	require.NoError(t, p.Close())
}
