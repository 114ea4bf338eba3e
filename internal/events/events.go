package events

import (
	"context"
	"log"
	"time"

	"back2u/internal/model"
	"back2u/internal/worker"
)

const (
	Exchange = "back2u.items"

	ItemCreated  = "item.created"
	ItemUpdated  = "item.updated"
	ItemResolved = "item.resolved"
)

// Publisher delivers a JSON-encodable payload under a routing key.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

func (Nop) Close() error { return nil }

// ItemEvent is the body of every item.* message.
type ItemEvent struct {
	ItemID     string         `json:"item_id"`
	OwnerID    string         `json:"owner_id"`
	Title      string         `json:"title"`
	Type       model.ItemType `json:"type"`
	Category   model.Category `json:"category"`
	IsResolved bool           `json:"is_resolved"`
	ResolvedBy *string        `json:"resolved_by,omitempty"`
	At         time.Time      `json:"at"`
}

func NewItemEvent(it *model.Item, at time.Time) ItemEvent {
	return ItemEvent{
		ItemID:     it.ID,
		OwnerID:    it.OwnerID,
		Title:      it.Title,
		Type:       it.Type,
		Category:   it.Category,
		IsResolved: it.IsResolved,
		ResolvedBy: it.ResolvedBy,
		At:         at,
	}
}

// Dispatcher publishes on the worker pool so callers never wait on the
// broker. Failures are logged and dropped.
type Dispatcher struct {
	Pool      worker.Pool
	Publisher Publisher
	Timeout   time.Duration
}

func (d *Dispatcher) Emit(key string, payload any) {
	if d == nil || d.Pool == nil || d.Publisher == nil {
		return
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	queued := d.Pool.TrySubmit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := d.Publisher.Publish(ctx, key, payload); err != nil {
			log.Printf("events: publish %s: %v", key, err)
		}
	})
	if !queued {
		log.Printf("events: queue full, dropped %s", key)
	}
}
