// Package bus provides the in-process publish/subscribe facility that keeps
// independently mounted views consistent without a shared store. One Bus
// exists per page session; delivery is synchronous, in subscription order,
// with no persistence and no replay for late subscribers.
package bus

import (
	"context"
	"log/slog"
)

// Subscription identifies one registered handler so it can be removed.
type Subscription struct {
	topic string
	id    uint64
}

type subscriber[T any] struct {
	id uint64
	fn func(context.Context, T)
}

// Topic is a named channel carrying payloads of a single type. Publishers
// and subscribers of a Topic agree on the payload shape at compile time.
//
// A Topic is not safe for concurrent use: the page session serializes all
// access, matching the cooperative single-threaded model of the UI. The
// only reentrancy permitted is publishing to a *different* topic from
// inside a handler; publishing to the topic currently being delivered is
// dropped to break infinite synchronous recursion.
type Topic[T any] struct {
	name       string
	logger     *slog.Logger
	subs       []subscriber[T]
	nextID     uint64
	delivering bool
}

// NewTopic creates a named topic. The logger records handler panics and
// dropped re-entrant publishes.
func NewTopic[T any](name string, logger *slog.Logger) *Topic[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Topic[T]{name: name, logger: logger}
}

// Name returns the stable channel name.
func (t *Topic[T]) Name() string { return t.name }

// Subscribe registers a handler and returns its subscription handle.
// Handlers are invoked in subscription order.
func (t *Topic[T]) Subscribe(fn func(context.Context, T)) Subscription {
	t.nextID++
	sub := subscriber[T]{id: t.nextID, fn: fn}
	t.subs = append(t.subs, sub)
	return Subscription{topic: t.name, id: sub.id}
}

// Unsubscribe stops delivery to the handler identified by s. Unknown or
// already-removed handles are ignored.
func (t *Topic[T]) Unsubscribe(s Subscription) {
	if s.topic != t.name {
		return
	}
	for i, sub := range t.subs {
		if sub.id == s.id {
			t.subs = append(t.subs[:i], t.subs[i+1:]...)
			return
		}
	}
}

// SubscriberCount returns the number of currently registered handlers.
func (t *Topic[T]) SubscriberCount() int { return len(t.subs) }

// Publish delivers msg synchronously to every handler subscribed at the
// time of the call. A panicking handler does not prevent delivery to the
// remaining handlers, and the publisher is not informed of handler
// failures. A publish issued from inside a handler of this same topic is
// dropped with a warning.
func (t *Topic[T]) Publish(ctx context.Context, msg T) {
	if t.delivering {
		t.logger.WarnContext(ctx, "dropping re-entrant publish",
			slog.String("channel", t.name))
		return
	}
	t.delivering = true
	defer func() { t.delivering = false }()

	// Snapshot so handlers may subscribe/unsubscribe during delivery
	// without affecting the current tick.
	current := make([]subscriber[T], len(t.subs))
	copy(current, t.subs)

	for _, sub := range current {
		t.deliver(ctx, sub, msg)
	}
}

func (t *Topic[T]) deliver(ctx context.Context, sub subscriber[T], msg T) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.ErrorContext(ctx, "bus handler panicked",
				slog.String("channel", t.name),
				slog.Uint64("subscription_id", sub.id),
				slog.Any("panic", r))
		}
	}()
	sub.fn(ctx, msg)
}
