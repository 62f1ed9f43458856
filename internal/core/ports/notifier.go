package ports

import "context"

// Notifier surfaces transient user-visible notifications (the toast
// equivalent). Views depend on this port only; the push bridge implements
// it by forwarding frames to the connected page.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
	Info(ctx context.Context, message string)
}
