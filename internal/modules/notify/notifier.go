package notify

import "context"

// Notifier delivers a pre-formatted text message tagged with an order id to
// store staff. Delivery is best effort: callers decide whether a failure
// matters.
type Notifier interface {
	Send(ctx context.Context, message, orderID string) error
}

// Nop discards every notification. Used when no channel is configured.
type Nop struct{}

func (Nop) Send(context.Context, string, string) error { return nil }
