package ports

import "context"

// NotificationGateway delivers a push message to a device token.
//
// The gateway is a best-effort collaborator: it may fail independently of the
// business transaction. Callers commit the authoritative state change first,
// then attempt the push, and convert any error from Send into soft-failure
// metadata on the operation result - a gateway error never propagates as the
// operation's failure and never rolls back a committed transition.
type NotificationGateway interface {
	// Send delivers a push message to the device identified by token and
	// returns the provider's message id. The data payload is attached for
	// client-side routing.
	Send(ctx context.Context, token string, title string, body string, data map[string]string) (string, error)
}
