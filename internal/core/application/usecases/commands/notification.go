package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// NotificationOutcome carries the result of a post-commit push attempt.
// It is metadata attached to an otherwise successful operation result: a
// failed push never fails the operation and never rolls back the committed
// state transition. The transition is the source of truth; the push is
// best-effort and is not retried.
type NotificationOutcome struct {
	// NotificationFailed is true when the push was attempted but not
	// delivered, or skipped because the recipient has no device token.
	NotificationFailed bool

	// NotificationError holds the failure reason, empty on success.
	NotificationError string
}

// notificationSucceeded is the zero outcome: push delivered (or no
// notification obligation existed for the transition).
func notificationSucceeded() NotificationOutcome {
	return NotificationOutcome{}
}

// notificationSkipped reports a push that could not be attempted, e.g.
// because the partner has no registered device.
func notificationSkipped(reason string) NotificationOutcome {
	return NotificationOutcome{NotificationFailed: true, NotificationError: reason}
}

// pushNotifier performs the post-commit notification step shared by the
// command handlers. It absorbs gateway errors into the outcome and logs
// them; nothing here can fail the calling operation.
type pushNotifier struct {
	gateway ports.NotificationGateway
	logger  *slog.Logger
}

func newPushNotifier(gateway ports.NotificationGateway, logger *slog.Logger) pushNotifier {
	return pushNotifier{
		gateway: gateway,
		logger:  logger.With("component", "push_notifier"),
	}
}

// notify attempts to deliver a push to the given token.
// An empty token is a soft failure ("no device token registered"), not an
// error: absence of a channel disables notifications for the recipient.
func (n pushNotifier) notify(
	ctx context.Context, token string, title string, body string, data map[string]string,
) NotificationOutcome {
	if token == "" {
		n.logger.WarnContext(ctx, "Notification skipped", "reason", "no device token registered")
		return notificationSkipped("no device token registered")
	}

	messageID, err := n.gateway.Send(ctx, token, title, body, data)
	if err != nil {
		n.logger.WarnContext(ctx, "Notification delivery failed", "error", err)
		return notificationSkipped(err.Error())
	}

	n.logger.DebugContext(ctx, "Notification delivered", "message_id", messageID)
	return notificationSucceeded()
}
