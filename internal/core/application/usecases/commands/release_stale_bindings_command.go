package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrReleaseStaleBindingsCommandIsNotConstructed = errors.New(
	"ReleaseStaleBindingsCommand must be created via NewReleaseStaleBindingsCommand constructor",
)

// ReleaseStaleBindingsCommand triggers a sweep over partner-bound orders
// whose partner never responded. Carries no parameters; the staleness window
// is configuration owned by the handler.
type ReleaseStaleBindingsCommand struct {
	guard guard.ConstructorGuard
}

// NewReleaseStaleBindingsCommand creates a command to release stale bindings.
func NewReleaseStaleBindingsCommand() (ReleaseStaleBindingsCommand, error) {
	return ReleaseStaleBindingsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseStaleBindingsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStaleBindingsCommandIsNotConstructed)
}
