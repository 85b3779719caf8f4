package commands

import (
	"errors"

	"github.com/esp3j0/waste-transort/internal/pkg/guard"
)

var (
	ErrReleaseStaleAllocationsCommandIsNotConstructed = errors.New(
		"ReleaseStaleAllocationsCommand must be created via NewReleaseStaleAllocationsCommand constructor",
	)
)

// ReleaseStaleAllocationsCommand represents a sweep request that frees
// drivers and vehicles still held by orders that no longer need them.
type ReleaseStaleAllocationsCommand struct {
	guard guard.ConstructorGuard
}

// NewReleaseStaleAllocationsCommand creates a command to run the allocation sweep.
func NewReleaseStaleAllocationsCommand() (ReleaseStaleAllocationsCommand, error) {
	return ReleaseStaleAllocationsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseStaleAllocationsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStaleAllocationsCommandIsNotConstructed)
}
