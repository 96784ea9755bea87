package commands

import (
	"errors"

	"manufacturing/internal/pkg/guard"
)

var ErrAutoAssignDesignJobsCommandIsNotConstructed = errors.New(
	"AutoAssignDesignJobsCommand must be created via NewAutoAssignDesignJobsCommand constructor",
)

// AutoAssignDesignJobsCommand triggers one sweep of the background design
// assignment: every organization with queued unassigned jobs gets a smart
// assignment run. It carries no parameters; the guard only proves the command
// came through the constructor.
type AutoAssignDesignJobsCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoAssignDesignJobsCommand creates an auto-assignment sweep command.
func NewAutoAssignDesignJobsCommand() (AutoAssignDesignJobsCommand, error) {
	return AutoAssignDesignJobsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignDesignJobsCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignDesignJobsCommandIsNotConstructed)
}
