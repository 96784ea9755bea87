package agent

import (
	"errors"
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

// DefaultCapacityLimit applies when neither the caller nor the agent record
// specifies a capacity limit.
const DefaultCapacityLimit = 10

// Role distinguishes the two kinds of work agents the engine assigns to.
type Role string

const (
	RoleDesigner     Role = "designer"
	RoleManufacturer Role = "manufacturer"
)

// Validate checks the role is one of the known agent roles.
func (r Role) Validate() error {
	if r != RoleDesigner && r != RoleManufacturer {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%q is not a valid agent role", string(r)))
	}
	return nil
}

// String returns the persisted representation of the role.
func (r Role) String() string {
	return string(r)
}

// ErrAgentIsNotConstructed is returned when an Agent was not created through
// its constructors.
var ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent or RestoreAgent")

// Agent is a capacity-bounded worker: a designer taking design jobs or a
// manufacturer taking work orders. currentAssignedCount mirrors the number of
// active assignments; the assignment scheduler bumps it in memory while it
// walks a batch, and the repository persists the final value.
type Agent struct {
	id              kernel.UUID
	orgID           kernel.UUID
	role            Role
	name            string
	isActive        bool
	specializations []string
	capacityLimit   int
	assignedCount   int
	updatedAt       time.Time

	guard guard.ConstructorGuard
}

// NewAgent creates an active agent with no assignments. A capacityLimit of
// zero means "use the default".
func NewAgent(id, orgID kernel.UUID, role Role, name string, specializations []string, capacityLimit int) (*Agent, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if capacityLimit < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("capacity limit is invalid",
			fmt.Errorf("%d is negative", capacityLimit))
	}

	return &Agent{
		id:              id,
		orgID:           orgID,
		role:            role,
		name:            name,
		isActive:        true,
		specializations: append([]string(nil), specializations...),
		capacityLimit:   capacityLimit,
		updatedAt:       time.Now().UTC(),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreAgent reconstructs an agent from persistence.
func RestoreAgent(
	id, orgID kernel.UUID,
	role Role,
	name string,
	isActive bool,
	specializations []string,
	capacityLimit, assignedCount int,
	updatedAt time.Time,
) (*Agent, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}
	if capacityLimit < 0 || assignedCount < 0 {
		return nil, errs.NewValueIsInvalidError("capacity values are invalid")
	}

	return &Agent{
		id:              id,
		orgID:           orgID,
		role:            role,
		name:            name,
		isActive:        isActive,
		specializations: append([]string(nil), specializations...),
		capacityLimit:   capacityLimit,
		assignedCount:   assignedCount,
		updatedAt:       updatedAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the agent was created through a constructor.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() kernel.UUID { return a.id }

// OrgID returns the owning organization identifier.
func (a *Agent) OrgID() kernel.UUID { return a.orgID }

// Role returns whether the agent is a designer or a manufacturer.
func (a *Agent) Role() Role { return a.role }

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.name }

// IsActive reports whether the agent accepts new assignments at all.
func (a *Agent) IsActive() bool { return a.isActive }

// Specializations returns a copy of the agent's capability tags.
func (a *Agent) Specializations() []string {
	return append([]string(nil), a.specializations...)
}

// CapacityLimit returns the agent's own capacity limit; zero means unset.
func (a *Agent) CapacityLimit() int { return a.capacityLimit }

// AssignedCount returns the number of currently assigned work items.
func (a *Agent) AssignedCount() int { return a.assignedCount }

// UpdatedAt returns the last mutation timestamp (UTC).
func (a *Agent) UpdatedAt() time.Time { return a.updatedAt }

// EffectiveCapacityLimit resolves the capacity limit: caller override first,
// then the agent's own limit, then DefaultCapacityLimit.
func (a *Agent) EffectiveCapacityLimit(override *int) int {
	if override != nil && *override > 0 {
		return *override
	}
	if a.capacityLimit > 0 {
		return a.capacityLimit
	}
	return DefaultCapacityLimit
}

// HasCapacity reports whether the agent can take one more assignment under
// the resolved capacity limit.
func (a *Agent) HasCapacity(override *int) bool {
	return a.assignedCount < a.EffectiveCapacityLimit(override)
}

// HasSpecialization reports whether the agent carries the given capability
// tag.
func (a *Agent) HasSpecialization(tag string) bool {
	for _, s := range a.specializations {
		if s == tag {
			return true
		}
	}
	return false
}

// TakeAssignment increments the assignment counter. The scheduler calls this
// between items of a batch so later scoring sees the updated workload.
func (a *Agent) TakeAssignment() {
	a.assignedCount++
	a.updatedAt = time.Now().UTC()
}

// ReleaseAssignment decrements the assignment counter when an item finishes
// or is reassigned.
func (a *Agent) ReleaseAssignment() {
	if a.assignedCount > 0 {
		a.assignedCount--
		a.updatedAt = time.Now().UTC()
	}
}

// Deactivate removes the agent from the assignment pool.
func (a *Agent) Deactivate() {
	a.isActive = false
	a.updatedAt = time.Now().UTC()
}
