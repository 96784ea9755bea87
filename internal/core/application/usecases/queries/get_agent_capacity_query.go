// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrGetAgentCapacityQueryIsNotConstructed = errors.New(
	"GetAgentCapacityQuery must be created via NewGetAgentCapacityQuery constructor",
)

// GetAgentCapacityQuery retrieves the workload picture of an organization's
// active agents in one role: how loaded each designer or manufacturer is and
// when an overloaded one frees up.
type GetAgentCapacityQuery struct {
	orgID kernel.UUID
	role  agent.Role

	guard guard.ConstructorGuard
}

// NewGetAgentCapacityQuery creates a capacity query for one role.
func NewGetAgentCapacityQuery(orgID kernel.UUID, role agent.Role) (GetAgentCapacityQuery, error) {
	if err := errors.Join(
		orgID.Validate(),
		role.Validate(),
	); err != nil {
		return GetAgentCapacityQuery{}, err
	}

	return GetAgentCapacityQuery{
		orgID: orgID,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAgentCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentCapacityQueryIsNotConstructed)
}

// OrgID returns the organization being inspected.
func (q GetAgentCapacityQuery) OrgID() kernel.UUID { return q.orgID }

// Role returns the agent role being inspected.
func (q GetAgentCapacityQuery) Role() agent.Role { return q.role }

// GetAgentCapacityQueryResponse is one agent's workload in the read model.
type GetAgentCapacityQueryResponse struct {
	AgentID       kernel.UUID
	Name          string
	CapacityLimit int
	AssignedCount int
	WorkloadScore float64
	Available     bool
	NextAvailable *time.Time
}
