// Package agentrepo provides data transfer objects and mapping functions for
// agent persistence. Agents are the designers and manufacturers work gets
// assigned to; the assignment counter lives on the row and is updated
// inside the same transaction as the assignment itself.
package agentrepo

import (
	"encoding/json"
	"time"

	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO represents the database structure for persisting agents.
// Specializations are a small free-form tag list and are stored as a JSON
// array in one column.
type AgentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID           uuid.UUID `gorm:"type:uuid;index"`
	Role            string    `gorm:"index"`
	Name            string
	IsActive        bool `gorm:"index"`
	Specializations string
	CapacityLimit   int
	AssignedCount   int
	UpdatedAt       time.Time
}

// TableName specifies the database table name for agent entities.
func (AgentDTO) TableName() string {
	return "agents"
}

// fromDomain converts an agent aggregate to its database representation.
func fromDomain(a *agent.Agent) (AgentDTO, error) {
	specializations, err := json.Marshal(a.Specializations())
	if err != nil {
		return AgentDTO{}, err
	}

	return AgentDTO{
		ID:              a.ID().Bytes(),
		OrgID:           a.OrgID().Bytes(),
		Role:            a.Role().String(),
		Name:            a.Name(),
		IsActive:        a.IsActive(),
		Specializations: string(specializations),
		CapacityLimit:   a.CapacityLimit(),
		AssignedCount:   a.AssignedCount(),
		UpdatedAt:       a.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO back to an agent aggregate using
// RestoreAgent.
func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := kernelUUID(dto.OrgID)
	if err != nil {
		return nil, err
	}

	var specializations []string
	if dto.Specializations != "" {
		if err := json.Unmarshal([]byte(dto.Specializations), &specializations); err != nil {
			return nil, err
		}
	}

	return agent.RestoreAgent(
		id, orgID,
		agent.Role(dto.Role),
		dto.Name,
		dto.IsActive,
		specializations,
		dto.CapacityLimit, dto.AssignedCount,
		dto.UpdatedAt,
	)
}

func kernelUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}
