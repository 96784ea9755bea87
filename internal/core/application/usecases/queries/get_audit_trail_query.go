package queries

import (
	"errors"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrGetAuditTrailQueryIsNotConstructed = errors.New(
	"GetAuditTrailQuery must be created via NewGetAuditTrailQuery constructor",
)

// GetAuditTrailQuery retrieves one entity's append-only audit stream in
// chronological order.
type GetAuditTrailQuery struct {
	orgID      kernel.UUID
	entityKind kernel.EntityKind
	entityID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAuditTrailQuery creates an audit trail query for one entity.
func NewGetAuditTrailQuery(orgID kernel.UUID, entityKind kernel.EntityKind, entityID kernel.UUID) (GetAuditTrailQuery, error) {
	if err := errors.Join(
		orgID.Validate(),
		entityKind.Validate(),
		entityID.Validate(),
	); err != nil {
		return GetAuditTrailQuery{}, err
	}

	return GetAuditTrailQuery{
		orgID:      orgID,
		entityKind: entityKind,
		entityID:   entityID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditTrailQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditTrailQueryIsNotConstructed)
}

// OrgID returns the organization being inspected.
func (q GetAuditTrailQuery) OrgID() kernel.UUID { return q.orgID }

// EntityKind returns the stream's entity kind.
func (q GetAuditTrailQuery) EntityKind() kernel.EntityKind { return q.entityKind }

// EntityID returns the entity whose stream is read.
func (q GetAuditTrailQuery) EntityID() kernel.UUID { return q.entityID }

// GetAuditTrailQueryResponse is one audit event in the read model. A nil
// ActorID marks an engine-generated event.
type GetAuditTrailQueryResponse struct {
	EventID    kernel.UUID
	Code       string
	ActorID    *kernel.UUID
	Payload    map[string]any
	OccurredAt time.Time
}
