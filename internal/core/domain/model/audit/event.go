package audit

import (
	"errors"
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

// Code identifies an audit event. Each entity kind owns a closed set of
// codes; an event with a code outside its kind's set fails construction.
type Code string

// Design job event codes.
const (
	DesignJobCreated          Code = "DESIGN_JOB_CREATED"
	AssignedToDesigner        Code = "ASSIGNED_TO_DESIGNER"
	SubmittedForReview        Code = "SUBMITTED_FOR_REVIEW"
	DesignApproved            Code = "DESIGN_APPROVED"
	RevisionsRequested        Code = "REVISIONS_REQUESTED"
	DesignRejected            Code = "DESIGN_REJECTED"
	WorkOrderAutoCreated      Code = "WORK_ORDER_AUTO_CREATED"
	WorkOrderAutoCreateFailed Code = "WORK_ORDER_AUTO_CREATE_FAILED"
)

// Work order event codes.
const (
	WorkOrderCreated       Code = "WORK_ORDER_CREATED"
	AssignedToManufacturer Code = "ASSIGNED_TO_MANUFACTURER"
	ProductionDelayed      Code = "PRODUCTION_DELAYED"
	MilestoneReached       Code = "MILESTONE_REACHED"
	POsAutoGenerated       Code = "POS_AUTO_GENERATED"
	POGenerationFailed     Code = "PO_GENERATION_FAILED"
	MilestoneUpdateFailed  Code = "MILESTONE_UPDATE_FAILED"
)

// Purchase order event codes.
const (
	PurchaseOrderCreated  Code = "PURCHASE_ORDER_CREATED"
	PurchaseOrderApproved Code = "PO_APPROVED"
	PurchaseOrderReceived Code = "PO_RECEIVED"
)

// Order item event codes.
const (
	MilestonesSeeded   Code = "MILESTONES_SEEDED"
	MilestonesBlocked  Code = "MILESTONES_BLOCKED"
	FulfillmentAdvance Code = "FULFILLMENT_ADVANCED"
)

// StatusUpdated is shared by every kind: the generic primary-transition event.
const StatusUpdated Code = "STATUS_UPDATED"

// codesByKind returns the closed code set per entity kind. Unknown kinds have
// no codes, so construction fails closed.
func codesByKind() map[kernel.EntityKind]map[Code]struct{} {
	return map[kernel.EntityKind]map[Code]struct{}{
		kernel.KindDesignJob: {
			DesignJobCreated: {}, AssignedToDesigner: {}, SubmittedForReview: {},
			DesignApproved: {}, RevisionsRequested: {}, DesignRejected: {},
			WorkOrderAutoCreated: {}, WorkOrderAutoCreateFailed: {}, StatusUpdated: {},
		},
		kernel.KindWorkOrder: {
			WorkOrderCreated: {}, AssignedToManufacturer: {}, ProductionDelayed: {},
			MilestoneReached: {}, POsAutoGenerated: {}, POGenerationFailed: {},
			MilestoneUpdateFailed: {}, StatusUpdated: {},
		},
		kernel.KindPurchaseOrder: {
			PurchaseOrderCreated: {}, PurchaseOrderApproved: {}, PurchaseOrderReceived: {},
			StatusUpdated: {},
		},
		kernel.KindOrderItem: {
			MilestonesSeeded: {}, MilestonesBlocked: {}, FulfillmentAdvance: {},
			MilestoneReached: {}, StatusUpdated: {},
		},
	}
}

// ValidateCodeForKind checks that the code belongs to the kind's closed set.
func ValidateCodeForKind(kind kernel.EntityKind, code Code) error {
	if _, ok := codesByKind()[kind][code]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event code is invalid",
			fmt.Errorf("%q is not a valid event code for %s", string(code), kind))
	}
	return nil
}

// Payload is the opaque structured data attached to an event. It is
// serialized as JSON by the persistence layer; the engine never inspects it
// after writing.
type Payload map[string]any

// ErrEventIsNotConstructed is returned when an Event was not created through
// its constructors.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event is one immutable row of an entity's append-only audit stream. Rows
// are totally ordered by occurredAt within an entity. A nil actor means the
// event was produced by the engine itself (for example by a cascade).
type Event struct {
	id         kernel.UUID
	orgID      kernel.UUID
	entityKind kernel.EntityKind
	entityID   kernel.UUID
	code       Code
	actorID    *kernel.UUID
	payload    Payload
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewEvent creates an audit event with a server-assigned timestamp.
func NewEvent(orgID kernel.UUID, kind kernel.EntityKind, entityID kernel.UUID, code Code, actorID *kernel.UUID, payload Payload) (*Event, error) {
	if err := errors.Join(
		orgID.Validate(),
		kind.Validate(),
		entityID.Validate(),
		ValidateCodeForKind(kind, code),
	); err != nil {
		return nil, err
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return nil, err
		}
	}
	if payload == nil {
		payload = Payload{}
	}

	return &Event{
		id:         kernel.NewUUID(),
		orgID:      orgID,
		entityKind: kind,
		entityID:   entityID,
		code:       code,
		actorID:    actorID,
		payload:    payload,
		occurredAt: time.Now().UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreEvent reconstructs an event from persistence.
func RestoreEvent(
	id, orgID kernel.UUID,
	kind kernel.EntityKind,
	entityID kernel.UUID,
	code Code,
	actorID *kernel.UUID,
	payload Payload,
	occurredAt time.Time,
) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		kind.Validate(),
		entityID.Validate(),
		ValidateCodeForKind(kind, code),
	); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = Payload{}
	}

	return &Event{
		id:         id,
		orgID:      orgID,
		entityKind: kind,
		entityID:   entityID,
		code:       code,
		actorID:    actorID,
		payload:    payload,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the event was created through a constructor.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID { return e.id }

// OrgID returns the owning organization identifier.
func (e *Event) OrgID() kernel.UUID { return e.orgID }

// EntityKind returns which stream the event belongs to.
func (e *Event) EntityKind() kernel.EntityKind { return e.entityKind }

// EntityID returns the entity the event describes.
func (e *Event) EntityID() kernel.UUID { return e.entityID }

// EventCode returns the event's code.
func (e *Event) EventCode() Code { return e.code }

// ActorID returns the acting user, or nil for engine-generated events.
func (e *Event) ActorID() *kernel.UUID { return e.actorID }

// EventPayload returns the opaque structured payload.
func (e *Event) EventPayload() Payload { return e.payload }

// OccurredAt returns the server-assigned timestamp (UTC).
func (e *Event) OccurredAt() time.Time { return e.occurredAt }
