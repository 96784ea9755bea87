package audit_test

import (
	"testing"
	"time"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCodeForKind(t *testing.T) {
	t.Run("codes belong to their kind", func(t *testing.T) {
		assert.NoError(t, audit.ValidateCodeForKind(kernel.KindDesignJob, audit.DesignJobCreated))
		assert.NoError(t, audit.ValidateCodeForKind(kernel.KindWorkOrder, audit.ProductionDelayed))
		assert.NoError(t, audit.ValidateCodeForKind(kernel.KindPurchaseOrder, audit.PurchaseOrderApproved))
		assert.NoError(t, audit.ValidateCodeForKind(kernel.KindOrderItem, audit.MilestonesSeeded))
	})

	t.Run("status_updated is valid for every kind", func(t *testing.T) {
		for _, kind := range []kernel.EntityKind{
			kernel.KindDesignJob, kernel.KindWorkOrder, kernel.KindPurchaseOrder, kernel.KindOrderItem,
		} {
			assert.NoError(t, audit.ValidateCodeForKind(kind, audit.StatusUpdated))
		}
	})

	t.Run("codes fail for the wrong kind", func(t *testing.T) {
		err := audit.ValidateCodeForKind(kernel.KindPurchaseOrder, audit.DesignJobCreated)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown kind fails closed", func(t *testing.T) {
		assert.Error(t, audit.ValidateCodeForKind(kernel.EntityKind("supplier"), audit.StatusUpdated))
	})
}

func TestNewEvent(t *testing.T) {
	orgID := kernel.NewUUID()
	entityID := kernel.NewUUID()

	t.Run("should create event with server-side id and timestamp", func(t *testing.T) {
		actorID := kernel.NewUUID()

		event, err := audit.NewEvent(orgID, kernel.KindDesignJob, entityID,
			audit.DesignJobCreated, &actorID, audit.Payload{"title": "oak chair"})

		require.NoError(t, err)
		require.NoError(t, event.Validate())
		assert.NoError(t, event.ID().Validate())
		assert.Equal(t, audit.DesignJobCreated, event.EventCode())
		assert.Equal(t, kernel.KindDesignJob, event.EntityKind())
		require.NotNil(t, event.ActorID())
		assert.True(t, event.ActorID().IsEqual(actorID))
		assert.Equal(t, "oak chair", event.EventPayload()["title"])
		assert.WithinDuration(t, time.Now().UTC(), event.OccurredAt(), time.Minute)
	})

	t.Run("nil actor marks an engine-produced event", func(t *testing.T) {
		event, err := audit.NewEvent(orgID, kernel.KindWorkOrder, entityID,
			audit.WorkOrderCreated, nil, nil)

		require.NoError(t, err)
		assert.Nil(t, event.ActorID())
		assert.NotNil(t, event.EventPayload())
		assert.Empty(t, event.EventPayload())
	})

	t.Run("should reject code outside the kind's set", func(t *testing.T) {
		event, err := audit.NewEvent(orgID, kernel.KindPurchaseOrder, entityID,
			audit.AssignedToDesigner, nil, nil)

		require.Error(t, err)
		assert.Nil(t, event)
	})

	t.Run("should reject zero actor id", func(t *testing.T) {
		var zeroActor kernel.UUID

		event, err := audit.NewEvent(orgID, kernel.KindDesignJob, entityID,
			audit.DesignJobCreated, &zeroActor, nil)

		require.Error(t, err)
		assert.Nil(t, event)
	})
}

func TestRestoreEvent(t *testing.T) {
	t.Run("round-trips stored fields", func(t *testing.T) {
		id := kernel.NewUUID()
		orgID := kernel.NewUUID()
		entityID := kernel.NewUUID()
		occurredAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

		event, err := audit.RestoreEvent(id, orgID, kernel.KindOrderItem, entityID,
			audit.FulfillmentAdvance, nil, audit.Payload{"stage": "packaging"}, occurredAt)

		require.NoError(t, err)
		assert.True(t, event.ID().IsEqual(id))
		assert.Equal(t, occurredAt, event.OccurredAt())
		assert.Equal(t, "packaging", event.EventPayload()["stage"])
	})

	t.Run("rejects invalid kind", func(t *testing.T) {
		_, err := audit.RestoreEvent(kernel.NewUUID(), kernel.NewUUID(),
			kernel.EntityKind("supplier"), kernel.NewUUID(),
			audit.StatusUpdated, nil, nil, time.Now().UTC())

		require.Error(t, err)
	})
}
