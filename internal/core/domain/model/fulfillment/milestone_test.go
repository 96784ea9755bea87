package fulfillment_test

import (
	"testing"

	"manufacturing/internal/core/domain/model/fulfillment"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCodes(t *testing.T) {
	codes := fulfillment.DefaultCodes()

	assert.Equal(t, []fulfillment.Code{
		fulfillment.ProductionScheduled,
		fulfillment.ProductionStarted,
		fulfillment.QualityCheckPassed,
		fulfillment.ReadyForPackaging,
		fulfillment.ReadyToShipMilestone,
		fulfillment.ShippedMilestone,
	}, codes)
}

func TestCode_Validate(t *testing.T) {
	for _, code := range fulfillment.DefaultCodes() {
		assert.NoError(t, code.Validate(), "code %s should be valid", code)
	}

	assert.Error(t, fulfillment.Code("INVOICED").Validate())
	assert.Error(t, fulfillment.Code("").Validate())
}

func TestNewMilestone(t *testing.T) {
	t.Run("should create pending milestone", func(t *testing.T) {
		orderID := kernel.NewUUID()

		m, err := fulfillment.NewMilestone(
			kernel.NewUUID(), kernel.NewUUID(), orderID, fulfillment.ProductionStarted)

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, fulfillment.MilestonePending, m.Status())
		assert.Equal(t, fulfillment.ProductionStarted, m.Code())
		assert.True(t, m.OrderID().IsEqual(orderID))
		assert.Empty(t, m.BlockedReason())
		assert.True(t, m.IsOpen())
	})

	t.Run("should reject unknown code", func(t *testing.T) {
		m, err := fulfillment.NewMilestone(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), fulfillment.Code("INVOICED"))

		require.Error(t, err)
		assert.Nil(t, m)
	})
}

func TestMilestone_Lifecycle(t *testing.T) {
	t.Run("pending can complete directly", func(t *testing.T) {
		m := pendingMilestone(t)

		require.NoError(t, m.Complete())

		assert.Equal(t, fulfillment.MilestoneCompleted, m.Status())
		assert.False(t, m.IsOpen())
	})

	t.Run("start then complete", func(t *testing.T) {
		m := pendingMilestone(t)

		require.NoError(t, m.Start())
		assert.Equal(t, fulfillment.MilestoneInProgress, m.Status())

		require.NoError(t, m.Complete())
		assert.Equal(t, fulfillment.MilestoneCompleted, m.Status())
	})

	t.Run("completed milestone refuses further moves", func(t *testing.T) {
		m := pendingMilestone(t)
		require.NoError(t, m.Complete())

		require.Error(t, m.Start())
		require.Error(t, m.Block("delay"))
	})
}

func TestMilestone_Block(t *testing.T) {
	t.Run("records reason and clears it on unblock", func(t *testing.T) {
		m := pendingMilestone(t)

		require.NoError(t, m.Block("supplier shipment late"))
		assert.Equal(t, fulfillment.MilestoneBlocked, m.Status())
		assert.Equal(t, "supplier shipment late", m.BlockedReason())

		require.NoError(t, m.Unblock())
		assert.Equal(t, fulfillment.MilestonePending, m.Status())
		assert.Empty(t, m.BlockedReason())
	})

	t.Run("blocked milestone can resume in progress", func(t *testing.T) {
		m := pendingMilestone(t)
		require.NoError(t, m.Start())
		require.NoError(t, m.Block("kiln down"))

		require.NoError(t, m.Start())
		assert.Equal(t, fulfillment.MilestoneInProgress, m.Status())
		assert.Empty(t, m.BlockedReason())
	})

	t.Run("requires a reason", func(t *testing.T) {
		m := pendingMilestone(t)

		err := m.Block("")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, fulfillment.MilestonePending, m.Status())
	})

	t.Run("blocked milestone cannot complete without unblocking", func(t *testing.T) {
		m := pendingMilestone(t)
		require.NoError(t, m.Block("delay"))

		require.Error(t, m.Complete())
	})
}

func pendingMilestone(t *testing.T) *fulfillment.Milestone {
	t.Helper()
	m, err := fulfillment.NewMilestone(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), fulfillment.ProductionScheduled)
	require.NoError(t, err)
	return m
}
