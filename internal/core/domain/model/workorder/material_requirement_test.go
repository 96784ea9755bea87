package workorder_test

import (
	"testing"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterialRequirement(t *testing.T) {
	t.Run("should create pending requirement", func(t *testing.T) {
		supplierID := kernel.NewUUID()

		req, err := workorder.NewMaterialRequirement(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), supplierID, 24, 1_850)

		require.NoError(t, err)
		require.NoError(t, req.Validate())
		assert.Equal(t, workorder.RequirementPending, req.Status())
		assert.True(t, req.SupplierID().IsEqual(supplierID))
		assert.Equal(t, 24, req.QuantityNeeded())
		assert.Equal(t, int64(1_850), req.UnitCostCent())
	})

	t.Run("should allow zero unit cost", func(t *testing.T) {
		req, err := workorder.NewMaterialRequirement(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, 0)

		require.NoError(t, err)
		assert.Equal(t, int64(0), req.UnitCostCent())
	})

	t.Run("should fail with negative unit cost", func(t *testing.T) {
		req, err := workorder.NewMaterialRequirement(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, -100)

		require.Error(t, err)
		assert.Nil(t, req)
		assert.Contains(t, err.Error(), "unit cost is invalid")
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		req, err := workorder.NewMaterialRequirement(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0, 100)

		require.Error(t, err)
		assert.Nil(t, req)
	})
}

func TestMaterialRequirement_StatusProgression(t *testing.T) {
	t.Run("linear progression to fulfilled", func(t *testing.T) {
		req := pendingRequirement(t)

		require.NoError(t, req.MarkOrdered())
		assert.Equal(t, workorder.RequirementOrdered, req.Status())

		require.NoError(t, req.MarkReceived())
		assert.Equal(t, workorder.RequirementReceived, req.Status())

		require.NoError(t, req.MarkFulfilled())
		assert.Equal(t, workorder.RequirementFulfilled, req.Status())
	})

	t.Run("cannot skip steps", func(t *testing.T) {
		req := pendingRequirement(t)

		err := req.MarkReceived()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, workorder.RequirementPending, req.Status())
	})

	t.Run("cannot reorder a fulfilled requirement", func(t *testing.T) {
		req := pendingRequirement(t)
		require.NoError(t, req.MarkOrdered())
		require.NoError(t, req.MarkReceived())
		require.NoError(t, req.MarkFulfilled())

		require.Error(t, req.MarkOrdered())
	})
}

func TestRequirementStatus_Validate(t *testing.T) {
	for _, s := range []workorder.RequirementStatus{
		workorder.RequirementPending,
		workorder.RequirementOrdered,
		workorder.RequirementReceived,
		workorder.RequirementFulfilled,
	} {
		assert.NoError(t, s.Validate())
	}

	assert.Error(t, workorder.RequirementStatus("backordered").Validate())
	assert.Error(t, workorder.RequirementStatus("").Validate())
}

func pendingRequirement(t *testing.T) *workorder.MaterialRequirement {
	t.Helper()
	req, err := workorder.NewMaterialRequirement(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 5, 2_000)
	require.NoError(t, err)
	return req
}
