package purchaseorder_test

import (
	"testing"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/purchaseorder"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should create line and derive amount", func(t *testing.T) {
		item, err := purchaseorder.NewItem(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 8, 1_250)

		require.NoError(t, err)
		assert.Equal(t, 8, item.Quantity())
		assert.Equal(t, int64(1_250), item.UnitPriceCent())
		assert.Equal(t, int64(10_000), item.AmountCent())
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		_, err := purchaseorder.NewItem(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0, 100)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity is invalid")
	})

	t.Run("should fail with negative unit price", func(t *testing.T) {
		_, err := purchaseorder.NewItem(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, -1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unit price is invalid")
	})

	t.Run("should fail with zero requirement id", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := purchaseorder.NewItem(
			kernel.NewUUID(), zeroID, kernel.NewUUID(), 1, 100)

		require.Error(t, err)
	})
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("should create draft order", func(t *testing.T) {
		supplierID := kernel.NewUUID()
		items := []purchaseorder.Item{testItem(t, 10, 5_000), testItem(t, 2, 12_500)}

		po, err := purchaseorder.NewPurchaseOrder(
			kernel.NewUUID(), kernel.NewUUID(), supplierID,
			purchaseorder.DefaultApprovalThresholdCent, items)

		require.NoError(t, err)
		require.NoError(t, po.Validate())
		assert.Equal(t, purchaseorder.Draft, po.Status())
		assert.True(t, po.SupplierID().IsEqual(supplierID))
		assert.Len(t, po.Items(), 2)
		assert.Equal(t, int64(75_000), po.TotalAmountCent())
	})

	t.Run("should fail without items", func(t *testing.T) {
		po, err := purchaseorder.NewPurchaseOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			purchaseorder.DefaultApprovalThresholdCent, nil)

		require.Error(t, err)
		assert.Nil(t, po)
		assert.ErrorIs(t, err, purchaseorder.ErrNoItems)
	})

	t.Run("should fail with negative threshold", func(t *testing.T) {
		po, err := purchaseorder.NewPurchaseOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			-1, []purchaseorder.Item{testItem(t, 1, 100)})

		require.Error(t, err)
		assert.Nil(t, po)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("items are copied, not aliased", func(t *testing.T) {
		items := []purchaseorder.Item{testItem(t, 1, 100)}
		po, err := purchaseorder.NewPurchaseOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			purchaseorder.DefaultApprovalThresholdCent, items)
		require.NoError(t, err)

		items[0] = testItem(t, 99, 99)

		assert.Equal(t, 1, po.Items()[0].Quantity())
	})
}

func TestPurchaseOrder_Submit(t *testing.T) {
	t.Run("below threshold auto-approves", func(t *testing.T) {
		po := draftOrder(t, testItem(t, 10, 5_000)) // 50_000 < 500_000

		require.NoError(t, po.Submit())

		assert.Equal(t, purchaseorder.Approved, po.Status())
	})

	t.Run("at or above threshold queues for approval", func(t *testing.T) {
		po := draftOrder(t, testItem(t, 100, 5_000)) // 500_000 == threshold

		require.NoError(t, po.Submit())

		assert.Equal(t, purchaseorder.PendingApproval, po.Status())
	})

	t.Run("submit of a non-draft order fails", func(t *testing.T) {
		po := draftOrder(t, testItem(t, 10, 5_000))
		require.NoError(t, po.Submit())

		err := po.Submit()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPurchaseOrder_ApprovalFlow(t *testing.T) {
	t.Run("pending order can be approved", func(t *testing.T) {
		po := draftOrder(t, testItem(t, 200, 5_000))
		require.NoError(t, po.Submit())
		require.Equal(t, purchaseorder.PendingApproval, po.Status())

		require.NoError(t, po.Approve())

		assert.Equal(t, purchaseorder.Approved, po.Status())
	})

	t.Run("pending order can return to draft", func(t *testing.T) {
		po := draftOrder(t, testItem(t, 200, 5_000))
		require.NoError(t, po.Submit())

		require.NoError(t, po.ChangeStatus(purchaseorder.Draft))

		assert.Equal(t, purchaseorder.Draft, po.Status())
	})
}

func TestPurchaseOrder_Receive(t *testing.T) {
	t.Run("full procurement flow", func(t *testing.T) {
		po := draftOrder(t, testItem(t, 10, 5_000))
		require.NoError(t, po.Submit())

		require.NoError(t, po.ChangeStatus(purchaseorder.Sent))
		require.NoError(t, po.ChangeStatus(purchaseorder.Acknowledged))
		require.NoError(t, po.ChangeStatus(purchaseorder.InProduction))
		require.NoError(t, po.ChangeStatus(purchaseorder.Shipped))
		require.NoError(t, po.ChangeStatus(purchaseorder.Delivered))
		require.NoError(t, po.Receive())
		require.NoError(t, po.ChangeStatus(purchaseorder.Completed))

		assert.True(t, po.Status().IsTerminal())
	})

	t.Run("cannot receive before delivery", func(t *testing.T) {
		po := draftOrder(t, testItem(t, 10, 5_000))
		require.NoError(t, po.Submit())

		err := po.Receive()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    purchaseorder.Status
		to      purchaseorder.Status
		allowed bool
	}{
		{purchaseorder.Draft, purchaseorder.Approved, true},
		{purchaseorder.Draft, purchaseorder.Sent, false},
		{purchaseorder.PendingApproval, purchaseorder.Draft, true},
		{purchaseorder.Approved, purchaseorder.Sent, true},
		{purchaseorder.Sent, purchaseorder.OnHold, true},
		{purchaseorder.OnHold, purchaseorder.InProduction, true},
		{purchaseorder.Shipped, purchaseorder.Cancelled, false},
		{purchaseorder.Completed, purchaseorder.Draft, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}

	assert.Error(t, purchaseorder.Status("returned").Validate())
}

func testItem(t *testing.T, quantity int, unitPriceCent int64) purchaseorder.Item {
	t.Helper()
	item, err := purchaseorder.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), quantity, unitPriceCent)
	require.NoError(t, err)
	return item
}

func draftOrder(t *testing.T, items ...purchaseorder.Item) *purchaseorder.PurchaseOrder {
	t.Helper()
	po, err := purchaseorder.NewPurchaseOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		purchaseorder.DefaultApprovalThresholdCent, items)
	require.NoError(t, err)
	return po
}
