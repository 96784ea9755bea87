// Package purchaseorder contains the PurchaseOrder aggregate and its status
// state machine. Purchase orders are generated from pending material
// requirements grouped by supplier; their total amount is derived from the
// lines and drives the approval-threshold routing.
package purchaseorder
