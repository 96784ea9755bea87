// Package workorder contains the WorkOrder aggregate, its status state
// machine, and the MaterialRequirement entity. A work order tracks an order
// item through manufacturing; its material requirements feed supplier-grouped
// purchase-order generation.
package workorder
