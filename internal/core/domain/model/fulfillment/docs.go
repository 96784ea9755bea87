// Package fulfillment contains the OrderItem aggregate with its fulfillment
// stage state machine and the Milestone entity. Milestones form the per-order
// checklist seeded when manufacturing starts and advanced or blocked by
// work-order cascades.
package fulfillment
