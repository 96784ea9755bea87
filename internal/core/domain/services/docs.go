// Package services contains stateless domain services: the kind-keyed status
// transition validator, the capacity calculator, and the greedy assignment
// scheduler. None of them hold state between calls; the scheduler's workload
// counters live on the agents passed into a single call and are discarded
// with them.
package services
