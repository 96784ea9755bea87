package services

import (
	"time"

	"manufacturing/internal/core/domain/model/agent"
)

// DefaultAvailabilityThreshold is the workload score above which an agent is
// considered unavailable for new work.
const DefaultAvailabilityThreshold = 90.0

// overloadedBackoff is the heuristic wait before an overloaded agent is
// expected to free up.
const overloadedBackoff = 7 * 24 * time.Hour

// CapacityCalculator scores agent workload and availability. It is stateless;
// every method operates purely on the agent passed in. The calculator is used
// standalone by the capacity queries and inside the assignment scheduler's
// eligibility check.
type CapacityCalculator struct{}

// NewCapacityCalculator creates a new CapacityCalculator.
func NewCapacityCalculator() CapacityCalculator {
	return CapacityCalculator{}
}

// WorkloadScore returns the agent's utilization as a percentage capped at
// 100: assignedCount / effectiveCapacity * 100.
func (c CapacityCalculator) WorkloadScore(a *agent.Agent) float64 {
	capacity := a.EffectiveCapacityLimit(nil)
	score := float64(a.AssignedCount()) / float64(capacity) * 100
	if score > 100 {
		return 100
	}
	return score
}

// IsAvailable reports whether the agent is active and its workload score is
// below the threshold. A threshold of zero or less means "use the default".
func (c CapacityCalculator) IsAvailable(a *agent.Agent, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultAvailabilityThreshold
	}
	return a.IsActive() && c.WorkloadScore(a) < threshold
}

// NextAvailableDate estimates when an overloaded agent frees up: now plus
// seven days when the agent is over the threshold, nil otherwise.
func (c CapacityCalculator) NextAvailableDate(a *agent.Agent, now time.Time) *time.Time {
	if c.IsAvailable(a, DefaultAvailabilityThreshold) {
		return nil
	}
	next := now.Add(overloadedBackoff)
	return &next
}
