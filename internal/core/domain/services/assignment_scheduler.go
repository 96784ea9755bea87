package services

import (
	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/kernel"
)

// WorkItem is one unit of assignable work: a design job for designers or a
// work order for manufacturers. RequiredSpecializations may be empty.
type WorkItem struct {
	ID                      kernel.UUID
	RequiredSpecializations []string
}

// Assignment pairs a work item with the agent chosen for it.
type Assignment struct {
	ItemID  kernel.UUID
	AgentID kernel.UUID
	Score   float64
}

// AssignmentScheduler distributes a batch of work items over a pool of
// capacity-bounded agents.
//
// The smart mode is a greedy, stateful, single pass with no backtracking:
// items are scored in input order, the winning agent's in-memory assignment
// counter is bumped before the next item is scored, and ties go to the first
// agent encountered in iteration order with no secondary tie-break. Identical
// inputs therefore always produce identical output.
//
// Scoring per eligible agent, each component in [0, 50]:
//
//	skillScore    = |required ∩ agent| / |required| * 50  (25 when nothing is required)
//	workloadScore = max(0, 50 - workloadPercent/2)
//
// Eligibility = agent is active AND its assignment count is below the
// effective capacity limit (caller override, else agent limit, else the
// global default of 10).
//
// An item with no eligible agent is omitted from the result; callers must
// treat the omission as an assignment failure, not a silent skip.
type AssignmentScheduler struct {
	capacity CapacityCalculator
}

// NewAssignmentScheduler creates a new AssignmentScheduler.
func NewAssignmentScheduler() AssignmentScheduler {
	return AssignmentScheduler{capacity: NewCapacityCalculator()}
}

// Assign runs the smart pass over items in input order. The pool agents'
// assignment counters are mutated in memory as items are placed; the caller
// persists the agents it received back in assignments.
//
// capacityOverride, when non-nil and positive, replaces every agent's own
// capacity limit for this call.
func (s AssignmentScheduler) Assign(items []WorkItem, pool []*agent.Agent, capacityOverride *int) ([]Assignment, error) {
	for _, a := range pool {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}

	assignments := make([]Assignment, 0, len(items))
	for _, item := range items {
		best, score := s.pickAgent(item, pool, capacityOverride)
		if best == nil {
			continue
		}

		best.TakeAssignment()
		assignments = append(assignments, Assignment{
			ItemID:  item.ID,
			AgentID: best.ID(),
			Score:   score,
		})
	}

	return assignments, nil
}

// pickAgent scores every eligible agent for one item and returns the best,
// or nil when nobody is eligible. First agent wins on equal scores.
func (s AssignmentScheduler) pickAgent(item WorkItem, pool []*agent.Agent, capacityOverride *int) (*agent.Agent, float64) {
	var (
		best      *agent.Agent
		bestScore float64
	)

	for _, a := range pool {
		if !a.IsActive() || !a.HasCapacity(capacityOverride) {
			continue
		}

		score := s.skillScore(item.RequiredSpecializations, a) + s.workloadScore(a)
		if best == nil || score > bestScore {
			best = a
			bestScore = score
		}
	}

	return best, bestScore
}

// skillScore rates specialization overlap on a 0-50 scale. An item without
// required specializations rates every agent a neutral 25.
func (s AssignmentScheduler) skillScore(required []string, a *agent.Agent) float64 {
	if len(required) == 0 {
		return 25
	}

	matched := 0
	for _, tag := range required {
		if a.HasSpecialization(tag) {
			matched++
		}
	}
	return float64(matched) / float64(len(required)) * 50
}

// workloadScore rewards idle agents on a 0-50 scale: the 0-100 workload
// percentage is compressed to 0-50 and subtracted from the maximum.
func (s AssignmentScheduler) workloadScore(a *agent.Agent) float64 {
	scaled := s.capacity.WorkloadScore(a) / 2
	score := 50 - scaled
	if score < 0 {
		return 0
	}
	return score
}
