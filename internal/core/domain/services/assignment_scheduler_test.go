package services_test

import (
	"testing"

	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentScheduler_Assign(t *testing.T) {
	scheduler := services.NewAssignmentScheduler()

	t.Run("prefers the idle agent", func(t *testing.T) {
		busy := poolAgent(t, "busy", nil, 10)
		for i := 0; i < 8; i++ {
			busy.TakeAssignment()
		}
		idle := poolAgent(t, "idle", nil, 10)

		assignments, err := scheduler.Assign(
			[]services.WorkItem{{ID: kernel.NewUUID()}},
			[]*agent.Agent{busy, idle}, nil)

		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.True(t, assignments[0].AgentID.IsEqual(idle.ID()))
		assert.Equal(t, 1, idle.AssignedCount())
		assert.Equal(t, 8, busy.AssignedCount())
	})

	t.Run("prefers the matching specialization", func(t *testing.T) {
		generalist := poolAgent(t, "generalist", nil, 10)
		specialist := poolAgent(t, "specialist", []string{"cad", "upholstery"}, 10)

		assignments, err := scheduler.Assign(
			[]services.WorkItem{{
				ID:                      kernel.NewUUID(),
				RequiredSpecializations: []string{"cad"},
			}},
			[]*agent.Agent{generalist, specialist}, nil)

		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.True(t, assignments[0].AgentID.IsEqual(specialist.ID()))
	})

	t.Run("ties go to the first agent in pool order", func(t *testing.T) {
		first := poolAgent(t, "first", nil, 10)
		second := poolAgent(t, "second", nil, 10)

		assignments, err := scheduler.Assign(
			[]services.WorkItem{{ID: kernel.NewUUID()}},
			[]*agent.Agent{first, second}, nil)

		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.True(t, assignments[0].AgentID.IsEqual(first.ID()))
	})

	t.Run("counter bump spreads a batch over the pool", func(t *testing.T) {
		a := poolAgent(t, "a", nil, 10)
		b := poolAgent(t, "b", nil, 10)
		items := []services.WorkItem{
			{ID: kernel.NewUUID()},
			{ID: kernel.NewUUID()},
			{ID: kernel.NewUUID()},
		}

		assignments, err := scheduler.Assign(items, []*agent.Agent{a, b}, nil)

		require.NoError(t, err)
		require.Len(t, assignments, 3)
		// First item lands on a, which bumps its counter, so the second
		// goes to b, and the third ties back to a.
		assert.True(t, assignments[0].AgentID.IsEqual(a.ID()))
		assert.True(t, assignments[1].AgentID.IsEqual(b.ID()))
		assert.True(t, assignments[2].AgentID.IsEqual(a.ID()))
		assert.Equal(t, 2, a.AssignedCount())
		assert.Equal(t, 1, b.AssignedCount())
	})

	t.Run("skips inactive agents", func(t *testing.T) {
		inactive := poolAgent(t, "inactive", nil, 10)
		inactive.Deactivate()

		assignments, err := scheduler.Assign(
			[]services.WorkItem{{ID: kernel.NewUUID()}},
			[]*agent.Agent{inactive}, nil)

		require.NoError(t, err)
		assert.Empty(t, assignments)
	})

	t.Run("omits items when everyone is at capacity", func(t *testing.T) {
		a := poolAgent(t, "a", nil, 1)
		b := poolAgent(t, "b", nil, 1)
		items := []services.WorkItem{
			{ID: kernel.NewUUID()},
			{ID: kernel.NewUUID()},
			{ID: kernel.NewUUID()},
		}

		assignments, err := scheduler.Assign(items, []*agent.Agent{a, b}, nil)

		require.NoError(t, err)
		assert.Len(t, assignments, 2)
	})

	t.Run("capacity override tightens every agent", func(t *testing.T) {
		a := poolAgent(t, "a", nil, 10)
		override := 1
		items := []services.WorkItem{
			{ID: kernel.NewUUID()},
			{ID: kernel.NewUUID()},
		}

		assignments, err := scheduler.Assign(items, []*agent.Agent{a}, &override)

		require.NoError(t, err)
		assert.Len(t, assignments, 1)
	})

	t.Run("identical inputs produce identical output", func(t *testing.T) {
		itemIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}

		run := func() []services.Assignment {
			pool := []*agent.Agent{
				poolAgent(t, "a", []string{"cad"}, 2),
				poolAgent(t, "b", nil, 2),
			}
			items := make([]services.WorkItem, 0, len(itemIDs))
			for _, id := range itemIDs {
				items = append(items, services.WorkItem{ID: id, RequiredSpecializations: []string{"cad"}})
			}
			out, err := services.NewAssignmentScheduler().Assign(items, pool, nil)
			require.NoError(t, err)
			return out
		}

		first := run()
		second := run()

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.True(t, first[i].ItemID.IsEqual(second[i].ItemID))
			assert.True(t, first[i].AgentID.IsEqual(second[i].AgentID))
			assert.Equal(t, first[i].Score, second[i].Score)
		}
	})

	t.Run("rejects unconstructed agents", func(t *testing.T) {
		_, err := scheduler.Assign(
			[]services.WorkItem{{ID: kernel.NewUUID()}},
			[]*agent.Agent{{}}, nil)

		require.Error(t, err)
	})
}

func TestAssignmentScheduler_Scoring(t *testing.T) {
	scheduler := services.NewAssignmentScheduler()

	t.Run("idle full-match agent scores 100", func(t *testing.T) {
		a := poolAgent(t, "a", []string{"cad"}, 10)

		assignments, err := scheduler.Assign(
			[]services.WorkItem{{
				ID:                      kernel.NewUUID(),
				RequiredSpecializations: []string{"cad"},
			}},
			[]*agent.Agent{a}, nil)

		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.InDelta(t, 100.0, assignments[0].Score, 0.001)
	})

	t.Run("no required specializations scores a neutral 75 for an idle agent", func(t *testing.T) {
		a := poolAgent(t, "a", nil, 10)

		assignments, err := scheduler.Assign(
			[]services.WorkItem{{ID: kernel.NewUUID()}},
			[]*agent.Agent{a}, nil)

		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.InDelta(t, 75.0, assignments[0].Score, 0.001)
	})

	t.Run("partial skill match scores proportionally", func(t *testing.T) {
		a := poolAgent(t, "a", []string{"cad"}, 10)

		assignments, err := scheduler.Assign(
			[]services.WorkItem{{
				ID:                      kernel.NewUUID(),
				RequiredSpecializations: []string{"cad", "welding"},
			}},
			[]*agent.Agent{a}, nil)

		require.NoError(t, err)
		require.Len(t, assignments, 1)
		// 25 skill (1 of 2 tags) + 50 workload.
		assert.InDelta(t, 75.0, assignments[0].Score, 0.001)
	})
}

func poolAgent(t *testing.T, name string, specializations []string, capacityLimit int) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(
		kernel.NewUUID(), kernel.NewUUID(), agent.RoleDesigner, name, specializations, capacityLimit)
	require.NoError(t, err)
	return a
}
