package kernel_test

import (
	"testing"

	"manufacturing/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestStatusGraph(t *testing.T) {
	graph := kernel.StatusGraph[string]{
		"draft":     {"active", "cancelled"},
		"active":    {"done"},
		"done":      {},
		"cancelled": {},
	}

	t.Run("CanTransition follows edges only", func(t *testing.T) {
		assert.True(t, graph.CanTransition("draft", "active"))
		assert.True(t, graph.CanTransition("active", "done"))
		assert.False(t, graph.CanTransition("draft", "done"))
		assert.False(t, graph.CanTransition("done", "draft"))
	})

	t.Run("self-transitions require an explicit edge", func(t *testing.T) {
		assert.False(t, graph.CanTransition("draft", "draft"))
	})

	t.Run("unknown from state has no edges", func(t *testing.T) {
		assert.False(t, graph.CanTransition("archived", "active"))
		assert.Empty(t, graph.ValidTransitions("archived"))
	})

	t.Run("IsTerminal distinguishes unknown from terminal", func(t *testing.T) {
		assert.True(t, graph.IsTerminal("done"))
		assert.False(t, graph.IsTerminal("draft"))
		assert.False(t, graph.IsTerminal("archived"))
	})

	t.Run("Contains reports graph membership", func(t *testing.T) {
		assert.True(t, graph.Contains("draft"))
		assert.False(t, graph.Contains("archived"))
	})

	t.Run("ValidTransitions returns a copy", func(t *testing.T) {
		targets := graph.ValidTransitions("draft")
		targets[0] = "mutated"

		assert.Equal(t, []string{"active", "cancelled"}, graph.ValidTransitions("draft"))
	})
}
