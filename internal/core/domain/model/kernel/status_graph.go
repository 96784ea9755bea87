package kernel

// StatusGraph is a directed transition graph over a status type. Each entity
// kind owns one fixed graph; the graph is the single source of truth for
// which status changes are legal.
//
// Semantics are fail-closed: an unknown "from" state has no outgoing edges,
// and self-transitions are only allowed when explicitly listed. A terminal
// state is a known state with zero outgoing edges.
type StatusGraph[S comparable] map[S][]S

// CanTransition reports whether the edge from -> to exists in the graph.
func (g StatusGraph[S]) CanTransition(from, to S) bool {
	for _, next := range g[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidTransitions returns the set of states reachable from the given state
// in one step. Unknown states yield an empty slice.
func (g StatusGraph[S]) ValidTransitions(from S) []S {
	targets := g[from]
	out := make([]S, len(targets))
	copy(out, targets)
	return out
}

// IsTerminal reports whether the state is known to the graph and has no
// outgoing edges.
func (g StatusGraph[S]) IsTerminal(s S) bool {
	targets, ok := g[s]
	return ok && len(targets) == 0
}

// Contains reports whether the state is a node of the graph.
func (g StatusGraph[S]) Contains(s S) bool {
	_, ok := g[s]
	return ok
}
