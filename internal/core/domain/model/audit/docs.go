// Package audit contains the append-only audit event model: one immutable
// stream per entity, a closed event-code set per entity kind, and an opaque
// JSON payload per event. The audit log is the engine's sole observable side
// channel.
package audit
