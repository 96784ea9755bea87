// Package kernel contains the shared building blocks of the domain model:
// the UUID value object used for entity identifiers and tenant markers, the
// EntityKind enumeration shared by the transition validator and the audit
// log, and the StatusGraph type backing every per-entity state machine.
package kernel
