package commands

import (
	"context"
	"log/slog"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"
)

// appendEvent builds one audit event and appends it through the caller's
// repository, so the event shares the caller's transaction. A nil actorID
// marks the event as engine-generated.
func appendEvent(
	ctx context.Context,
	repo ports.AuditEventRepository,
	orgID kernel.UUID,
	kind kernel.EntityKind,
	entityID kernel.UUID,
	code audit.Code,
	actorID *kernel.UUID,
	payload audit.Payload,
) error {
	event, err := audit.NewEvent(orgID, kind, entityID, code, actorID, payload)
	if err != nil {
		return err
	}
	return repo.Append(ctx, event)
}

// recordBestEffort writes one audit event in its own short transaction,
// logging and swallowing any failure. Cascades use it for their failure
// events: a broken audit write must not take the cascade's caller down with
// it.
func recordBestEffort(
	ctx context.Context,
	factory UoWFactory,
	logger *slog.Logger,
	orgID kernel.UUID,
	kind kernel.EntityKind,
	entityID kernel.UUID,
	code audit.Code,
	payload audit.Payload,
) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		logger.Error("audit event dropped", "code", code, "entity_id", entityID, "error", err)
		return
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := appendEvent(ctx, uow.AuditEventRepository(), orgID, kind, entityID, code, nil, payload); err != nil {
		logger.Error("audit event dropped", "code", code, "entity_id", entityID, "error", err)
		return
	}
	if err := uow.Commit(ctx); err != nil {
		logger.Error("audit event dropped", "code", code, "entity_id", entityID, "error", err)
	}
}
