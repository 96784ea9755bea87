package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/idempotency"
)

// CreateDesignJobCommandHandler opens design jobs. The handler is the first
// write of an order item's design life cycle; a natural-key constraint on
// (org, order item) plus the create-or-fetch guard make it safe to retry and
// safe to race.
type CreateDesignJobCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateDesignJobCommandHandler creates a handler for design job creation.
func NewCreateDesignJobCommandHandler(uowFactory UoWFactory) CreateDesignJobCommandHandler {
	return CreateDesignJobCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the design job for the command's order item, or returns the
// existing one. The DESIGN_JOB_CREATED event fires only when a row is
// actually inserted, in the same transaction as the insert.
func (h CreateDesignJobCommandHandler) Handle(ctx context.Context, command CreateDesignJobCommand) (*designjob.DesignJob, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	find := func(ctx context.Context) (*designjob.DesignJob, error) {
		uow := h.uowFactory.Create()
		return uow.DesignJobRepository().GetByOrderItemID(ctx, command.OrgID(), command.OrderItemID())
	}

	create := func(ctx context.Context) (*designjob.DesignJob, error) {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		// The order item must exist before a design job can attach to it.
		if _, err := uow.OrderItemRepository().Get(ctx, command.OrgID(), command.OrderItemID()); err != nil {
			return nil, err
		}

		job, err := designjob.NewDesignJob(
			kernel.NewUUID(), command.OrgID(), command.OrderItemID(),
			command.Title(), command.Brief(), command.Priority(),
		)
		if err != nil {
			return nil, err
		}

		if err = uow.DesignJobRepository().Add(ctx, job); err != nil {
			return nil, err
		}

		err = appendEvent(ctx, uow.AuditEventRepository(), command.OrgID(),
			kernel.KindDesignJob, job.ID(), audit.DesignJobCreated, command.ActorID(),
			audit.Payload{
				"order_item_id": command.OrderItemID().String(),
				"title":         command.Title(),
				"priority":      command.Priority(),
			})
		if err != nil {
			return nil, err
		}

		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return job, nil
	}

	job, _, err := idempotency.CreateOrFetch(ctx, find, create)
	return job, err
}
