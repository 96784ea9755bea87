package queries

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenWorkOrdersQueryHandler retrieves work orders in non-terminal
// statuses from the database.
type GetOpenWorkOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenWorkOrdersQueryHandler creates a handler for open work order
// queries.
func NewGetOpenWorkOrdersQueryHandler(db *gorm.DB) GetOpenWorkOrdersQueryHandler {
	return GetOpenWorkOrdersQueryHandler{db: db}
}

// Handle returns the organization's open work orders, most urgent first and
// oldest first within a priority.
func (h GetOpenWorkOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenWorkOrdersQuery,
) ([]GetOpenWorkOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	workOrders := make([]GetOpenWorkOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_item_id,
			order_id,
			manufacturer_id,
			status,
			priority,
			quantity,
			planned_start,
			planned_end,
			delay_reason
		FROM work_orders
		WHERE org_id = ? AND status NOT IN (?, ?, ?)
		ORDER BY priority DESC, created_at, id
	`, query.OrgID().Bytes(),
		workorder.Completed.String(), workorder.Shipped.String(), workorder.Cancelled.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id             uuid.UUID
			orderItemID    uuid.UUID
			orderID        uuid.UUID
			manufacturerID *uuid.UUID
			status         string
			priority       int
			quantity       int
			plannedStart   *time.Time
			plannedEnd     *time.Time
			delayReason    string
		)
		err = rows.Scan(&id, &orderItemID, &orderID, &manufacturerID,
			&status, &priority, &quantity, &plannedStart, &plannedEnd, &delayReason)
		if err != nil {
			return nil, err
		}

		resp := GetOpenWorkOrdersQueryResponse{
			Status:       status,
			Priority:     priority,
			Quantity:     quantity,
			PlannedStart: plannedStart,
			PlannedEnd:   plannedEnd,
			DelayReason:  delayReason,
		}
		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderItemID, err = kernel.UUIDFromBytes(orderItemID[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if manufacturerID != nil {
			parsed, idErr := kernel.UUIDFromBytes(manufacturerID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.ManufacturerID = &parsed
		}

		workOrders = append(workOrders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return workOrders, nil
}
