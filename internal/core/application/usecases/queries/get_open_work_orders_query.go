package queries

import (
	"errors"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrGetOpenWorkOrdersQueryIsNotConstructed = errors.New(
	"GetOpenWorkOrdersQuery must be created via NewGetOpenWorkOrdersQuery constructor",
)

// GetOpenWorkOrdersQuery retrieves an organization's work orders that are
// still in flight, giving production planning its workload view.
type GetOpenWorkOrdersQuery struct {
	orgID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOpenWorkOrdersQuery creates an open work order query.
func NewGetOpenWorkOrdersQuery(orgID kernel.UUID) (GetOpenWorkOrdersQuery, error) {
	if err := orgID.Validate(); err != nil {
		return GetOpenWorkOrdersQuery{}, err
	}

	return GetOpenWorkOrdersQuery{
		orgID: orgID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenWorkOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenWorkOrdersQueryIsNotConstructed)
}

// OrgID returns the organization being inspected.
func (q GetOpenWorkOrdersQuery) OrgID() kernel.UUID { return q.orgID }

// GetOpenWorkOrdersQueryResponse is one in-flight work order in the read
// model.
type GetOpenWorkOrdersQueryResponse struct {
	ID             kernel.UUID
	OrderItemID    kernel.UUID
	OrderID        kernel.UUID
	ManufacturerID *kernel.UUID
	Status         string
	Priority       int
	Quantity       int
	PlannedStart   *time.Time
	PlannedEnd     *time.Time
	DelayReason    string
}
