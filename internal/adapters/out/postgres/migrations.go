package postgres

import (
	"manufacturing/internal/adapters/out/postgres/agentrepo"
	"manufacturing/internal/adapters/out/postgres/auditrepo"
	"manufacturing/internal/adapters/out/postgres/designjobrepo"
	"manufacturing/internal/adapters/out/postgres/fulfillmentrepo"
	"manufacturing/internal/adapters/out/postgres/purchaseorderrepo"
	"manufacturing/internal/adapters/out/postgres/workorderrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the engine's tables, including the unique
// indexes the natural-key rules depend on.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&designjobrepo.DesignJobDTO{},
		&workorderrepo.WorkOrderDTO{},
		&workorderrepo.MaterialRequirementDTO{},
		&purchaseorderrepo.PurchaseOrderDTO{},
		&purchaseorderrepo.PurchaseOrderItemDTO{},
		&fulfillmentrepo.OrderItemDTO{},
		&fulfillmentrepo.MilestoneDTO{},
		&agentrepo.AgentDTO{},
		&auditrepo.AuditEventDTO{},
	)
}
