package jobs

import (
	"context"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
)

// ReconcileInventory recomputes every equipment type's availability from its
// open allocations and patches drifted counters.
func (jr *JobRunner) ReconcileInventory() {
	jr.runWithRecovery("ReconcileInventory", func() {
		ctx := context.Background()

		mismatches, err := jr.services.Inventory.Reconcile(ctx)
		if err != nil {
			logger.Error("Failed to reconcile inventory", "error", err)
			return
		}
		if len(mismatches) == 0 {
			logger.Info("Inventory reconciled, no drift found")
			return
		}
		for _, m := range mismatches {
			logger.Warn("Stock counter corrected",
				"equipment_type_id", m.EquipmentTypeID,
				"name", m.Name,
				"stored_available", m.StoredAvailable,
				"expected_available", m.ExpectedAvailable)
		}
		logger.Info("Inventory reconciled", "rows_corrected", len(mismatches))
	})
}
