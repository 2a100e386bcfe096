// Package ledger derives financial and occupancy state from a snapshot of
// the entity store. Everything here is a pure read: the same snapshot and
// parameters always produce the same result, and nothing is mutated.
package ledger

import "proptrack/internal/models"

// MonthlyRent is the total monthly rent for the given terms: base rent
// plus the garage price when a garage is rented.
func MonthlyRent(baseRent float64, hasGarage bool, garagePrice float64) float64 {
	if hasGarage {
		return baseRent + garagePrice
	}
	return baseRent
}

// Recalculate rederives the tenant's MonthlyRent from its rent terms. The
// total is display-only everywhere else; every write path must call this
// so the derived field can never drift from its inputs.
func Recalculate(t *models.Tenant) {
	t.MonthlyRent = MonthlyRent(t.BaseRent, t.HasGarage, t.GaragePrice)
}
