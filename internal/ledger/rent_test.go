package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"proptrack/internal/models"
)

func TestMonthlyRent(t *testing.T) {
	assert.Equal(t, 800.0, MonthlyRent(800, false, 150))
	assert.Equal(t, 950.0, MonthlyRent(800, true, 150))
	assert.Equal(t, 0.0, MonthlyRent(0, false, 0))
}

func TestRecalculate_HoldsAfterEveryEdit(t *testing.T) {
	tenant := models.Tenant{BaseRent: 800}

	Recalculate(&tenant)
	assert.Equal(t, 800.0, tenant.MonthlyRent)

	tenant.HasGarage = true
	tenant.GaragePrice = 150
	Recalculate(&tenant)
	assert.Equal(t, 950.0, tenant.MonthlyRent)

	tenant.BaseRent = 900
	Recalculate(&tenant)
	assert.Equal(t, 1050.0, tenant.MonthlyRent)

	// Deselecting the garage drops its price from the total even though
	// the price field keeps its value.
	tenant.HasGarage = false
	Recalculate(&tenant)
	assert.Equal(t, 900.0, tenant.MonthlyRent)
}
