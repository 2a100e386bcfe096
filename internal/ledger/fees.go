package ledger

import "proptrack/internal/models"

// FeeState reports which one-off move-in fees a tenant has settled.
type FeeState struct {
	Holding    bool `json:"holding"`
	Security   bool `json:"security"`
	FirstMonth bool `json:"firstMonth"`
}

// FeeStatus scans the payment collection for the tenant's fee payments.
// First month rent counts as settled either through an explicit
// "First Month Rent" purpose or through a plain "Rent" payment whose due
// month matches the calendar month of the move-in date. A tenant with no
// payments yields the zero FeeState.
func FeeStatus(t models.Tenant, payments []models.Payment) FeeState {
	// Empty when the move-in date has no usable YYYY-MM prefix; an empty
	// prefix matches no due month.
	moveInMonth := MonthPrefix(t.MoveInDate)

	var fees FeeState
	for _, p := range payments {
		if p.TenantID != t.ID {
			continue
		}
		if p.HasPurpose(models.PurposeHoldingFee) {
			fees.Holding = true
		}
		if p.HasPurpose(models.PurposeSecurityDeposit) {
			fees.Security = true
		}
		if p.HasPurpose(models.PurposeFirstMonth) {
			fees.FirstMonth = true
		}
		if moveInMonth != "" && p.DueMonth == moveInMonth && p.HasPurpose(models.PurposeRent) {
			fees.FirstMonth = true
		}
	}
	return fees
}

// MonthPrefix extracts the "YYYY-MM" prefix of a date string, or "" when
// the string is too short or not shaped like a date.
func MonthPrefix(date string) string {
	if len(date) < 7 || date[4] != '-' {
		return ""
	}
	for i, c := range date[:7] {
		if i == 4 {
			continue
		}
		if c < '0' || c > '9' {
			return ""
		}
	}
	return date[:7]
}
