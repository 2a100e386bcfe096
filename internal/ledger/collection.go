package ledger

import "proptrack/internal/models"

// PaymentStatus classifies how much of a tenant's rent for one month has
// been collected.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPartial PaymentStatus = "partial"
	StatusUnpaid  PaymentStatus = "unpaid"
)

// MonthlySummary is the portfolio rollup for one target month.
//
// TotalRevenue only counts payments whose DueMonth equals the target month.
// The original dashboard had two snapshots that disagreed here (one summed
// every payment to date); month-filtered is the documented policy because
// it keeps the summary a pure function of (snapshot, month).
// CollectionProgress is deliberately unclamped: overpayment legitimately
// pushes it past 100 and only the display layer may cap it.
type MonthlySummary struct {
	Month                string        `json:"month"`
	TotalRevenue         float64       `json:"totalRevenue"`
	TotalExpectedRevenue float64       `json:"totalExpectedRevenue"`
	TotalExpenses        float64       `json:"totalExpenses"`
	NetProfit            float64       `json:"netProfit"`
	CollectionProgress   float64       `json:"collectionProgress"`
	ActiveTenants        int           `json:"activeTenants"`
	Vacancies            []models.Room `json:"vacancies"`
	VacantCount          int           `json:"vacantCount"`
}

// Summarize computes the monthly collection rollup for the target month
// ("YYYY-MM"). Expenses charge each house its mortgage payment plus one
// twelfth of the annual insurance premium.
func Summarize(s models.Snapshot, month string) MonthlySummary {
	sum := MonthlySummary{Month: month}

	for _, p := range s.Payments {
		if p.DueMonth == month {
			sum.TotalRevenue += p.Amount
		}
	}

	for _, t := range s.Tenants {
		if t.IsActive {
			sum.ActiveTenants++
			sum.TotalExpectedRevenue += t.MonthlyRent
		}
	}

	for _, h := range s.Houses {
		sum.TotalExpenses += h.MortgagePayment + h.InsuranceAmount/12
	}

	sum.NetProfit = sum.TotalRevenue - sum.TotalExpenses
	if sum.TotalExpectedRevenue > 0 {
		sum.CollectionProgress = sum.TotalRevenue / sum.TotalExpectedRevenue * 100
	}

	sum.Vacancies = Vacancies(s)
	sum.VacantCount = len(sum.Vacancies)
	return sum
}

// Vacancies returns the rooms no active tenant is assigned to.
func Vacancies(s models.Snapshot) []models.Room {
	occupied := make(map[string]struct{}, len(s.Tenants))
	for _, t := range s.Tenants {
		if t.IsActive {
			occupied[t.RoomID] = struct{}{}
		}
	}

	vacant := []models.Room{}
	for _, r := range s.Rooms {
		if _, ok := occupied[r.ID]; !ok {
			vacant = append(vacant, r)
		}
	}
	return vacant
}

// MonthStatus classifies one tenant's rent collection for one month and
// returns the collected sum. Only payments tagged Rent or First Month Rent
// count toward the tenant's monthly rent.
func MonthStatus(s models.Snapshot, tenantID, month string) (PaymentStatus, float64) {
	var collected float64
	for _, p := range s.Payments {
		if p.TenantID != tenantID || p.DueMonth != month {
			continue
		}
		if p.HasPurpose(models.PurposeRent) || p.HasPurpose(models.PurposeFirstMonth) {
			collected += p.Amount
		}
	}

	t, ok := s.TenantByID(tenantID)
	if !ok {
		if collected > 0 {
			return StatusPaid, collected
		}
		return StatusUnpaid, 0
	}

	switch {
	case collected <= 0:
		return StatusUnpaid, collected
	case collected >= t.MonthlyRent:
		return StatusPaid, collected
	default:
		return StatusPartial, collected
	}
}
