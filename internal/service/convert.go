package service

import (
	"fmt"

	"go.uber.org/zap"

	"proptrack/internal/ledger"
	"proptrack/internal/models"
)

// LeaseTerms carries the user-supplied lease form for a lead conversion.
// Empty identity and placement fields default to the lead's own values;
// SecurityDeposit nil defaults to the lead's budget (one month's rent).
type LeaseTerms struct {
	Name            string
	Phone           string
	HouseID         string
	RoomID          string
	MoveInDate      string
	MoveInTime      string
	MoveOutDate     string
	DurationMonths  int
	BaseRent        float64
	HasGarage       bool
	GaragePrice     float64
	SecurityDeposit *float64
	RentDueDate     int
}

// ConvertLead turns a prospect into a tenant: the new tenant is appended
// and the source lead archived in one snapshot replacement, so no
// intermediate state (converted lead without a tenant, or the reverse) is
// ever observable.
func (s *Service) ConvertLead(leadID string, terms LeaseTerms) (models.Tenant, error) {
	var tenant models.Tenant

	err := s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		lead, ok := state.LeadByID(leadID)
		if !ok {
			return state, fmt.Errorf("lead %s: %w", leadID, ErrNotFound)
		}

		tenant = models.Tenant{
			ID:             newID(),
			Name:           terms.Name,
			Phone:          terms.Phone,
			MoveInDate:     terms.MoveInDate,
			MoveInTime:     terms.MoveInTime,
			MoveOutDate:    terms.MoveOutDate,
			DurationMonths: terms.DurationMonths,
			BaseRent:       terms.BaseRent,
			HasGarage:      terms.HasGarage,
			GaragePrice:    terms.GaragePrice,
			RentDueDate:    terms.RentDueDate,
			HouseID:        terms.HouseID,
			RoomID:         terms.RoomID,
			IsActive:       true,
		}
		if tenant.Name == "" {
			tenant.Name = lead.Name
		}
		if tenant.Phone == "" {
			tenant.Phone = lead.Phone
		}
		if tenant.HouseID == "" {
			tenant.HouseID = lead.HouseID
		}
		if tenant.RoomID == "" {
			tenant.RoomID = lead.RoomID
		}
		if tenant.MoveInDate == "" {
			tenant.MoveInDate = lead.TargetMoveIn
		}
		if tenant.DurationMonths == 0 {
			tenant.DurationMonths = 12
		}
		if tenant.RentDueDate == 0 {
			tenant.RentDueDate = 1
		}
		if tenant.BaseRent == 0 {
			tenant.BaseRent = lead.Budget
		}
		if terms.SecurityDeposit != nil {
			tenant.SecurityDeposit = *terms.SecurityDeposit
		} else {
			tenant.SecurityDeposit = lead.Budget
		}
		ledger.Recalculate(&tenant)

		if err := validatePlacement(state, tenant); err != nil {
			return state, err
		}

		state.Tenants = append(state.Tenants, tenant)
		for i := range state.Leads {
			if state.Leads[i].ID == leadID {
				state.Leads[i].IsActive = false
			}
		}
		return state, nil
	})
	if err != nil {
		return models.Tenant{}, err
	}

	s.logger.Info("lead converted",
		zap.String("lead_id", leadID),
		zap.String("tenant_id", tenant.ID),
		zap.Float64("monthly_rent", tenant.MonthlyRent),
	)
	return tenant, nil
}
