// Package service implements the mutation operations on the entity store.
// Every operation validates against the current snapshot, then applies a
// single atomic snapshot replacement; a validation failure leaves the
// store untouched.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"proptrack/internal/ledger"
	"proptrack/internal/models"
	"proptrack/internal/store"
)

var (
	// ErrMissingPlacement means a tenant write lacked a house or room.
	ErrMissingPlacement = errors.New("house and room are required")
	// ErrRoomOccupied means the target room already has an active tenant.
	ErrRoomOccupied = errors.New("room already has an active tenant")
	// ErrNoPurpose means a payment carried no purpose tag.
	ErrNoPurpose = errors.New("payment needs at least one purpose")
	// ErrInvalidAmount means a payment amount was zero or negative.
	ErrInvalidAmount = errors.New("payment amount must be positive")
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
)

// Service orchestrates mutations against the store.
type Service struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// New creates the mutation service.
func New(st *store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger, now: time.Now}
}

func newID() string { return uuid.New().String() }

// ---- Houses ----

// AddHouse registers a property and creates its batch of RoomCount rooms,
// named "Room 1" through "Room N".
func (s *Service) AddHouse(input models.House) (models.House, error) {
	if input.RoomCount < 1 {
		input.RoomCount = 1
	}
	input.ID = newID()
	if input.MaintenanceLog == nil {
		input.MaintenanceLog = []models.MaintenanceEntry{}
	}

	err := s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		state.Houses = append(state.Houses, input)
		for i := 0; i < input.RoomCount; i++ {
			state.Rooms = append(state.Rooms, models.Room{
				ID:      newID(),
				HouseID: input.ID,
				Name:    fmt.Sprintf("Room %d", i+1),
			})
		}
		return state, nil
	})
	if err != nil {
		return models.House{}, err
	}

	s.logger.Info("house added",
		zap.String("house_id", input.ID),
		zap.Int("rooms", input.RoomCount),
	)
	return input, nil
}

// DeleteHouse removes the house and its rooms and archives its tenants in
// one transition. Payment records are preserved.
func (s *Service) DeleteHouse(houseID string) error {
	return s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		if _, ok := state.HouseByID(houseID); !ok {
			return state, fmt.Errorf("house %s: %w", houseID, ErrNotFound)
		}

		houses := state.Houses[:0]
		for _, h := range state.Houses {
			if h.ID != houseID {
				houses = append(houses, h)
			}
		}
		state.Houses = houses

		rooms := state.Rooms[:0]
		for _, r := range state.Rooms {
			if r.HouseID != houseID {
				rooms = append(rooms, r)
			}
		}
		state.Rooms = rooms

		for i := range state.Tenants {
			if state.Tenants[i].HouseID == houseID {
				state.Tenants[i].IsActive = false
			}
		}
		return state, nil
	})
}

// AddMaintenanceNote appends a dated free-text entry to the house's log.
func (s *Service) AddMaintenanceNote(houseID, text string) (models.MaintenanceEntry, error) {
	entry := models.MaintenanceEntry{
		ID:   newID(),
		Text: text,
		Date: s.now().Format("2006-01-02"),
	}
	err := s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		for i := range state.Houses {
			if state.Houses[i].ID == houseID {
				state.Houses[i].MaintenanceLog = append(state.Houses[i].MaintenanceLog, entry)
				return state, nil
			}
		}
		return state, fmt.Errorf("house %s: %w", houseID, ErrNotFound)
	})
	if err != nil {
		return models.MaintenanceEntry{}, err
	}
	return entry, nil
}

// DeleteMaintenanceNote removes one entry from the house's log.
func (s *Service) DeleteMaintenanceNote(houseID, entryID string) error {
	return s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		for i := range state.Houses {
			if state.Houses[i].ID != houseID {
				continue
			}
			log := state.Houses[i].MaintenanceLog[:0]
			for _, e := range state.Houses[i].MaintenanceLog {
				if e.ID != entryID {
					log = append(log, e)
				}
			}
			state.Houses[i].MaintenanceLog = log
			return state, nil
		}
		return state, fmt.Errorf("house %s: %w", houseID, ErrNotFound)
	})
}

// ---- Tenants ----

func validatePlacement(state models.Snapshot, t models.Tenant) error {
	if t.HouseID == "" || t.RoomID == "" {
		return ErrMissingPlacement
	}
	if t.IsActive && state.RoomOccupied(t.RoomID, t.ID) {
		return fmt.Errorf("room %s: %w", t.RoomID, ErrRoomOccupied)
	}
	return nil
}

// AddTenant registers a resident. The monthly rent total is rederived from
// the rent terms, and the target room must be free of other active
// tenants.
func (s *Service) AddTenant(input models.Tenant) (models.Tenant, error) {
	input.ID = newID()
	ledger.Recalculate(&input)

	err := s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		if err := validatePlacement(state, input); err != nil {
			return state, err
		}
		state.Tenants = append(state.Tenants, input)
		return state, nil
	})
	if err != nil {
		return models.Tenant{}, err
	}

	s.logger.Info("tenant added",
		zap.String("tenant_id", input.ID),
		zap.String("room_id", input.RoomID),
	)
	return input, nil
}

// UpdateTenant replaces the tenant record, rederiving the rent total.
func (s *Service) UpdateTenant(input models.Tenant) (models.Tenant, error) {
	ledger.Recalculate(&input)

	err := s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		if err := validatePlacement(state, input); err != nil {
			return state, err
		}
		for i := range state.Tenants {
			if state.Tenants[i].ID == input.ID {
				state.Tenants[i] = input
				return state, nil
			}
		}
		return state, fmt.Errorf("tenant %s: %w", input.ID, ErrNotFound)
	})
	if err != nil {
		return models.Tenant{}, err
	}
	return input, nil
}

// SetTenantActive archives (false) or reactivates (true) a tenant.
// Reactivation re-checks room occupancy.
func (s *Service) SetTenantActive(tenantID string, active bool) error {
	return s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		for i := range state.Tenants {
			if state.Tenants[i].ID != tenantID {
				continue
			}
			if active && state.RoomOccupied(state.Tenants[i].RoomID, tenantID) {
				return state, fmt.Errorf("room %s: %w", state.Tenants[i].RoomID, ErrRoomOccupied)
			}
			state.Tenants[i].IsActive = active
			return state, nil
		}
		return state, fmt.Errorf("tenant %s: %w", tenantID, ErrNotFound)
	})
}

// DeleteTenant hard-deletes the record. Payments and lent items referencing
// it remain and resolve to the archived fallback label.
func (s *Service) DeleteTenant(tenantID string) error {
	return s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		tenants := state.Tenants[:0]
		found := false
		for _, t := range state.Tenants {
			if t.ID == tenantID {
				found = true
				continue
			}
			tenants = append(tenants, t)
		}
		if !found {
			return state, fmt.Errorf("tenant %s: %w", tenantID, ErrNotFound)
		}
		state.Tenants = tenants
		return state, nil
	})
}

// ---- Payments ----

// AddPayment records a ledger entry. The tenant's house is denormalized
// onto the payment at recording time, and the newest entry goes first.
func (s *Service) AddPayment(input models.Payment) (models.Payment, error) {
	if len(input.Purposes) == 0 {
		return models.Payment{}, ErrNoPurpose
	}
	if input.Amount <= 0 {
		return models.Payment{}, ErrInvalidAmount
	}
	input.ID = newID()

	err := s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		t, ok := state.TenantByID(input.TenantID)
		if !ok {
			return state, fmt.Errorf("tenant %s: %w", input.TenantID, ErrNotFound)
		}
		input.HouseID = t.HouseID
		state.Payments = append([]models.Payment{input}, state.Payments...)
		return state, nil
	})
	if err != nil {
		return models.Payment{}, err
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", input.ID),
		zap.String("tenant_id", input.TenantID),
		zap.String("due_month", input.DueMonth),
		zap.Float64("amount", input.Amount),
	)
	return input, nil
}

// DeletePayment hard-deletes a ledger entry.
func (s *Service) DeletePayment(paymentID string) error {
	return s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		payments := state.Payments[:0]
		found := false
		for _, p := range state.Payments {
			if p.ID == paymentID {
				found = true
				continue
			}
			payments = append(payments, p)
		}
		if !found {
			return state, fmt.Errorf("payment %s: %w", paymentID, ErrNotFound)
		}
		state.Payments = payments
		return state, nil
	})
}

// ---- Leads ----

// AddLead registers a prospect in the active pipeline.
func (s *Service) AddLead(input models.Lead) (models.Lead, error) {
	input.ID = newID()
	input.CreatedAt = s.now().Format(time.RFC3339)
	input.IsActive = true

	err := s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		state.Leads = append(state.Leads, input)
		return state, nil
	})
	if err != nil {
		return models.Lead{}, err
	}
	return input, nil
}

// SetLeadActive archives or reactivates a lead. Both directions are valid;
// archiving is reversible.
func (s *Service) SetLeadActive(leadID string, active bool) error {
	return s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		for i := range state.Leads {
			if state.Leads[i].ID == leadID {
				state.Leads[i].IsActive = active
				return state, nil
			}
		}
		return state, fmt.Errorf("lead %s: %w", leadID, ErrNotFound)
	})
}

// DeleteLead hard-deletes the prospect record.
func (s *Service) DeleteLead(leadID string) error {
	return s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		leads := state.Leads[:0]
		found := false
		for _, l := range state.Leads {
			if l.ID == leadID {
				found = true
				continue
			}
			leads = append(leads, l)
		}
		if !found {
			return state, fmt.Errorf("lead %s: %w", leadID, ErrNotFound)
		}
		state.Leads = leads
		return state, nil
	})
}

// ---- Showings ----

func (s *Service) AddShowing(input models.Showing) (models.Showing, error) {
	input.ID = newID()
	input.IsActive = true
	err := s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		state.Showings = append(state.Showings, input)
		return state, nil
	})
	if err != nil {
		return models.Showing{}, err
	}
	return input, nil
}

func (s *Service) SetShowingActive(showingID string, active bool) error {
	return s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		for i := range state.Showings {
			if state.Showings[i].ID == showingID {
				state.Showings[i].IsActive = active
				return state, nil
			}
		}
		return state, fmt.Errorf("showing %s: %w", showingID, ErrNotFound)
	})
}

func (s *Service) DeleteShowing(showingID string) error {
	return s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		showings := state.Showings[:0]
		found := false
		for _, sh := range state.Showings {
			if sh.ID == showingID {
				found = true
				continue
			}
			showings = append(showings, sh)
		}
		if !found {
			return state, fmt.Errorf("showing %s: %w", showingID, ErrNotFound)
		}
		state.Showings = showings
		return state, nil
	})
}

// ---- Lent items ----

// LendItem records a physical asset handed to a tenant.
func (s *Service) LendItem(tenantID, itemName string) (models.LentItem, error) {
	item := models.LentItem{
		ID:       newID(),
		TenantID: tenantID,
		ItemName: itemName,
		LentDate: s.now().Format("2006-01-02"),
	}
	err := s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		if _, ok := state.TenantByID(tenantID); !ok {
			return state, fmt.Errorf("tenant %s: %w", tenantID, ErrNotFound)
		}
		state.LentItems = append(state.LentItems, item)
		return state, nil
	})
	if err != nil {
		return models.LentItem{}, err
	}
	return item, nil
}

// ReturnItem stamps today's date as the return date.
func (s *Service) ReturnItem(itemID string) error {
	today := s.now().Format("2006-01-02")
	return s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		for i := range state.LentItems {
			if state.LentItems[i].ID == itemID {
				state.LentItems[i].ReturnDate = today
				return state, nil
			}
		}
		return state, fmt.Errorf("lent item %s: %w", itemID, ErrNotFound)
	})
}

func (s *Service) DeleteLentItem(itemID string) error {
	return s.store.Update(func(state models.Snapshot) (models.Snapshot, error) {
		items := state.LentItems[:0]
		found := false
		for _, it := range state.LentItems {
			if it.ID == itemID {
				found = true
				continue
			}
			items = append(items, it)
		}
		if !found {
			return state, fmt.Errorf("lent item %s: %w", itemID, ErrNotFound)
		}
		state.LentItems = items
		return state, nil
	})
}

// ResetAll replaces the state with the empty snapshot.
func (s *Service) ResetAll() error {
	return s.store.Update(func(models.Snapshot) (models.Snapshot, error) {
		return models.Empty(), nil
	})
}
