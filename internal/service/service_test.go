package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"proptrack/internal/models"
	"proptrack/internal/store"
)

func newService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New(zap.NewNop())
	svc := New(st, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, st
}

func addHouse(t *testing.T, svc *Service, roomCount int) models.House {
	t.Helper()
	h, err := svc.AddHouse(models.House{Address: "123 Maple Avenue", RoomCount: roomCount})
	require.NoError(t, err)
	return h
}

func addTenant(t *testing.T, svc *Service, st *store.Store, roomIdx int) models.Tenant {
	t.Helper()
	snap := st.Snapshot()
	require.Greater(t, len(snap.Rooms), roomIdx)
	tenant, err := svc.AddTenant(models.Tenant{
		Name:        "John Doe",
		Phone:       "555-0101",
		MoveInDate:  "2024-03-01",
		BaseRent:    800,
		RentDueDate: 1,
		HouseID:     snap.Rooms[roomIdx].HouseID,
		RoomID:      snap.Rooms[roomIdx].ID,
		IsActive:    true,
	})
	require.NoError(t, err)
	return tenant
}

func TestAddHouse_CreatesRoomBatch(t *testing.T) {
	svc, st := newService(t)
	h := addHouse(t, svc, 3)

	snap := st.Snapshot()
	require.Len(t, snap.Rooms, 3)
	names := []string{snap.Rooms[0].Name, snap.Rooms[1].Name, snap.Rooms[2].Name}
	assert.Equal(t, []string{"Room 1", "Room 2", "Room 3"}, names)
	for _, r := range snap.Rooms {
		assert.Equal(t, h.ID, r.HouseID)
	}
}

func TestAddHouse_ZeroRoomCountGetsOneRoom(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 0)
	assert.Len(t, st.Snapshot().Rooms, 1)
}

func TestDeleteHouse_CascadesRoomsAndArchivesTenants(t *testing.T) {
	svc, st := newService(t)
	h := addHouse(t, svc, 2)
	tenant := addTenant(t, svc, st, 0)

	_, err := svc.AddPayment(models.Payment{
		TenantID: tenant.ID,
		Amount:   800,
		DueMonth: "2024-03",
		Purposes: []models.Purpose{models.PurposeRent},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHouse(h.ID))

	snap := st.Snapshot()
	assert.Empty(t, snap.Houses)
	assert.Empty(t, snap.Rooms)
	require.Len(t, snap.Tenants, 1)
	assert.False(t, snap.Tenants[0].IsActive)
	assert.Len(t, snap.Payments, 1)
}

func TestDeleteHouse_Unknown(t *testing.T) {
	svc, _ := newService(t)
	assert.ErrorIs(t, svc.DeleteHouse("nope"), ErrNotFound)
}

func TestMaintenanceNotes(t *testing.T) {
	svc, st := newService(t)
	h := addHouse(t, svc, 1)

	entry, err := svc.AddMaintenanceNote(h.ID, "Furnace filter replaced")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", entry.Date)

	snap := st.Snapshot()
	require.Len(t, snap.Houses[0].MaintenanceLog, 1)
	assert.Equal(t, "Furnace filter replaced", snap.Houses[0].MaintenanceLog[0].Text)

	require.NoError(t, svc.DeleteMaintenanceNote(h.ID, entry.ID))
	assert.Empty(t, st.Snapshot().Houses[0].MaintenanceLog)
}

func TestAddTenant_DerivesMonthlyRent(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 1)
	snap := st.Snapshot()

	tenant, err := svc.AddTenant(models.Tenant{
		Name:        "Jane Roe",
		BaseRent:    800,
		HasGarage:   true,
		GaragePrice: 100,
		MonthlyRent: 5, // stale input value is ignored
		HouseID:     snap.Rooms[0].HouseID,
		RoomID:      snap.Rooms[0].ID,
		IsActive:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, 900.0, tenant.MonthlyRent)
}

func TestAddTenant_RequiresPlacement(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.AddTenant(models.Tenant{Name: "Jane Roe", BaseRent: 800})
	assert.ErrorIs(t, err, ErrMissingPlacement)
}

func TestAddTenant_RejectsOccupiedRoom(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 1)
	addTenant(t, svc, st, 0)

	snap := st.Snapshot()
	_, err := svc.AddTenant(models.Tenant{
		Name:     "Jane Roe",
		BaseRent: 700,
		HouseID:  snap.Rooms[0].HouseID,
		RoomID:   snap.Rooms[0].ID,
		IsActive: true,
	})
	assert.ErrorIs(t, err, ErrRoomOccupied)
	assert.Len(t, st.Snapshot().Tenants, 1)
}

func TestUpdateTenant_RederivesRent(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 1)
	tenant := addTenant(t, svc, st, 0)

	tenant.HasGarage = true
	tenant.GaragePrice = 150
	updated, err := svc.UpdateTenant(tenant)
	require.NoError(t, err)
	assert.Equal(t, 950.0, updated.MonthlyRent)
	assert.Equal(t, 950.0, st.Snapshot().Tenants[0].MonthlyRent)
}

func TestSetTenantActive_ReactivationChecksOccupancy(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 1)
	first := addTenant(t, svc, st, 0)

	require.NoError(t, svc.SetTenantActive(first.ID, false))

	snap := st.Snapshot()
	second, err := svc.AddTenant(models.Tenant{
		Name:     "Jane Roe",
		BaseRent: 700,
		HouseID:  snap.Rooms[0].HouseID,
		RoomID:   snap.Rooms[0].ID,
		IsActive: true,
	})
	require.NoError(t, err)

	err = svc.SetTenantActive(first.ID, true)
	assert.ErrorIs(t, err, ErrRoomOccupied)

	require.NoError(t, svc.SetTenantActive(second.ID, false))
	require.NoError(t, svc.SetTenantActive(first.ID, true))
}

func TestDeleteTenant_PreservesPaymentsWithArchivedLabel(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 1)
	tenant := addTenant(t, svc, st, 0)

	_, err := svc.AddPayment(models.Payment{
		TenantID: tenant.ID,
		Amount:   800,
		DueMonth: "2024-03",
		Purposes: []models.Purpose{models.PurposeRent},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTenant(tenant.ID))

	snap := st.Snapshot()
	assert.Empty(t, snap.Tenants)
	require.Len(t, snap.Payments, 1)
	assert.Equal(t, models.ArchivedLabel, snap.TenantName(snap.Payments[0].TenantID))
}

func TestAddPayment_Validation(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 1)
	tenant := addTenant(t, svc, st, 0)

	_, err := svc.AddPayment(models.Payment{TenantID: tenant.ID, Amount: 800})
	assert.ErrorIs(t, err, ErrNoPurpose)

	_, err = svc.AddPayment(models.Payment{
		TenantID: tenant.ID,
		Amount:   0,
		Purposes: []models.Purpose{models.PurposeRent},
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.AddPayment(models.Payment{
		TenantID: "ghost",
		Amount:   800,
		Purposes: []models.Purpose{models.PurposeRent},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddPayment_DenormalizesHouseAndPrepends(t *testing.T) {
	svc, st := newService(t)
	h := addHouse(t, svc, 1)
	tenant := addTenant(t, svc, st, 0)

	older, err := svc.AddPayment(models.Payment{
		TenantID: tenant.ID,
		Amount:   800,
		DueMonth: "2024-02",
		Purposes: []models.Purpose{models.PurposeRent},
	})
	require.NoError(t, err)
	assert.Equal(t, h.ID, older.HouseID)

	newer, err := svc.AddPayment(models.Payment{
		TenantID: tenant.ID,
		Amount:   800,
		DueMonth: "2024-03",
		Purposes: []models.Purpose{models.PurposeRent},
	})
	require.NoError(t, err)

	snap := st.Snapshot()
	require.Len(t, snap.Payments, 2)
	assert.Equal(t, newer.ID, snap.Payments[0].ID)
	assert.Equal(t, older.ID, snap.Payments[1].ID)
}

func TestLeadLifecycle(t *testing.T) {
	svc, st := newService(t)

	lead, err := svc.AddLead(models.Lead{Name: "Jane Roe", Phone: "555-0102", Budget: 750})
	require.NoError(t, err)
	assert.True(t, lead.IsActive)
	assert.Equal(t, "2024-03-15T12:00:00Z", lead.CreatedAt)

	require.NoError(t, svc.SetLeadActive(lead.ID, false))
	assert.False(t, st.Snapshot().Leads[0].IsActive)
	require.NoError(t, svc.SetLeadActive(lead.ID, true))
	assert.True(t, st.Snapshot().Leads[0].IsActive)

	require.NoError(t, svc.DeleteLead(lead.ID))
	assert.Empty(t, st.Snapshot().Leads)
}

func TestShowingLifecycle(t *testing.T) {
	svc, st := newService(t)

	sh, err := svc.AddShowing(models.Showing{Name: "Jane Roe", ShowingDate: "2024-03-20"})
	require.NoError(t, err)
	assert.True(t, sh.IsActive)

	require.NoError(t, svc.SetShowingActive(sh.ID, false))
	assert.False(t, st.Snapshot().Showings[0].IsActive)

	require.NoError(t, svc.DeleteShowing(sh.ID))
	assert.Empty(t, st.Snapshot().Showings)
}

func TestLendAndReturnItem(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 1)
	tenant := addTenant(t, svc, st, 0)

	item, err := svc.LendItem(tenant.ID, "Space heater")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", item.LentDate)
	assert.Empty(t, item.ReturnDate)

	require.NoError(t, svc.ReturnItem(item.ID))
	assert.Equal(t, "2024-03-15", st.Snapshot().LentItems[0].ReturnDate)

	require.NoError(t, svc.DeleteLentItem(item.ID))
	assert.Empty(t, st.Snapshot().LentItems)

	_, err = svc.LendItem("ghost", "Ladder")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConvertLead_DefaultsFromLead(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 2)
	snap := st.Snapshot()

	lead, err := svc.AddLead(models.Lead{
		Name:         "Jane Roe",
		Phone:        "555-0102",
		TargetMoveIn: "2024-04-01",
		Budget:       750,
		HouseID:      snap.Rooms[0].HouseID,
		RoomID:       snap.Rooms[0].ID,
	})
	require.NoError(t, err)

	tenant, err := svc.ConvertLead(lead.ID, LeaseTerms{})
	require.NoError(t, err)

	assert.Equal(t, "Jane Roe", tenant.Name)
	assert.Equal(t, "555-0102", tenant.Phone)
	assert.Equal(t, "2024-04-01", tenant.MoveInDate)
	assert.Equal(t, 12, tenant.DurationMonths)
	assert.Equal(t, 1, tenant.RentDueDate)
	assert.Equal(t, 750.0, tenant.BaseRent)
	assert.Equal(t, 750.0, tenant.MonthlyRent)
	assert.Equal(t, 750.0, tenant.SecurityDeposit)
	assert.True(t, tenant.IsActive)

	state := st.Snapshot()
	require.Len(t, state.Tenants, 1)
	require.Len(t, state.Leads, 1)
	assert.False(t, state.Leads[0].IsActive)
}

func TestConvertLead_ExplicitTermsWin(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 2)
	snap := st.Snapshot()

	lead, err := svc.AddLead(models.Lead{
		Name:    "Jane Roe",
		Budget:  750,
		HouseID: snap.Rooms[0].HouseID,
		RoomID:  snap.Rooms[0].ID,
	})
	require.NoError(t, err)

	deposit := 500.0
	tenant, err := svc.ConvertLead(lead.ID, LeaseTerms{
		BaseRent:        820,
		HasGarage:       true,
		GaragePrice:     80,
		SecurityDeposit: &deposit,
		RoomID:          snap.Rooms[1].ID,
		HouseID:         snap.Rooms[1].HouseID,
		MoveInDate:      "2024-05-01",
	})
	require.NoError(t, err)

	assert.Equal(t, 820.0, tenant.BaseRent)
	assert.Equal(t, 900.0, tenant.MonthlyRent)
	assert.Equal(t, 500.0, tenant.SecurityDeposit)
	assert.Equal(t, snap.Rooms[1].ID, tenant.RoomID)
	assert.Equal(t, "2024-05-01", tenant.MoveInDate)
}

func TestConvertLead_OccupiedRoomRollsBackAtomically(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 1)
	addTenant(t, svc, st, 0)

	snap := st.Snapshot()
	lead, err := svc.AddLead(models.Lead{
		Name:    "Jane Roe",
		Budget:  750,
		HouseID: snap.Rooms[0].HouseID,
		RoomID:  snap.Rooms[0].ID,
	})
	require.NoError(t, err)

	_, err = svc.ConvertLead(lead.ID, LeaseTerms{})
	assert.ErrorIs(t, err, ErrRoomOccupied)

	state := st.Snapshot()
	assert.Len(t, state.Tenants, 1)
	assert.True(t, state.Leads[0].IsActive)
}

func TestConvertLead_UnknownLead(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.ConvertLead("ghost", LeaseTerms{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetAll(t *testing.T) {
	svc, st := newService(t)
	addHouse(t, svc, 2)
	addTenant(t, svc, st, 0)

	require.NoError(t, svc.ResetAll())
	assert.Equal(t, models.Empty(), st.Snapshot())
}
