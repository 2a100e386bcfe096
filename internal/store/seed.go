package store

import "proptrack/internal/models"

// Seed returns the demo dataset: one house with three rooms, one active
// tenant and one rent payment covering the move-in month.
func Seed() models.Snapshot {
	return models.Snapshot{
		Houses: []models.House{
			{
				ID:                   "h1",
				Address:              "123 Maple Avenue",
				RoomCount:            3,
				MortgagePayment:      1200,
				Bank:                 "Chase",
				MortgageBalance:      245000,
				PaymentDate:          1,
				InsuranceAmount:      150,
				InsuranceRenewalDate: "2024-12-01",
				MaintenanceLog: []models.MaintenanceEntry{
					{ID: "m1", Text: "Initial house inspection completed", Date: "2023-01-01"},
				},
			},
		},
		Rooms: []models.Room{
			{ID: "r1", HouseID: "h1", Name: "Room A"},
			{ID: "r2", HouseID: "h1", Name: "Room B"},
			{ID: "r3", HouseID: "h1", Name: "Room C"},
		},
		Tenants: []models.Tenant{
			{
				ID:              "t1",
				Name:            "John Doe",
				Phone:           "555-0101",
				MoveInDate:      "2023-01-01",
				DurationMonths:  12,
				MoveOutDate:     "2023-12-31",
				SecurityDeposit: 800,
				BaseRent:        800,
				HasGarage:       false,
				GaragePrice:     0,
				MonthlyRent:     800,
				RentDueDate:     1,
				HouseID:         "h1",
				RoomID:          "r1",
				IsActive:        true,
			},
		},
		Payments: []models.Payment{
			{
				ID:       "p1",
				TenantID: "t1",
				HouseID:  "h1",
				Method:   "Venmo",
				Amount:   800,
				Date:     "2023-01-01",
				DueMonth: "2023-01",
				Purposes: []models.Purpose{models.PurposeRent},
			},
		},
		Showings:  []models.Showing{},
		LentItems: []models.LentItem{},
		Leads:     []models.Lead{},
	}
}
