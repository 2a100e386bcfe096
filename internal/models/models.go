package models

// Purpose is the categorical tag carried by a payment. A payment may carry
// several purposes at once (e.g. first month rent plus security deposit
// settled in one transfer).
type Purpose string

const (
	PurposeRent            Purpose = "Rent"
	PurposeDamages         Purpose = "Damages"
	PurposeHoldingFee      Purpose = "Holding Fee"
	PurposeSecurityDeposit Purpose = "Security Deposit"
	PurposeFirstMonth      Purpose = "First Month Rent"
)

// MaintenanceEntry is one free-text note in a house's maintenance log.
type MaintenanceEntry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Date string `json:"date"`
}

// House is a whole property. InsuranceAmount is the annual premium;
// PaymentDate is the day of month the mortgage is drawn.
type House struct {
	ID                   string             `json:"id"`
	Address              string             `json:"address"`
	RoomCount            int                `json:"roomCount"`
	MortgagePayment      float64            `json:"mortgagePayment"`
	Bank                 string             `json:"bank"`
	MortgageBalance      float64            `json:"mortgageBalance"`
	PaymentDate          int                `json:"paymentDate"`
	InsuranceAmount      float64            `json:"insuranceAmount"`
	InsuranceRenewalDate string             `json:"insuranceRenewalDate"`
	MaintenanceLog       []MaintenanceEntry `json:"maintenanceLog"`
}

// Room is a rentable unit inside exactly one house. Rooms are created in a
// batch when their house is created and removed when it is removed.
type Room struct {
	ID      string `json:"id"`
	HouseID string `json:"houseId"`
	Name    string `json:"name"`
}

// Tenant is a resident, active or archived. MonthlyRent is always derived
// as BaseRent plus the garage price when a garage is rented; it is never
// edited directly.
type Tenant struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Job             string  `json:"job,omitempty"`
	MoveInDate      string  `json:"moveInDate"`
	MoveInTime      string  `json:"moveInTime,omitempty"`
	DurationMonths  int     `json:"durationMonths"`
	MoveOutDate     string  `json:"moveOutDate"`
	SecurityDeposit float64 `json:"securityDeposit"`
	BaseRent        float64 `json:"baseRent"`
	HasGarage       bool    `json:"hasGarage"`
	GaragePrice     float64 `json:"garagePrice"`
	MonthlyRent     float64 `json:"monthlyRent"`
	RentDueDate     int     `json:"rentDueDate"`
	HouseID         string  `json:"houseId"`
	RoomID          string  `json:"roomId"`
	IsActive        bool    `json:"isActive"`
}

// Payment is an immutable ledger entry. DueMonth ("YYYY-MM") is the billing
// period the money is credited against, independent of the date paid.
// HouseID is denormalized from the tenant at recording time so the entry
// survives tenant deletion.
type Payment struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenantId"`
	HouseID      string    `json:"houseId"`
	Method       string    `json:"method"`
	Amount       float64   `json:"amount"`
	Date         string    `json:"date"`
	DueMonth     string    `json:"dueMonth"`
	Purposes     []Purpose `json:"purposes"`
	IsProrated   bool      `json:"isProrated,omitempty"`
	ProratedDays int       `json:"proratedDays,omitempty"`
}

// Lead is a prospect in the pipeline. Converting a lead archives it
// (IsActive=false) but keeps the record for history.
type Lead struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email,omitempty"`
	TargetMoveIn string  `json:"targetMoveIn"`
	Budget       float64 `json:"budget"`
	HouseID      string  `json:"houseId"`
	RoomID       string  `json:"roomId"`
	HasPets      bool    `json:"hasPets"`
	Notes        string  `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	IsActive     bool    `json:"isActive"`
}

// Showing is a scheduled or past property tour.
type Showing struct {
	ID           string  `json:"id"`
	HouseID      string  `json:"houseId"`
	RoomID       string  `json:"roomId"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone,omitempty"`
	Job          string  `json:"job,omitempty"`
	ShowingDate  string  `json:"showingDate"`
	TargetMoveIn string  `json:"targetMoveIn,omitempty"`
	ShowedPrice  float64 `json:"showedPrice"`
	OfferedPrice float64 `json:"offeredPrice"`
	IsActive     bool    `json:"isActive"`
	Notes        string  `json:"notes,omitempty"`
}

// LentItem is a physical asset lent to a tenant. An empty ReturnDate means
// the item is still out.
type LentItem struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenantId"`
	ItemName   string `json:"itemName"`
	LentDate   string `json:"lentDate"`
	ReturnDate string `json:"returnDate,omitempty"`
}
