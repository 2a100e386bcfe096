package models

// Collection names the seven top-level lists of the snapshot. The persisted
// layout and the collection-replace contract both key on these names.
type Collection string

const (
	CollectionHouses    Collection = "houses"
	CollectionRooms     Collection = "rooms"
	CollectionTenants   Collection = "tenants"
	CollectionPayments  Collection = "payments"
	CollectionShowings  Collection = "showings"
	CollectionLentItems Collection = "lentItems"
	CollectionLeads     Collection = "leads"
)

// ArchivedLabel is the fallback display name for a dangling tenant
// reference (the tenant was hard-deleted after payments or lent items were
// recorded against it).
const ArchivedLabel = "Archived"

// Snapshot is the whole entity store as one value. Mutations never patch a
// snapshot in place; they produce the next snapshot and replace the old one
// wholesale.
type Snapshot struct {
	Houses    []House    `json:"houses"`
	Rooms     []Room     `json:"rooms"`
	Tenants   []Tenant   `json:"tenants"`
	Payments  []Payment  `json:"payments"`
	Showings  []Showing  `json:"showings"`
	LentItems []LentItem `json:"lentItems"`
	Leads     []Lead     `json:"leads"`
}

// Empty returns a snapshot with all seven collections present and empty.
func Empty() Snapshot {
	return Snapshot{
		Houses:    []House{},
		Rooms:     []Room{},
		Tenants:   []Tenant{},
		Payments:  []Payment{},
		Showings:  []Showing{},
		LentItems: []LentItem{},
		Leads:     []Lead{},
	}
}

// Normalize replaces nil collections and nil nested lists with empty ones,
// so a snapshot loaded from an older or partial blob is always fully
// shaped.
func (s *Snapshot) Normalize() {
	if s.Houses == nil {
		s.Houses = []House{}
	}
	if s.Rooms == nil {
		s.Rooms = []Room{}
	}
	if s.Tenants == nil {
		s.Tenants = []Tenant{}
	}
	if s.Payments == nil {
		s.Payments = []Payment{}
	}
	if s.Showings == nil {
		s.Showings = []Showing{}
	}
	if s.LentItems == nil {
		s.LentItems = []LentItem{}
	}
	if s.Leads == nil {
		s.Leads = []Lead{}
	}
	for i := range s.Houses {
		if s.Houses[i].MaintenanceLog == nil {
			s.Houses[i].MaintenanceLog = []MaintenanceEntry{}
		}
	}
	for i := range s.Payments {
		if s.Payments[i].Purposes == nil {
			s.Payments[i].Purposes = []Purpose{}
		}
	}
}

// Clone returns a deep copy. Nested slices are copied as well, so the
// caller may mutate the clone freely without touching the original.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Houses:    make([]House, len(s.Houses)),
		Rooms:     append([]Room{}, s.Rooms...),
		Tenants:   append([]Tenant{}, s.Tenants...),
		Payments:  make([]Payment, len(s.Payments)),
		Showings:  append([]Showing{}, s.Showings...),
		LentItems: append([]LentItem{}, s.LentItems...),
		Leads:     append([]Lead{}, s.Leads...),
	}
	for i, h := range s.Houses {
		h.MaintenanceLog = append([]MaintenanceEntry{}, h.MaintenanceLog...)
		out.Houses[i] = h
	}
	for i, p := range s.Payments {
		p.Purposes = append([]Purpose{}, p.Purposes...)
		out.Payments[i] = p
	}
	return out
}

// HouseByID looks a house up by identifier. Not-found is an absent
// optional, never an error.
func (s Snapshot) HouseByID(id string) (House, bool) {
	for _, h := range s.Houses {
		if h.ID == id {
			return h, true
		}
	}
	return House{}, false
}

func (s Snapshot) RoomByID(id string) (Room, bool) {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

func (s Snapshot) TenantByID(id string) (Tenant, bool) {
	for _, t := range s.Tenants {
		if t.ID == id {
			return t, true
		}
	}
	return Tenant{}, false
}

func (s Snapshot) LeadByID(id string) (Lead, bool) {
	for _, l := range s.Leads {
		if l.ID == id {
			return l, true
		}
	}
	return Lead{}, false
}

// TenantName resolves a tenant reference to a display name, falling back
// to ArchivedLabel when the record no longer exists.
func (s Snapshot) TenantName(id string) string {
	if t, ok := s.TenantByID(id); ok {
		return t.Name
	}
	return ArchivedLabel
}

// RoomOccupied reports whether any active tenant other than excludeTenantID
// is assigned to the room.
func (s Snapshot) RoomOccupied(roomID, excludeTenantID string) bool {
	for _, t := range s.Tenants {
		if t.IsActive && t.RoomID == roomID && t.ID != excludeTenantID {
			return true
		}
	}
	return false
}

// ActiveTenants returns the tenants currently occupying rooms.
func (s Snapshot) ActiveTenants() []Tenant {
	out := make([]Tenant, 0, len(s.Tenants))
	for _, t := range s.Tenants {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out
}

// HasPurpose reports whether the payment carries the given purpose tag.
func (p Payment) HasPurpose(purpose Purpose) bool {
	for _, tag := range p.Purposes {
		if tag == purpose {
			return true
		}
	}
	return false
}
