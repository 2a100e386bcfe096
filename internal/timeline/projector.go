// Package timeline projects dated portfolio events onto a rolling window
// for the dashboard strip: move-ins, lease ends, insurance renewals and
// upcoming rent-due dates, grouped into per-day-per-house markers on a
// normalized 0-100 scale.
package timeline

import (
	"sort"
	"time"

	"proptrack/internal/ledger"
	"proptrack/internal/models"
)

const dateLayout = "2006-01-02"

// EventKind identifies what a projected event is about.
type EventKind string

const (
	EventMoveIn           EventKind = "move-in"
	EventLeaseEnd         EventKind = "lease-end"
	EventInsuranceRenewal EventKind = "insurance-renewal"
	EventRentDue          EventKind = "rent-due"
)

// Marker aggregate statuses. Rent-due groups resolve to paid only when
// every rent-due event in the group is paid; groups without rent-due
// events are informational.
const (
	MarkerPaid   = "paid"
	MarkerUnpaid = "unpaid"
	MarkerInfo   = "info"
)

// Number of upcoming calendar months (from window start) that get a
// rent-due event per active tenant.
const rentDueMonths = 6

// Event is a single dated occurrence for one house, and for rent-due
// events one tenant.
type Event struct {
	Kind     EventKind            `json:"kind"`
	Date     string               `json:"date"`
	HouseID  string               `json:"houseId"`
	TenantID string               `json:"tenantId,omitempty"`
	Label    string               `json:"label"`
	Status   ledger.PaymentStatus `json:"status,omitempty"`
}

// Marker is the rendered unit: all events sharing a (date, house) pair,
// with an aggregate status, a 0-100 horizontal position and a density
// scale factor.
type Marker struct {
	Date     string  `json:"date"`
	HouseID  string  `json:"houseId"`
	Events   []Event `json:"events"`
	Status   string  `json:"status"`
	Position float64 `json:"position"`
	Scale    float64 `json:"scale"`
}

// Timeline is the projected window.
type Timeline struct {
	WindowStart   time.Time `json:"windowStart"`
	WindowEnd     time.Time `json:"windowEnd"`
	Markers       []Marker  `json:"markers"`
	TodayPosition *float64  `json:"todayPosition,omitempty"`
}

// Options control the projection window. Zero values fall back to the
// defaults: a window from 7 days back to 90 days ahead of now, shifted by
// MonthOffset whole months.
type Options struct {
	Now         time.Time
	MonthOffset int
	PastDays    int
	FutureDays  int
}

// Project derives the timeline for the window. Pure read; unparseable
// entity dates are skipped rather than reported.
func Project(s models.Snapshot, opts Options) Timeline {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	pastDays := opts.PastDays
	if pastDays <= 0 {
		pastDays = 7
	}
	futureDays := opts.FutureDays
	if futureDays <= 0 {
		futureDays = 90
	}

	anchor := now.AddDate(0, opts.MonthOffset, 0)
	start := anchor.AddDate(0, 0, -pastDays)
	end := anchor.AddDate(0, 0, futureDays)

	events := collectEvents(s, start, end)

	tl := Timeline{WindowStart: start, WindowEnd: end}
	tl.Markers = groupMarkers(events, start, end)
	if !now.Before(start) && !now.After(end) {
		pos := position(now, start, end)
		tl.TodayPosition = &pos
	}
	return tl
}

func collectEvents(s models.Snapshot, start, end time.Time) []Event {
	var events []Event

	add := func(e Event) {
		d, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			return
		}
		if d.Before(start) || d.After(end) {
			return
		}
		events = append(events, e)
	}

	for _, t := range s.ActiveTenants() {
		add(Event{
			Kind:     EventMoveIn,
			Date:     t.MoveInDate,
			HouseID:  t.HouseID,
			TenantID: t.ID,
			Label:    t.Name + " moves in",
		})
		if t.MoveOutDate != "" {
			add(Event{
				Kind:     EventLeaseEnd,
				Date:     t.MoveOutDate,
				HouseID:  t.HouseID,
				TenantID: t.ID,
				Label:    t.Name + " lease ends",
			})
		}
	}

	for _, h := range s.Houses {
		if h.InsuranceRenewalDate != "" {
			add(Event{
				Kind:    EventInsuranceRenewal,
				Date:    h.InsuranceRenewalDate,
				HouseID: h.ID,
				Label:   "Insurance renewal",
			})
		}
	}

	// Rent-due dates for the next rentDueMonths calendar months from the
	// window start, one per active tenant, with the collection status of
	// that tenant-month.
	for _, t := range s.ActiveTenants() {
		for i := 0; i < rentDueMonths; i++ {
			due := dueDate(start, i, t.RentDueDate)
			status, _ := ledger.MonthStatus(s, t.ID, due.Format("2006-01"))
			add(Event{
				Kind:     EventRentDue,
				Date:     due.Format(dateLayout),
				HouseID:  t.HouseID,
				TenantID: t.ID,
				Label:    t.Name + " rent due",
				Status:   status,
			})
		}
	}

	return events
}

// dueDate places day-of-month dueDay in the i-th calendar month after
// start, clamping to the last day of short months.
func dueDate(start time.Time, i, dueDay int) time.Time {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
	if dueDay < 1 {
		dueDay = 1
	}
	lastDay := first.AddDate(0, 1, -1).Day()
	if dueDay > lastDay {
		dueDay = lastDay
	}
	return time.Date(first.Year(), first.Month(), dueDay, 0, 0, 0, 0, time.UTC)
}

func groupMarkers(events []Event, start, end time.Time) []Marker {
	type key struct {
		date    string
		houseID string
	}
	grouped := map[key][]Event{}
	for _, e := range events {
		k := key{e.Date, e.HouseID}
		grouped[k] = append(grouped[k], e)
	}

	scale := densityScale(len(events))
	markers := make([]Marker, 0, len(grouped))
	for k, evs := range grouped {
		d, _ := time.Parse(dateLayout, k.date)
		markers = append(markers, Marker{
			Date:     k.date,
			HouseID:  k.houseID,
			Events:   evs,
			Status:   markerStatus(evs),
			Position: position(d, start, end),
			Scale:    scale,
		})
	}

	sort.Slice(markers, func(i, j int) bool {
		if markers[i].Date != markers[j].Date {
			return markers[i].Date < markers[j].Date
		}
		return markers[i].HouseID < markers[j].HouseID
	})
	return markers
}

func markerStatus(events []Event) string {
	rentDue := 0
	paid := 0
	for _, e := range events {
		if e.Kind != EventRentDue {
			continue
		}
		rentDue++
		if e.Status == ledger.StatusPaid {
			paid++
		}
	}
	if rentDue == 0 {
		return MarkerInfo
	}
	if paid == rentDue {
		return MarkerPaid
	}
	return MarkerUnpaid
}

// position maps a date to the 0-100 horizontal scale, proportional to the
// elapsed share of the window.
func position(d, start, end time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 0
	}
	return float64(d.Sub(start)) / float64(total) * 100
}

// densityScale shrinks markers as the window gets crowded: the baseline
// size drops proportionally to the event count, with a floor at 60% of
// baseline.
func densityScale(eventCount int) float64 {
	scale := 1 - float64(eventCount)/50
	if scale < 0.6 {
		return 0.6
	}
	return scale
}
