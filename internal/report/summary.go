package report

import (
	"time"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
)

// DaySummary is the at-a-glance dashboard block for a single day.
type DaySummary struct {
	AppointmentsToday int        `json:"appointmentsToday"`
	RevenueToday      core.Money `json:"revenueToday"`
	NewClientsToday   int        `json:"newClientsToday"`
	LowStockProducts  int        `json:"lowStockProducts"`
}

// BuildDaySummary computes the dashboard numbers for the day containing now.
// Like Build it is pure: same snapshot and instant, same output.
func BuildDaySummary(snap Snapshot, now time.Time) DaySummary {
	day := DateRange{Start: now, End: now}

	var s DaySummary
	for _, a := range snap.Appointments {
		if day.Contains(a.ScheduledAt) && a.Status != core.StatusCancelled {
			s.AppointmentsToday++
		}
	}
	for _, t := range snap.Transactions {
		if day.Contains(t.OccurredAt) {
			s.RevenueToday.Cents += t.Amount.Cents
		}
	}
	for _, c := range snap.Clients {
		if day.Contains(c.RegisteredAt) {
			s.NewClientsToday++
		}
	}
	for _, p := range snap.Products {
		if p.Stock <= p.MinStock {
			s.LowStockProducts++
		}
	}
	return s
}
