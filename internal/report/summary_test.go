package report

import (
	"testing"
	"time"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
)

func TestBuildDaySummary(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Clients: []core.Client{
			{ID: 1, Name: "A", Phone: "x", RegisteredAt: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)},
			{ID: 2, Name: "B", Phone: "x", RegisteredAt: time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)},
		},
		Products: []core.Product{
			{ID: 1, Name: "Polish", Price: core.Money{Cents: 2000}, Stock: 2, MinStock: 5, Active: true},
			{ID: 2, Name: "Remover", Price: core.Money{Cents: 1000}, Stock: 20, MinStock: 5, Active: true},
		},
		Appointments: []core.Appointment{
			{ID: 1, ClientID: 1, EmployeeID: 1, ServiceID: 1, ScheduledAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), Status: core.StatusConfirmed},
			{ID: 2, ClientID: 1, EmployeeID: 1, ServiceID: 1, ScheduledAt: time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC), Status: core.StatusCancelled},
			{ID: 3, ClientID: 2, EmployeeID: 1, ServiceID: 1, ScheduledAt: time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC), Status: core.StatusScheduled},
		},
		Transactions: []core.Transaction{
			{ID: 1, Kind: core.KindService, ClientID: 1, Amount: core.Money{Cents: 4000}, PaymentMethod: core.PaymentPix, OccurredAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)},
			{ID: 2, Kind: core.KindProduct, ClientID: 2, Amount: core.Money{Cents: 2000}, PaymentMethod: core.PaymentCash, OccurredAt: time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)},
		},
	}

	got := BuildDaySummary(snap, now)
	if got.AppointmentsToday != 1 {
		t.Errorf("AppointmentsToday = %d, want 1 (cancelled and tomorrow excluded)", got.AppointmentsToday)
	}
	if got.RevenueToday.Cents != 4000 {
		t.Errorf("RevenueToday = %d, want 4000", got.RevenueToday.Cents)
	}
	if got.NewClientsToday != 1 {
		t.Errorf("NewClientsToday = %d, want 1", got.NewClientsToday)
	}
	if got.LowStockProducts != 1 {
		t.Errorf("LowStockProducts = %d, want 1", got.LowStockProducts)
	}
}
