package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/report"
)

type stubReader struct {
	clients      []core.Client
	employees    []core.Employee
	services     []core.Service
	products     []core.Product
	appointments []core.Appointment
	transactions []core.Transaction

	transactionsErr error
}

func (r *stubReader) ListClients(context.Context) ([]core.Client, error) {
	return r.clients, nil
}

func (r *stubReader) ListEmployees(context.Context) ([]core.Employee, error) {
	return r.employees, nil
}

func (r *stubReader) ListServices(context.Context) ([]core.Service, error) {
	return r.services, nil
}

func (r *stubReader) ListProducts(context.Context) ([]core.Product, error) {
	return r.products, nil
}

func (r *stubReader) ListAppointments(context.Context) ([]core.Appointment, error) {
	return r.appointments, nil
}

func (r *stubReader) ListTransactions(context.Context) ([]core.Transaction, error) {
	if r.transactionsErr != nil {
		return nil, r.transactionsErr
	}
	return r.transactions, nil
}

func TestReportService_BuildReport(t *testing.T) {
	reader := &stubReader{
		employees: []core.Employee{
			{ID: 1, Name: "Carla", Active: true},
		},
		services: []core.Service{
			{ID: 1, Name: "Manicure", Price: core.Money{Cents: 5000}, Active: true},
		},
		clients: []core.Client{
			{ID: 1, Name: "Ana", Phone: "11 99999-0001", RegisteredAt: time.Now()},
		},
		transactions: []core.Transaction{
			{
				ID:            1,
				Kind:          core.KindService,
				ClientID:      1,
				EmployeeID:    int64ptr(1),
				Amount:        core.Money{Cents: 5000},
				PaymentMethod: core.PaymentPix,
				Description:   "Manicure",
				OccurredAt:    time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
			},
		},
	}

	svc := NewReportService(reader)
	got, err := svc.BuildReport(context.Background(), report.Filters{})
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	if got.TotalRevenue.Cents != 5000 {
		t.Errorf("TotalRevenue = %d, want 5000", got.TotalRevenue.Cents)
	}
	if got.TransactionCount != 1 {
		t.Errorf("TransactionCount = %d, want 1", got.TransactionCount)
	}
}

func TestReportService_SnapshotFailsClosed(t *testing.T) {
	boom := errors.New("replica gone")
	reader := &stubReader{transactionsErr: boom}

	svc := NewReportService(reader)
	_, err := svc.Snapshot(context.Background())
	if err == nil {
		t.Fatal("Snapshot() should fail when any fetch fails")
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}

	if _, err := svc.BuildReport(context.Background(), report.Filters{}); err == nil {
		t.Error("BuildReport() should not aggregate a partial snapshot")
	}
}

func TestReportService_BuildDaySummary(t *testing.T) {
	today := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	reader := &stubReader{
		appointments: []core.Appointment{
			{ID: 1, ClientID: 1, EmployeeID: 1, ServiceID: 1, ScheduledAt: today.Add(2 * time.Hour), Status: core.StatusScheduled},
			{ID: 2, ClientID: 1, EmployeeID: 1, ServiceID: 1, ScheduledAt: today.Add(48 * time.Hour), Status: core.StatusScheduled},
		},
		transactions: []core.Transaction{
			{ID: 1, Kind: core.KindService, ClientID: 1, Amount: core.Money{Cents: 5000}, PaymentMethod: core.PaymentCash, OccurredAt: today},
		},
	}

	svc := NewReportService(reader)
	got, err := svc.BuildDaySummary(context.Background(), today)
	if err != nil {
		t.Fatalf("BuildDaySummary: %v", err)
	}

	if got.AppointmentsToday != 1 {
		t.Errorf("AppointmentsToday = %d, want 1", got.AppointmentsToday)
	}
	if got.RevenueToday.Cents != 5000 {
		t.Errorf("RevenueToday = %d, want 5000", got.RevenueToday.Cents)
	}
}

func int64ptr(v int64) *int64 {
	return &v
}
