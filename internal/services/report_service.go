package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/obrienteixeira/tokyo-manicure/internal/records"
	"github.com/obrienteixeira/tokyo-manicure/internal/report"
)

// ReportService loads entity snapshots and runs the reporting engine.
type ReportService struct {
	reader records.Reader
}

func NewReportService(reader records.Reader) *ReportService {
	return &ReportService{reader: reader}
}

// Snapshot fetches the six entity lists concurrently. Aggregation never
// starts on a partial snapshot: the first fetch error cancels the rest
// and fails the whole call.
func (s *ReportService) Snapshot(ctx context.Context) (report.Snapshot, error) {
	var snap report.Snapshot

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Clients, err = s.reader.ListClients(ctx)
		if err != nil {
			return fmt.Errorf("list clients: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Employees, err = s.reader.ListEmployees(ctx)
		if err != nil {
			return fmt.Errorf("list employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Services, err = s.reader.ListServices(ctx)
		if err != nil {
			return fmt.Errorf("list services: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Products, err = s.reader.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Appointments, err = s.reader.ListAppointments(ctx)
		if err != nil {
			return fmt.Errorf("list appointments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Transactions, err = s.reader.ListTransactions(ctx)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.Snapshot{}, err
	}
	return snap, nil
}

// BuildReport produces the filtered report for the given filters.
func (s *ReportService) BuildReport(ctx context.Context, f report.Filters) (report.Report, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("load snapshot: %w", err)
	}
	return report.Build(snap, f), nil
}

// BuildDaySummary produces the dashboard summary for the given day.
func (s *ReportService) BuildDaySummary(ctx context.Context, now time.Time) (report.DaySummary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return report.DaySummary{}, fmt.Errorf("load snapshot: %w", err)
	}
	return report.BuildDaySummary(snap, now), nil
}
