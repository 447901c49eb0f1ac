// Package postgres reads snapshots from a Postgres reporting replica.
// It is read-only: writes go through the primary store, this database
// is populated by replication and only serves the reporting queries.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/records"

	_ "github.com/lib/pq"
)

type Reader struct {
	db *sql.DB
}

func NewReader(connStr string) (*Reader, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open reporting database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping reporting database: %w", err)
	}

	return &Reader{db: db}, nil
}

func (r *Reader) Close() error {
	return r.db.Close()
}

func (r *Reader) ListClients(ctx context.Context) ([]core.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, email, birth_date, registered_at, notes
		FROM clients
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []core.Client
	for rows.Next() {
		var c core.Client
		var birth sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &birth, &c.RegisteredAt, &c.Notes); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		if birth.Valid {
			t := birth.Time.UTC()
			c.BirthDate = &t
		}
		c.RegisteredAt = c.RegisteredAt.UTC()
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (r *Reader) ListEmployees(ctx context.Context) ([]core.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, email, commission_percent, active
		FROM employees
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []core.Employee
	for rows.Next() {
		var e core.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone, &e.Email, &e.CommissionPercent, &e.Active); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}

func (r *Reader) ListServices(ctx context.Context) ([]core.Service, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, price_cents, duration_minutes, active
		FROM services
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []core.Service
	for rows.Next() {
		var s core.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price.Cents, &s.DurationMinutes, &s.Active); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}
	return services, nil
}

func (r *Reader) ListProducts(ctx context.Context) ([]core.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, price_cents, stock, min_stock, active
		FROM products
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []core.Product
	for rows.Next() {
		var p core.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price.Cents, &p.Stock, &p.MinStock, &p.Active); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *Reader) ListAppointments(ctx context.Context) ([]core.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_id, employee_id, service_id, scheduled_at, status, notes, reminder_sent
		FROM appointments
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []core.Appointment
	for rows.Next() {
		var a core.Appointment
		var status string
		if err := rows.Scan(&a.ID, &a.ClientID, &a.EmployeeID, &a.ServiceID, &a.ScheduledAt, &status, &a.Notes, &a.ReminderSent); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		a.Status = core.AppointmentStatus(status)
		a.ScheduledAt = a.ScheduledAt.UTC()
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return appointments, nil
}

func (r *Reader) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, client_id, employee_id, appointment_id, amount_cents, commission_cents, payment_method, description, occurred_at
		FROM transactions
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var kind, payment string
		var employeeID, appointmentID sql.NullInt64
		if err := rows.Scan(&t.ID, &kind, &t.ClientID, &employeeID, &appointmentID,
			&t.Amount.Cents, &t.Commission.Cents, &payment, &t.Description, &t.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Kind = core.TransactionKind(kind)
		t.PaymentMethod = core.PaymentMethod(payment)
		if employeeID.Valid {
			v := employeeID.Int64
			t.EmployeeID = &v
		}
		if appointmentID.Valid {
			v := appointmentID.Int64
			t.AppointmentID = &v
		}
		t.OccurredAt = t.OccurredAt.UTC()
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

var _ records.Reader = (*Reader)(nil)
