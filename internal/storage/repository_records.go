package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/records"
)

func (r *SQLiteRepository) ListAppointments(ctx context.Context) ([]core.Appointment, error) {
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
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return appointments, nil
}

func (r *SQLiteRepository) GetAppointment(ctx context.Context, id int64) (core.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, employee_id, service_id, scheduled_at, status, notes, reminder_sent
		FROM appointments
		WHERE id = ?`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Appointment{}, records.ErrNotFound
	}
	if err != nil {
		return core.Appointment{}, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) SaveAppointment(ctx context.Context, a core.Appointment) (core.Appointment, error) {
	if err := a.Validate(); err != nil {
		return core.Appointment{}, err
	}

	if a.ID == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO appointments (client_id, employee_id, service_id, scheduled_at, status, notes, reminder_sent)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.ClientID, a.EmployeeID, a.ServiceID, a.ScheduledAt, string(a.Status), a.Notes, a.ReminderSent)
		if err != nil {
			return core.Appointment{}, fmt.Errorf("insert appointment: %w", err)
		}
		a.ID, err = res.LastInsertId()
		if err != nil {
			return core.Appointment{}, fmt.Errorf("insert appointment id: %w", err)
		}
		return a, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET client_id = ?, employee_id = ?, service_id = ?, scheduled_at = ?, status = ?, notes = ?, reminder_sent = ?
		WHERE id = ?`,
		a.ClientID, a.EmployeeID, a.ServiceID, a.ScheduledAt, string(a.Status), a.Notes, a.ReminderSent, a.ID)
	if err != nil {
		return core.Appointment{}, fmt.Errorf("update appointment: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.Appointment{}, err
	}
	return a, nil
}

func (r *SQLiteRepository) DeleteAppointment(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "appointments", id)
}

func (r *SQLiteRepository) MarkAppointmentReminded(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments SET reminder_sent = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark appointment reminded: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
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
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, kind, client_id, employee_id, appointment_id, amount_cents, commission_cents, payment_method, description, occurred_at
		FROM transactions
		WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, records.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) SaveTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	var employeeID, appointmentID sql.NullInt64
	if t.EmployeeID != nil {
		employeeID = sql.NullInt64{Int64: *t.EmployeeID, Valid: true}
	}
	if t.AppointmentID != nil {
		appointmentID = sql.NullInt64{Int64: *t.AppointmentID, Valid: true}
	}

	if t.ID == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO transactions (kind, client_id, employee_id, appointment_id, amount_cents, commission_cents, payment_method, description, occurred_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(t.Kind), t.ClientID, employeeID, appointmentID, t.Amount.Cents, t.Commission.Cents, string(t.PaymentMethod), t.Description, t.OccurredAt)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
		}
		t.ID, err = res.LastInsertId()
		if err != nil {
			return core.Transaction{}, fmt.Errorf("insert transaction id: %w", err)
		}
		return t, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET kind = ?, client_id = ?, employee_id = ?, appointment_id = ?, amount_cents = ?, commission_cents = ?, payment_method = ?, description = ?, occurred_at = ?
		WHERE id = ?`,
		string(t.Kind), t.ClientID, employeeID, appointmentID, t.Amount.Cents, t.Commission.Cents, string(t.PaymentMethod), t.Description, t.OccurredAt, t.ID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "transactions", id)
}

func (r *SQLiteRepository) ListPackages(ctx context.Context) ([]core.Package, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, price_cents, original_price_cents, included_services, validity_days, active
		FROM packages
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var packages []core.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate packages: %w", err)
	}
	return packages, nil
}

func (r *SQLiteRepository) GetPackage(ctx context.Context, id int64) (core.Package, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price_cents, original_price_cents, included_services, validity_days, active
		FROM packages
		WHERE id = ?`, id)
	p, err := scanPackage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Package{}, records.ErrNotFound
	}
	if err != nil {
		return core.Package{}, fmt.Errorf("get package: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) SavePackage(ctx context.Context, p core.Package) (core.Package, error) {
	if err := p.Validate(); err != nil {
		return core.Package{}, err
	}

	if p.ID == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO packages (name, description, price_cents, original_price_cents, included_services, validity_days, active)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Description, p.Price.Cents, p.OriginalPrice.Cents, p.IncludedServices, p.ValidityDays, p.Active)
		if err != nil {
			return core.Package{}, fmt.Errorf("insert package: %w", err)
		}
		p.ID, err = res.LastInsertId()
		if err != nil {
			return core.Package{}, fmt.Errorf("insert package id: %w", err)
		}
		return p, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE packages
		SET name = ?, description = ?, price_cents = ?, original_price_cents = ?, included_services = ?, validity_days = ?, active = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Price.Cents, p.OriginalPrice.Cents, p.IncludedServices, p.ValidityDays, p.Active, p.ID)
	if err != nil {
		return core.Package{}, fmt.Errorf("update package: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.Package{}, err
	}
	return p, nil
}

func (r *SQLiteRepository) DeletePackage(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "packages", id)
}

func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, password_hash, role, active
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Active); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, active
		FROM users
		WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, records.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, active
		FROM users
		WHERE email = ? COLLATE NOCASE`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, records.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) SaveUser(ctx context.Context, u core.User) (core.User, error) {
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}

	if u.ID == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO users (name, email, password_hash, role, active)
			VALUES (?, ?, ?, ?, ?)`,
			u.Name, u.Email, u.PasswordHash, string(u.Role), u.Active)
		if err != nil {
			return core.User{}, fmt.Errorf("insert user: %w", err)
		}
		u.ID, err = res.LastInsertId()
		if err != nil {
			return core.User{}, fmt.Errorf("insert user id: %w", err)
		}
		return u, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, email = ?, password_hash = ?, role = ?, active = ?
		WHERE id = ?`,
		u.Name, u.Email, u.PasswordHash, string(u.Role), u.Active, u.ID)
	if err != nil {
		return core.User{}, fmt.Errorf("update user: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.User{}, err
	}
	return u, nil
}

func (r *SQLiteRepository) DeleteUser(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "users", id)
}

func scanAppointment(row rowScanner) (core.Appointment, error) {
	var a core.Appointment
	var status string
	if err := row.Scan(&a.ID, &a.ClientID, &a.EmployeeID, &a.ServiceID, &a.ScheduledAt, &status, &a.Notes, &a.ReminderSent); err != nil {
		return core.Appointment{}, err
	}
	a.Status = core.AppointmentStatus(status)
	a.ScheduledAt = a.ScheduledAt.UTC()
	return a, nil
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var kind, payment string
	var employeeID, appointmentID sql.NullInt64
	if err := row.Scan(&t.ID, &kind, &t.ClientID, &employeeID, &appointmentID,
		&t.Amount.Cents, &t.Commission.Cents, &payment, &t.Description, &t.OccurredAt); err != nil {
		return core.Transaction{}, err
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
	return t, nil
}

func scanPackage(row rowScanner) (core.Package, error) {
	var p core.Package
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price.Cents, &p.OriginalPrice.Cents, &p.IncludedServices, &p.ValidityDays, &p.Active); err != nil {
		return core.Package{}, err
	}
	return p, nil
}
