// Package storage is the SQLite-backed record store. It owns the schema
// via embedded migrations and implements records.Store with hand-written
// SQL.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/records"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListClients(ctx context.Context) ([]core.Client, error) {
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
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (r *SQLiteRepository) GetClient(ctx context.Context, id int64) (core.Client, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, birth_date, registered_at, notes
		FROM clients
		WHERE id = ?`, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Client{}, records.ErrNotFound
	}
	if err != nil {
		return core.Client{}, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) SaveClient(ctx context.Context, c core.Client) (core.Client, error) {
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}

	var birth sql.NullTime
	if c.BirthDate != nil {
		birth = sql.NullTime{Time: *c.BirthDate, Valid: true}
	}

	if c.ID == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO clients (name, phone, email, birth_date, registered_at, notes)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.Name, c.Phone, c.Email, birth, c.RegisteredAt, c.Notes)
		if err != nil {
			return core.Client{}, fmt.Errorf("insert client: %w", err)
		}
		c.ID, err = res.LastInsertId()
		if err != nil {
			return core.Client{}, fmt.Errorf("insert client id: %w", err)
		}
		return c, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET name = ?, phone = ?, email = ?, birth_date = ?, registered_at = ?, notes = ?
		WHERE id = ?`,
		c.Name, c.Phone, c.Email, birth, c.RegisteredAt, c.Notes, c.ID)
	if err != nil {
		return core.Client{}, fmt.Errorf("update client: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.Client{}, err
	}
	return c, nil
}

func (r *SQLiteRepository) DeleteClient(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "clients", id)
}

func (r *SQLiteRepository) ListEmployees(ctx context.Context) ([]core.Employee, error) {
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

func (r *SQLiteRepository) GetEmployee(ctx context.Context, id int64) (core.Employee, error) {
	var e core.Employee
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, commission_percent, active
		FROM employees
		WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Phone, &e.Email, &e.CommissionPercent, &e.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Employee{}, records.ErrNotFound
	}
	if err != nil {
		return core.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) SaveEmployee(ctx context.Context, e core.Employee) (core.Employee, error) {
	if err := e.Validate(); err != nil {
		return core.Employee{}, err
	}

	if e.ID == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO employees (name, phone, email, commission_percent, active)
			VALUES (?, ?, ?, ?, ?)`,
			e.Name, e.Phone, e.Email, e.CommissionPercent, e.Active)
		if err != nil {
			return core.Employee{}, fmt.Errorf("insert employee: %w", err)
		}
		e.ID, err = res.LastInsertId()
		if err != nil {
			return core.Employee{}, fmt.Errorf("insert employee id: %w", err)
		}
		return e, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE employees
		SET name = ?, phone = ?, email = ?, commission_percent = ?, active = ?
		WHERE id = ?`,
		e.Name, e.Phone, e.Email, e.CommissionPercent, e.Active, e.ID)
	if err != nil {
		return core.Employee{}, fmt.Errorf("update employee: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.Employee{}, err
	}
	return e, nil
}

func (r *SQLiteRepository) DeleteEmployee(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "employees", id)
}

func (r *SQLiteRepository) ListServices(ctx context.Context) ([]core.Service, error) {
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

func (r *SQLiteRepository) GetService(ctx context.Context, id int64) (core.Service, error) {
	var s core.Service
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price_cents, duration_minutes, active
		FROM services
		WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Price.Cents, &s.DurationMinutes, &s.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Service{}, records.ErrNotFound
	}
	if err != nil {
		return core.Service{}, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) SaveService(ctx context.Context, s core.Service) (core.Service, error) {
	if err := s.Validate(); err != nil {
		return core.Service{}, err
	}

	if s.ID == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO services (name, description, price_cents, duration_minutes, active)
			VALUES (?, ?, ?, ?, ?)`,
			s.Name, s.Description, s.Price.Cents, s.DurationMinutes, s.Active)
		if err != nil {
			return core.Service{}, fmt.Errorf("insert service: %w", err)
		}
		s.ID, err = res.LastInsertId()
		if err != nil {
			return core.Service{}, fmt.Errorf("insert service id: %w", err)
		}
		return s, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE services
		SET name = ?, description = ?, price_cents = ?, duration_minutes = ?, active = ?
		WHERE id = ?`,
		s.Name, s.Description, s.Price.Cents, s.DurationMinutes, s.Active, s.ID)
	if err != nil {
		return core.Service{}, fmt.Errorf("update service: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.Service{}, err
	}
	return s, nil
}

func (r *SQLiteRepository) DeleteService(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "services", id)
}

func (r *SQLiteRepository) ListProducts(ctx context.Context) ([]core.Product, error) {
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

func (r *SQLiteRepository) GetProduct(ctx context.Context, id int64) (core.Product, error) {
	var p core.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price_cents, stock, min_stock, active
		FROM products
		WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price.Cents, &p.Stock, &p.MinStock, &p.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Product{}, records.ErrNotFound
	}
	if err != nil {
		return core.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) SaveProduct(ctx context.Context, p core.Product) (core.Product, error) {
	if err := p.Validate(); err != nil {
		return core.Product{}, err
	}

	if p.ID == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO products (name, description, price_cents, stock, min_stock, active)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.Name, p.Description, p.Price.Cents, p.Stock, p.MinStock, p.Active)
		if err != nil {
			return core.Product{}, fmt.Errorf("insert product: %w", err)
		}
		p.ID, err = res.LastInsertId()
		if err != nil {
			return core.Product{}, fmt.Errorf("insert product id: %w", err)
		}
		return p, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price_cents = ?, stock = ?, min_stock = ?, active = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Price.Cents, p.Stock, p.MinStock, p.Active, p.ID)
	if err != nil {
		return core.Product{}, fmt.Errorf("update product: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.Product{}, err
	}
	return p, nil
}

func (r *SQLiteRepository) DeleteProduct(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "products", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (core.Client, error) {
	var c core.Client
	var birth sql.NullTime
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &birth, &c.RegisteredAt, &c.Notes); err != nil {
		return core.Client{}, err
	}
	if birth.Valid {
		t := birth.Time.UTC()
		c.BirthDate = &t
	}
	c.RegisteredAt = c.RegisteredAt.UTC()
	return c, nil
}

func (r *SQLiteRepository) deleteByID(ctx context.Context, table string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

var _ records.Store = (*SQLiteRepository)(nil)
