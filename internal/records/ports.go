// Package records defines the ports to the record store. Each List method
// returns the complete current snapshot for one entity kind; pagination is
// deliberately unsupported, the reporting engine needs full snapshots.
package records

import (
	"context"
	"errors"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
)

// ErrNotFound is returned when a record id does not exist in the store.
var ErrNotFound = errors.New("record not found")

type (
	ClientStore interface {
		ListClients(ctx context.Context) ([]core.Client, error)
		GetClient(ctx context.Context, id int64) (core.Client, error)
		// SaveClient inserts when id is zero, updates otherwise, and
		// returns the stored record.
		SaveClient(ctx context.Context, c core.Client) (core.Client, error)
		DeleteClient(ctx context.Context, id int64) error
	}

	EmployeeStore interface {
		ListEmployees(ctx context.Context) ([]core.Employee, error)
		GetEmployee(ctx context.Context, id int64) (core.Employee, error)
		SaveEmployee(ctx context.Context, e core.Employee) (core.Employee, error)
		DeleteEmployee(ctx context.Context, id int64) error
	}

	ServiceStore interface {
		ListServices(ctx context.Context) ([]core.Service, error)
		GetService(ctx context.Context, id int64) (core.Service, error)
		SaveService(ctx context.Context, s core.Service) (core.Service, error)
		DeleteService(ctx context.Context, id int64) error
	}

	ProductStore interface {
		ListProducts(ctx context.Context) ([]core.Product, error)
		GetProduct(ctx context.Context, id int64) (core.Product, error)
		SaveProduct(ctx context.Context, p core.Product) (core.Product, error)
		DeleteProduct(ctx context.Context, id int64) error
	}

	AppointmentStore interface {
		ListAppointments(ctx context.Context) ([]core.Appointment, error)
		GetAppointment(ctx context.Context, id int64) (core.Appointment, error)
		SaveAppointment(ctx context.Context, a core.Appointment) (core.Appointment, error)
		DeleteAppointment(ctx context.Context, id int64) error
		// MarkAppointmentReminded flags the appointment so the reminder
		// worker does not publish for it twice.
		MarkAppointmentReminded(ctx context.Context, id int64) error
	}

	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
		SaveTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, id int64) error
	}

	PackageStore interface {
		ListPackages(ctx context.Context) ([]core.Package, error)
		GetPackage(ctx context.Context, id int64) (core.Package, error)
		SavePackage(ctx context.Context, p core.Package) (core.Package, error)
		DeletePackage(ctx context.Context, id int64) error
	}

	UserStore interface {
		ListUsers(ctx context.Context) ([]core.User, error)
		GetUser(ctx context.Context, id int64) (core.User, error)
		GetUserByEmail(ctx context.Context, email string) (core.User, error)
		SaveUser(ctx context.Context, u core.User) (core.User, error)
		DeleteUser(ctx context.Context, id int64) error
	}
)

// Reader is the read-only surface the aggregation engine depends on: the
// six entity snapshots and nothing else.
type Reader interface {
	ListClients(ctx context.Context) ([]core.Client, error)
	ListEmployees(ctx context.Context) ([]core.Employee, error)
	ListServices(ctx context.Context) ([]core.Service, error)
	ListProducts(ctx context.Context) ([]core.Product, error)
	ListAppointments(ctx context.Context) ([]core.Appointment, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
}

// Store is the full record store consumed by the CRUD API.
type Store interface {
	ClientStore
	EmployeeStore
	ServiceStore
	ProductStore
	AppointmentStore
	TransactionStore
	PackageStore
	UserStore
}
