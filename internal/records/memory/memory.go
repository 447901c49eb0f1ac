// Package memory is the in-memory record store used in development and
// tests. Snapshot order is insertion order, which the reporting engine
// relies on for stable tie-breaks.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/records"
)

type Store struct {
	mu sync.Mutex

	clients      []core.Client
	employees    []core.Employee
	services     []core.Service
	products     []core.Product
	appointments []core.Appointment
	transactions []core.Transaction
	packages     []core.Package
	users        []core.User

	nextID int64
}

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) ListClients(_ context.Context) ([]core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Client(nil), s.clients...), nil
}

func (s *Store) GetClient(_ context.Context, id int64) (core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return core.Client{}, records.ErrNotFound
}

func (s *Store) SaveClient(_ context.Context, c core.Client) (core.Client, error) {
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.allocID()
		s.clients = append(s.clients, c)
		return c, nil
	}
	for i := range s.clients {
		if s.clients[i].ID == c.ID {
			s.clients[i] = c
			return c, nil
		}
	}
	return core.Client{}, records.ErrNotFound
}

func (s *Store) DeleteClient(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

func (s *Store) ListEmployees(_ context.Context) ([]core.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Employee(nil), s.employees...), nil
}

func (s *Store) GetEmployee(_ context.Context, id int64) (core.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Employee{}, records.ErrNotFound
}

func (s *Store) SaveEmployee(_ context.Context, e core.Employee) (core.Employee, error) {
	if err := e.Validate(); err != nil {
		return core.Employee{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		e.ID = s.allocID()
		s.employees = append(s.employees, e)
		return e, nil
	}
	for i := range s.employees {
		if s.employees[i].ID == e.ID {
			s.employees[i] = e
			return e, nil
		}
	}
	return core.Employee{}, records.ErrNotFound
}

func (s *Store) DeleteEmployee(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == id {
			s.employees = append(s.employees[:i], s.employees[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

func (s *Store) ListServices(_ context.Context) ([]core.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Service(nil), s.services...), nil
}

func (s *Store) GetService(_ context.Context, id int64) (core.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sv := range s.services {
		if sv.ID == id {
			return sv, nil
		}
	}
	return core.Service{}, records.ErrNotFound
}

func (s *Store) SaveService(_ context.Context, sv core.Service) (core.Service, error) {
	if err := sv.Validate(); err != nil {
		return core.Service{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sv.ID == 0 {
		sv.ID = s.allocID()
		s.services = append(s.services, sv)
		return sv, nil
	}
	for i := range s.services {
		if s.services[i].ID == sv.ID {
			s.services[i] = sv
			return sv, nil
		}
	}
	return core.Service{}, records.ErrNotFound
}

func (s *Store) DeleteService(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.services {
		if s.services[i].ID == id {
			s.services = append(s.services[:i], s.services[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

func (s *Store) ListProducts(_ context.Context) ([]core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Product(nil), s.products...), nil
}

func (s *Store) GetProduct(_ context.Context, id int64) (core.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return core.Product{}, records.ErrNotFound
}

func (s *Store) SaveProduct(_ context.Context, p core.Product) (core.Product, error) {
	if err := p.Validate(); err != nil {
		return core.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.allocID()
		s.products = append(s.products, p)
		return p, nil
	}
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return p, nil
		}
	}
	return core.Product{}, records.ErrNotFound
}

func (s *Store) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

func (s *Store) ListAppointments(_ context.Context) ([]core.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Appointment(nil), s.appointments...), nil
}

func (s *Store) GetAppointment(_ context.Context, id int64) (core.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return core.Appointment{}, records.ErrNotFound
}

func (s *Store) SaveAppointment(_ context.Context, a core.Appointment) (core.Appointment, error) {
	if err := a.Validate(); err != nil {
		return core.Appointment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.allocID()
		s.appointments = append(s.appointments, a)
		return a, nil
	}
	for i := range s.appointments {
		if s.appointments[i].ID == a.ID {
			s.appointments[i] = a
			return a, nil
		}
	}
	return core.Appointment{}, records.ErrNotFound
}

func (s *Store) DeleteAppointment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

func (s *Store) MarkAppointmentReminded(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments[i].ReminderSent = true
			return nil
		}
	}
	return records.ErrNotFound
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...), nil
}

func (s *Store) GetTransaction(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, records.ErrNotFound
}

func (s *Store) SaveTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.allocID()
		s.transactions = append(s.transactions, t)
		return t, nil
	}
	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			s.transactions[i] = t
			return t, nil
		}
	}
	return core.Transaction{}, records.ErrNotFound
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

func (s *Store) ListPackages(_ context.Context) ([]core.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Package(nil), s.packages...), nil
}

func (s *Store) GetPackage(_ context.Context, id int64) (core.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.packages {
		if p.ID == id {
			return p, nil
		}
	}
	return core.Package{}, records.ErrNotFound
}

func (s *Store) SavePackage(_ context.Context, p core.Package) (core.Package, error) {
	if err := p.Validate(); err != nil {
		return core.Package{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.allocID()
		s.packages = append(s.packages, p)
		return p, nil
	}
	for i := range s.packages {
		if s.packages[i].ID == p.ID {
			s.packages[i] = p
			return p, nil
		}
	}
	return core.Package{}, records.ErrNotFound
}

func (s *Store) DeletePackage(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.packages {
		if s.packages[i].ID == id {
			s.packages = append(s.packages[:i], s.packages[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.User(nil), s.users...), nil
}

func (s *Store) GetUser(_ context.Context, id int64) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return core.User{}, records.ErrNotFound
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return core.User{}, records.ErrNotFound
}

func (s *Store) SaveUser(_ context.Context, u core.User) (core.User, error) {
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.allocID()
		s.users = append(s.users, u)
		return u, nil
	}
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return u, nil
		}
	}
	return core.User{}, records.ErrNotFound
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

var _ records.Store = (*Store)(nil)
