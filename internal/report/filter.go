// Package report is the reporting and aggregation engine. Everything in it
// is a pure function over an in-memory Snapshot: no I/O, no hidden state,
// identical inputs always produce identical output.
package report

import (
	"time"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
)

// Snapshot is a fully loaded, immutable copy of the six entity collections
// at report-generation time. The engine never mutates it.
type Snapshot struct {
	Clients      []core.Client
	Employees    []core.Employee
	Services     []core.Service
	Products     []core.Product
	Appointments []core.Appointment
	Transactions []core.Transaction
}

// IDSelection is a tagged optional constraint on an id-valued dimension.
// The zero value selects everything, so an untouched filter imposes no
// constraint.
type IDSelection struct {
	id  int64
	set bool
}

// AnyID selects every record regardless of id.
func AnyID() IDSelection { return IDSelection{} }

// ByID constrains the dimension to one id.
func ByID(id int64) IDSelection { return IDSelection{id: id, set: true} }

// Any reports whether the selection is unconstrained.
func (s IDSelection) Any() bool { return !s.set }

// Matches reports whether the given id passes the selection.
func (s IDSelection) Matches(id int64) bool { return !s.set || s.id == id }

// ID returns the selected id and whether one is set.
func (s IDSelection) ID() (int64, bool) { return s.id, s.set }

// PaymentSelection is the tagged optional constraint on payment method.
type PaymentSelection struct {
	method core.PaymentMethod
	set    bool
}

func AnyPayment() PaymentSelection { return PaymentSelection{} }

func ByPayment(m core.PaymentMethod) PaymentSelection {
	return PaymentSelection{method: m, set: true}
}

func (s PaymentSelection) Any() bool { return !s.set }

func (s PaymentSelection) Matches(m core.PaymentMethod) bool {
	return !s.set || s.method == m
}

// DateRange is a date-only interval. A zero Start or End leaves that side
// unbounded. Bounds are expanded to whole days before comparison: Start at
// 00:00:00 and End at the last instant of the day, both inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the instant falls within the expanded range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(dayStart(r.Start)) {
		return false
	}
	if !r.End.IsZero() && t.After(dayEnd(r.End)) {
		return false
	}
	return true
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayEnd(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

// Filters is a user-chosen constraint set: a date range plus five
// categorical dimensions. Zero-valued selections mean "no constraint".
type Filters struct {
	Period   DateRange
	Employee IDSelection
	Client   IDSelection
	Service  IDSelection
	Product  IDSelection
	Payment  PaymentSelection
}

// TransactionPredicate builds a pure predicate over transactions. The
// service and product dimensions resolve the selected catalog id to a name
// once, up front; a selected id that no longer exists in the snapshot
// matches nothing (fail closed).
func (f Filters) TransactionPredicate(services []core.Service, products []core.Product) func(core.Transaction) bool {
	serviceName, serviceFound := resolveServiceName(f.Service, services)
	productName, productFound := resolveProductName(f.Product, products)

	return func(t core.Transaction) bool {
		if !f.Period.Contains(t.OccurredAt) {
			return false
		}
		if !f.Employee.Any() {
			// A transaction with no employee never matches a specific
			// employee selection.
			if t.EmployeeID == nil || !f.Employee.Matches(*t.EmployeeID) {
				return false
			}
		}
		if !f.Client.Matches(t.ClientID) {
			return false
		}
		if !f.Payment.Matches(t.PaymentMethod) {
			return false
		}
		if !f.Service.Any() {
			if !serviceFound || t.Kind != core.KindService || t.Description != serviceName {
				return false
			}
		}
		if !f.Product.Any() {
			if !productFound || t.Kind != core.KindProduct || t.Description != productName {
				return false
			}
		}
		return true
	}
}

// AppointmentPredicate builds a pure predicate over appointments. Only the
// date range and employee dimensions apply; the remaining filter dimensions
// are transaction-only.
func (f Filters) AppointmentPredicate() func(core.Appointment) bool {
	return func(a core.Appointment) bool {
		if !f.Period.Contains(a.ScheduledAt) {
			return false
		}
		return f.Employee.Matches(a.EmployeeID)
	}
}

func resolveServiceName(sel IDSelection, services []core.Service) (string, bool) {
	id, ok := sel.ID()
	if !ok {
		return "", false
	}
	for _, s := range services {
		if s.ID == id {
			return s.Name, true
		}
	}
	return "", false
}

func resolveProductName(sel IDSelection, products []core.Product) (string, bool) {
	id, ok := sel.ID()
	if !ok {
		return "", false
	}
	for _, p := range products {
		if p.ID == id {
			return p.Name, true
		}
	}
	return "", false
}
