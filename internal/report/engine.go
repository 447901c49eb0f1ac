package report

import (
	"sort"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
)

// TopN is how many rows the ranked breakdowns keep.
const TopN = 5

type (
	// Report is the full set of derived metrics for one filter selection.
	// All monetary fields are integer cents; formatting happens at the
	// presentation boundary.
	Report struct {
		TotalRevenue     core.Money    `json:"totalRevenue"`
		TransactionCount int           `json:"transactionCount"`
		AverageTicket    core.Money    `json:"averageTicket"`
		EmployeeRows     []EmployeeRow `json:"employeeRows"`
		TopClients       []ClientRow   `json:"topClients"`
		TopServices      []ItemRow     `json:"topServices"`
		TopProducts      []ItemRow     `json:"topProducts"`
	}

	EmployeeRow struct {
		Name                  string     `json:"name"`
		Revenue               core.Money `json:"revenue"`
		CompletedAppointments int        `json:"completedAppointmentCount"`
	}

	ClientRow struct {
		Name    string     `json:"name"`
		Revenue core.Money `json:"revenue"`
	}

	ItemRow struct {
		Name      string     `json:"name"`
		Revenue   core.Money `json:"revenue"`
		SaleCount int        `json:"saleCount"`
	}
)

// Build computes the full report from a snapshot and a filter selection.
// Rows with zero revenue are kept; suppressing them is a presentation
// concern, not a data concern.
func Build(snap Snapshot, f Filters) Report {
	txPass := f.TransactionPredicate(snap.Services, snap.Products)
	apptPass := f.AppointmentPredicate()

	var filtered []core.Transaction
	for _, t := range snap.Transactions {
		if txPass(t) {
			filtered = append(filtered, t)
		}
	}

	var total int64
	for _, t := range filtered {
		total += t.Amount.Cents
	}
	count := len(filtered)
	var avg int64
	if count > 0 {
		avg = total / int64(count)
	}

	return Report{
		TotalRevenue:     core.Money{Cents: total},
		TransactionCount: count,
		AverageTicket:    core.Money{Cents: avg},
		EmployeeRows:     employeeRows(snap.Employees, snap.Appointments, filtered, apptPass),
		TopClients:       topClients(snap.Clients, filtered),
		TopServices:      topItems(serviceNames(snap.Services), filtered, core.KindService),
		TopProducts:      topItems(productNames(snap.Products), filtered, core.KindProduct),
	}
}

// employeeRows computes revenue and completed-appointment counts for every
// employee in the snapshot, busiest first. Transactions without an employee
// id contribute to the overall totals but to no row here.
func employeeRows(employees []core.Employee, appointments []core.Appointment, txs []core.Transaction, apptPass func(core.Appointment) bool) []EmployeeRow {
	rows := make([]EmployeeRow, len(employees))
	index := make(map[int64]int, len(employees))
	for i, e := range employees {
		rows[i] = EmployeeRow{Name: e.Name}
		index[e.ID] = i
	}
	for _, t := range txs {
		if t.EmployeeID == nil {
			continue
		}
		if i, ok := index[*t.EmployeeID]; ok {
			rows[i].Revenue.Cents += t.Amount.Cents
		}
	}
	for _, a := range appointments {
		if a.Status != core.StatusCompleted || !apptPass(a) {
			continue
		}
		if i, ok := index[a.EmployeeID]; ok {
			rows[i].CompletedAppointments++
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue.Cents > rows[j].Revenue.Cents
	})
	return rows
}

func topClients(clients []core.Client, txs []core.Transaction) []ClientRow {
	rows := make([]ClientRow, len(clients))
	index := make(map[int64]int, len(clients))
	for i, c := range clients {
		rows[i] = ClientRow{Name: c.Name}
		index[c.ID] = i
	}
	for _, t := range txs {
		if i, ok := index[t.ClientID]; ok {
			rows[i].Revenue.Cents += t.Amount.Cents
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue.Cents > rows[j].Revenue.Cents
	})
	if len(rows) > TopN {
		rows = rows[:TopN]
	}
	return rows
}

// topItems rolls filtered transactions of one kind up onto catalog entries
// by name equality. When two catalog entries share a name, the sale counts
// toward the first entry in snapshot order only — the data model has no
// foreign key to the catalog, so the name join is all there is.
func topItems(names []string, txs []core.Transaction, kind core.TransactionKind) []ItemRow {
	rows := make([]ItemRow, len(names))
	first := make(map[string]int, len(names))
	for i, name := range names {
		rows[i] = ItemRow{Name: name}
		if _, seen := first[name]; !seen {
			first[name] = i
		}
	}
	for _, t := range txs {
		if t.Kind != kind {
			continue
		}
		if i, ok := first[t.Description]; ok {
			rows[i].Revenue.Cents += t.Amount.Cents
			rows[i].SaleCount++
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue.Cents > rows[j].Revenue.Cents
	})
	if len(rows) > TopN {
		rows = rows[:TopN]
	}
	return rows
}

func serviceNames(services []core.Service) []string {
	names := make([]string, len(services))
	for i, s := range services {
		names[i] = s.Name
	}
	return names
}

func productNames(products []core.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}
