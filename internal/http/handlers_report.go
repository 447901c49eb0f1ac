package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/report"
)

// ReportResponse is the presentation view of a report: raw cents plus
// BRL strings, with zero-revenue rows suppressed. The engine keeps
// zero rows; dropping them is a display decision made here.
type ReportResponse struct {
	TotalRevenue     core.Money        `json:"totalRevenue"`
	TotalRevenueBRL  string            `json:"totalRevenueBRL"`
	TransactionCount int               `json:"transactionCount"`
	AverageTicket    core.Money        `json:"averageTicket"`
	AverageTicketBRL string            `json:"averageTicketBRL"`
	EmployeeRows     []EmployeeRowView `json:"employeeRows"`
	TopClients       []RankedRowView   `json:"topClients"`
	TopServices      []RankedRowView   `json:"topServices"`
	TopProducts      []RankedRowView   `json:"topProducts"`
}

type EmployeeRowView struct {
	Name                  string     `json:"name"`
	Revenue               core.Money `json:"revenue"`
	RevenueBRL            string     `json:"revenueBRL"`
	CompletedAppointments int        `json:"completedAppointmentCount"`
}

type RankedRowView struct {
	Name       string     `json:"name"`
	Revenue    core.Money `json:"revenue"`
	RevenueBRL string     `json:"revenueBRL"`
	SaleCount  int        `json:"saleCount,omitempty"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	filters, err := parseReportFilters(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cacheKey := r.URL.Query().Encode()
	if cached, ok := s.reportCache.Get(cacheKey); ok {
		w.Header().Set("X-Cache", "hit")
		respondJSON(w, http.StatusOK, cached)
		return
	}

	rep, err := s.reports.BuildReport(r.Context(), filters)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	resp := presentReport(rep)
	s.reportCache.Set(cacheKey, resp)
	respondJSON(w, http.StatusOK, resp)
}

// parseReportFilters decodes the filter query parameters. Dimension
// params accept "all" or absence for no constraint; date params are
// YYYY-MM-DD and expand to whole days.
func parseReportFilters(r *http.Request) (report.Filters, error) {
	q := r.URL.Query()
	var f report.Filters

	if v := strings.TrimSpace(q.Get("startDate")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return report.Filters{}, fmt.Errorf("invalid startDate %q: expected YYYY-MM-DD", v)
		}
		f.Period.Start = t
	}
	if v := strings.TrimSpace(q.Get("endDate")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return report.Filters{}, fmt.Errorf("invalid endDate %q: expected YYYY-MM-DD", v)
		}
		f.Period.End = t
	}

	var err error
	if f.Employee, err = parseIDParam(q.Get("employeeId"), "employeeId"); err != nil {
		return report.Filters{}, err
	}
	if f.Client, err = parseIDParam(q.Get("clientId"), "clientId"); err != nil {
		return report.Filters{}, err
	}
	if f.Service, err = parseIDParam(q.Get("serviceId"), "serviceId"); err != nil {
		return report.Filters{}, err
	}
	if f.Product, err = parseIDParam(q.Get("productId"), "productId"); err != nil {
		return report.Filters{}, err
	}

	switch v := strings.TrimSpace(q.Get("paymentMethod")); v {
	case "", "all":
		f.Payment = report.AnyPayment()
	default:
		m := core.PaymentMethod(v)
		if !m.Valid() {
			return report.Filters{}, fmt.Errorf("invalid paymentMethod %q", v)
		}
		f.Payment = report.ByPayment(m)
	}

	return f, nil
}

func parseIDParam(raw, name string) (report.IDSelection, error) {
	v := strings.TrimSpace(raw)
	if v == "" || v == "all" {
		return report.AnyID(), nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return report.IDSelection{}, fmt.Errorf("invalid %s %q", name, v)
	}
	return report.ByID(id), nil
}

func presentReport(rep report.Report) ReportResponse {
	resp := ReportResponse{
		TotalRevenue:     rep.TotalRevenue,
		TotalRevenueBRL:  rep.TotalRevenue.FormatBRL(),
		TransactionCount: rep.TransactionCount,
		AverageTicket:    rep.AverageTicket,
		AverageTicketBRL: rep.AverageTicket.FormatBRL(),
		EmployeeRows:     []EmployeeRowView{},
		TopClients:       []RankedRowView{},
		TopServices:      []RankedRowView{},
		TopProducts:      []RankedRowView{},
	}

	for _, row := range rep.EmployeeRows {
		if row.Revenue.Cents == 0 && row.CompletedAppointments == 0 {
			continue
		}
		resp.EmployeeRows = append(resp.EmployeeRows, EmployeeRowView{
			Name:                  row.Name,
			Revenue:               row.Revenue,
			RevenueBRL:            row.Revenue.FormatBRL(),
			CompletedAppointments: row.CompletedAppointments,
		})
	}

	for _, row := range rep.TopClients {
		if row.Revenue.Cents == 0 {
			continue
		}
		resp.TopClients = append(resp.TopClients, RankedRowView{
			Name:       row.Name,
			Revenue:    row.Revenue,
			RevenueBRL: row.Revenue.FormatBRL(),
		})
	}

	for _, row := range rep.TopServices {
		if row.Revenue.Cents == 0 && row.SaleCount == 0 {
			continue
		}
		resp.TopServices = append(resp.TopServices, RankedRowView{
			Name:       row.Name,
			Revenue:    row.Revenue,
			RevenueBRL: row.Revenue.FormatBRL(),
			SaleCount:  row.SaleCount,
		})
	}

	for _, row := range rep.TopProducts {
		if row.Revenue.Cents == 0 && row.SaleCount == 0 {
			continue
		}
		resp.TopProducts = append(resp.TopProducts, RankedRowView{
			Name:       row.Name,
			Revenue:    row.Revenue,
			RevenueBRL: row.Revenue.FormatBRL(),
			SaleCount:  row.SaleCount,
		})
	}

	return resp
}
