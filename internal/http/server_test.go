package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/obrienteixeira/tokyo-manicure/internal/auth"
	"github.com/obrienteixeira/tokyo-manicure/internal/core"
	"github.com/obrienteixeira/tokyo-manicure/internal/records/memory"
	"github.com/obrienteixeira/tokyo-manicure/internal/services"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	srv := NewServer(":0", store, services.NewReportService(store), nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, store
}

func doRequest(t *testing.T, srv *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestClientCRUD(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/clients", core.Client{Name: "Yuki Tanaka", Phone: "11 99999-0001"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created core.Client
	decodeInto(t, rec, &created)
	if created.ID != 1 {
		t.Fatalf("created.ID = %d, want 1", created.ID)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/clients", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var listed []core.Client
	decodeInto(t, rec, &listed)
	if len(listed) != 1 || listed[0].Name != "Yuki Tanaka" {
		t.Fatalf("list = %+v, want one Yuki Tanaka", listed)
	}

	created.Phone = "11 99999-0002"
	rec = doRequest(t, srv, http.MethodPut, "/api/clients/1", created)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/clients/1", nil)
	var fetched core.Client
	decodeInto(t, rec, &fetched)
	if fetched.Phone != "11 99999-0002" {
		t.Fatalf("fetched.Phone = %q after update", fetched.Phone)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/clients/1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, "/api/clients/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d, want 404", rec.Code)
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		target string
		body   any
	}{
		{"client missing name", "/api/clients", core.Client{Phone: "11 99999-0001"}},
		{"employee out-of-range commission", "/api/employees", core.Employee{
			Name: "Carla", Phone: "11 98888-0001", CommissionPercent: 150, Active: true,
		}},
		{"service zero duration", "/api/services", core.Service{
			Name: "Manicure", Price: core.Money{Cents: 5000}, Active: true,
		}},
		{"product negative stock", "/api/products", core.Product{
			Name: "Nail Polish", Price: core.Money{Cents: 2500}, Stock: -1, Active: true,
		}},
		{"appointment missing employee", "/api/appointments", core.Appointment{
			ClientID: 1, ServiceID: 1, ScheduledAt: time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC),
		}},
		{"transaction negative commission", "/api/transactions", core.Transaction{
			Kind: core.KindService, ClientID: 1,
			Amount: core.Money{Cents: 5000}, Commission: core.Money{Cents: -100},
			PaymentMethod: core.PaymentPix, Description: "Manicure",
			OccurredAt: time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC),
		}},
		{"package zero validity", "/api/packages", core.Package{
			Name: "Monthly Care", Price: core.Money{Cents: 18000},
			OriginalPrice: core.Money{Cents: 22000}, Active: true,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, tt.target, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateAppointment_DefaultsStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/appointments", core.Appointment{
		ClientID:    1,
		EmployeeID:  1,
		ServiceID:   1,
		ScheduledAt: time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created core.Appointment
	decodeInto(t, rec, &created)
	if created.Status != core.StatusScheduled {
		t.Fatalf("Status = %q, want %q", created.Status, core.StatusScheduled)
	}
}

func TestLogin(t *testing.T) {
	srv, store := newTestServer(t)

	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	ctx := context.Background()
	if _, err := store.SaveUser(ctx, core.User{
		Name: "Mariana", Email: "mariana@salon.test", PasswordHash: hash,
		Role: core.RoleManager, Active: true,
	}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	if _, err := store.SaveUser(ctx, core.User{
		Name: "Former", Email: "former@salon.test", PasswordHash: hash,
		Role: core.RoleUser, Active: false,
	}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{"valid credentials", "mariana@salon.test", "correct horse", http.StatusOK},
		{"wrong password", "mariana@salon.test", "wrong", http.StatusUnauthorized},
		{"unknown email", "nobody@salon.test", "correct horse", http.StatusUnauthorized},
		{"inactive user", "former@salon.test", "correct horse", http.StatusUnauthorized},
		{"missing fields", "", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/login", map[string]string{
				"email": tt.email, "password": tt.password,
			})
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusOK {
				if bytes.Contains(rec.Body.Bytes(), []byte("passwordHash")) {
					t.Fatal("response leaks password hash")
				}
			}
		})
	}
}

func TestUserCRUD(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/users", map[string]any{
		"name": "Mariana", "email": "mariana@salon.test",
		"password": "correct horse", "role": string(core.RoleAdmin), "active": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("password")) {
		t.Fatal("response leaks password material")
	}
	var created core.User
	decodeInto(t, rec, &created)
	if created.ID != 1 {
		t.Fatalf("created.ID = %d, want 1", created.ID)
	}

	// Missing password rejected on create.
	rec = doRequest(t, srv, http.MethodPost, "/api/users", map[string]any{
		"name": "NoPass", "email": "nopass@salon.test", "role": string(core.RoleUser),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create without password: status = %d, want 400", rec.Code)
	}

	// Update without a password keeps the stored credential working.
	rec = doRequest(t, srv, http.MethodPut, "/api/users/1", map[string]any{
		"name": "Mariana Sato", "email": "mariana@salon.test",
		"role": string(core.RoleAdmin), "active": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, srv, http.MethodPost, "/api/login", map[string]string{
		"email": "mariana@salon.test", "password": "correct horse",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login after update: status = %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/users/1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, "/api/users/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d, want 404", rec.Code)
	}
}

func seedReportData(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.SaveEmployee(ctx, core.Employee{Name: "Carla", Phone: "11 98888-0001", Active: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveEmployee(ctx, core.Employee{Name: "Bruna", Phone: "11 98888-0002", Active: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveClient(ctx, core.Client{Name: "Yuki", Phone: "11 97777-0001"}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveService(ctx, core.Service{Name: "Manicure", Price: core.Money{Cents: 5000}, DurationMinutes: 45, Active: true}); err != nil {
		t.Fatal(err)
	}

	carla := int64(1)
	if _, err := store.SaveTransaction(ctx, core.Transaction{
		Kind: core.KindService, ClientID: 1, EmployeeID: &carla,
		Amount: core.Money{Cents: 5000}, PaymentMethod: core.PaymentPix,
		Description: "Manicure",
		OccurredAt:  time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatal(err)
	}
}

func TestReportEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	seedReportData(t, store)

	rec := doRequest(t, srv, http.MethodGet, "/api/reports?startDate=2026-03-01&endDate=2026-03-31&paymentMethod=pix", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp ReportResponse
	decodeInto(t, rec, &resp)
	if resp.TotalRevenue.Cents != 5000 || resp.TransactionCount != 1 {
		t.Fatalf("totals = %d cents / %d transactions, want 5000 / 1", resp.TotalRevenue.Cents, resp.TransactionCount)
	}
	if resp.TotalRevenueBRL != "R$ 50,00" {
		t.Fatalf("TotalRevenueBRL = %q", resp.TotalRevenueBRL)
	}
	if len(resp.EmployeeRows) != 1 || resp.EmployeeRows[0].Name != "Carla" {
		t.Fatalf("EmployeeRows = %+v, want only Carla (zero rows suppressed)", resp.EmployeeRows)
	}
	if len(resp.TopServices) != 1 || resp.TopServices[0].SaleCount != 1 {
		t.Fatalf("TopServices = %+v", resp.TopServices)
	}
}

func TestReportEndpoint_CachesResponses(t *testing.T) {
	srv, store := newTestServer(t)
	seedReportData(t, store)

	target := "/api/reports?paymentMethod=all"
	rec := doRequest(t, srv, http.MethodGet, target, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", rec.Code)
	}
	if rec.Header().Get("X-Cache") == "hit" {
		t.Fatal("first request should not hit the cache")
	}

	rec = doRequest(t, srv, http.MethodGet, target, nil)
	if rec.Header().Get("X-Cache") != "hit" {
		t.Fatal("second identical request should hit the cache")
	}

	// A catalog write invalidates cached reports.
	rec = doRequest(t, srv, http.MethodPost, "/api/services", core.Service{
		Name: "Pedicure", Price: core.Money{Cents: 6000}, DurationMinutes: 60, Active: true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create service: status = %d", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, target, nil)
	if rec.Header().Get("X-Cache") == "hit" {
		t.Fatal("request after a write should rebuild the report")
	}
}

func TestReportEndpoint_BadParams(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		target string
	}{
		{"bad start date", "/api/reports?startDate=10-03-2026"},
		{"bad employee id", "/api/reports?employeeId=carla"},
		{"bad payment method", "/api/reports?paymentMethod=check"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, tt.target, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestDashboardEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if _, err := store.SaveClient(ctx, core.Client{Name: "Yuki", Phone: "11 97777-0001", RegisteredAt: now}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveTransaction(ctx, core.Transaction{
		Kind: core.KindService, ClientID: 1,
		Amount: core.Money{Cents: 4500}, PaymentMethod: core.PaymentCash,
		Description: "Manicure", OccurredAt: now,
	}); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var summary struct {
		RevenueToday    core.Money `json:"revenueToday"`
		NewClientsToday int        `json:"newClientsToday"`
	}
	decodeInto(t, rec, &summary)
	if summary.RevenueToday.Cents != 4500 {
		t.Fatalf("RevenueToday = %d, want 4500", summary.RevenueToday.Cents)
	}
	if summary.NewClientsToday != 1 {
		t.Fatalf("NewClientsToday = %d, want 1", summary.NewClientsToday)
	}
}

func TestInsightsEndpoint_NotConfigured(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/insights", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestRequestContextHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/clients", nil)
	if got := rec.Header().Get("X-Request-ID"); got == "" {
		t.Fatal("missing X-Request-ID header")
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
}

func TestLRUCacheEviction(t *testing.T) {
	c := newLRUCache[string](2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	if _, ok := c.Get("a"); ok {
		t.Fatal("oldest entry should have been evicted")
	}
	for _, k := range []string{"b", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Fatalf("entry %q missing", k)
		}
	}
}

func TestLRUCacheExpiry(t *testing.T) {
	c := newLRUCache[int](4, time.Nanosecond)
	c.Set("k", 42)
	time.Sleep(time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry returned")
	}
	c.Set("k", 42)
	time.Sleep(time.Millisecond)
	if cleaned := c.CleanExpired(); cleaned != 1 {
		t.Fatalf("CleanExpired = %d, want 1", cleaned)
	}
}
