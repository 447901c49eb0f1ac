package core

import (
	"errors"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		Kind:          KindService,
		ClientID:      1,
		Amount:        Money{Cents: 5000},
		PaymentMethod: PaymentPix,
		Description:   "Manicure",
		OccurredAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Transaction)
		want error
	}{
		{"valid", nil, nil},
		{"bad kind", func(tr *Transaction) { tr.Kind = "rental" }, ErrInvalidKind},
		{"no client", func(tr *Transaction) { tr.ClientID = 0 }, ErrMissingClient},
		{"zero amount", func(tr *Transaction) { tr.Amount.Cents = 0 }, ErrInvalidAmount},
		{"bad payment", func(tr *Transaction) { tr.PaymentMethod = "check" }, ErrInvalidPaymentMethod},
		{"no instant", func(tr *Transaction) { tr.OccurredAt = time.Time{} }, ErrMissingInstant},
		{"negative commission", func(tr *Transaction) { tr.Commission.Cents = -1 }, ErrNegativeCommission},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := validTransaction()
			if tt.mod != nil {
				tt.mod(&tr)
			}
			if err := tr.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAppointment_Validate(t *testing.T) {
	valid := Appointment{
		ClientID: 1, EmployeeID: 2, ServiceID: 3,
		ScheduledAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:      StatusScheduled,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid appointment: %v", err)
	}

	bad := valid
	bad.Status = "waiting"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Validate() = %v, want %v", err, ErrInvalidStatus)
	}

	bad = valid
	bad.EmployeeID = 0
	if err := bad.Validate(); !errors.Is(err, ErrMissingEmployee) {
		t.Errorf("Validate() = %v, want %v", err, ErrMissingEmployee)
	}

	bad = valid
	bad.ServiceID = 0
	if err := bad.Validate(); !errors.Is(err, ErrMissingService) {
		t.Errorf("Validate() = %v, want %v", err, ErrMissingService)
	}
}

func TestStatusEnums(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusInService, StatusCompleted, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if AppointmentStatus("done").Valid() {
		t.Error("unknown status should be invalid")
	}
	for _, m := range []PaymentMethod{PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentOther} {
		if !m.Valid() {
			t.Errorf("payment method %q should be valid", m)
		}
	}
}

func TestClientAndEmployee_Validate(t *testing.T) {
	c := Client{Name: "Akemi", Phone: "11 9000-0001"}
	if err := c.Validate(); err != nil {
		t.Errorf("valid client: %v", err)
	}
	c.Name = "  "
	if err := c.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name: got %v, want %v", err, ErrEmptyName)
	}

	e := Employee{Name: "Carla", Phone: "11 9000-0002", CommissionPercent: 120}
	if err := e.Validate(); !errors.Is(err, ErrInvalidCommission) {
		t.Errorf("commission over 100: got %v, want %v", err, ErrInvalidCommission)
	}
}

func TestCatalogAndUser_ValidateSentinels(t *testing.T) {
	s := Service{Name: "Manicure", Price: Money{Cents: 5000}}
	if err := s.Validate(); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("zero duration: got %v, want %v", err, ErrInvalidDuration)
	}

	p := Product{Name: "Nail Polish", Price: Money{Cents: 2500}, Stock: -1}
	if err := p.Validate(); !errors.Is(err, ErrInvalidStock) {
		t.Errorf("negative stock: got %v, want %v", err, ErrInvalidStock)
	}

	pkg := Package{Name: "Monthly Care", Price: Money{Cents: 18000}, OriginalPrice: Money{Cents: 22000}}
	if err := pkg.Validate(); !errors.Is(err, ErrInvalidValidity) {
		t.Errorf("zero validity: got %v, want %v", err, ErrInvalidValidity)
	}

	u := User{Name: "Mariana", Role: RoleAdmin}
	if err := u.Validate(); !errors.Is(err, ErrEmptyEmail) {
		t.Errorf("empty email: got %v, want %v", err, ErrEmptyEmail)
	}
}
