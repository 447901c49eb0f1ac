package core

import (
	"errors"
	"strings"
	"time"
)

type (
	TransactionKind   string
	PaymentMethod     string
	AppointmentStatus string
	Role              string
)

const (
	KindService TransactionKind = "service"
	KindProduct TransactionKind = "product"
	KindPackage TransactionKind = "package"
)

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentOther      PaymentMethod = "other"
)

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusInService AppointmentStatus = "in_service"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

const (
	RoleUser      Role = "user"
	RoleAttendant Role = "attendant"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrEmptyName            = errors.New("empty name")
	ErrEmptyPhone           = errors.New("empty phone")
	ErrInvalidKind          = errors.New("invalid transaction kind")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidStatus        = errors.New("invalid appointment status")
	ErrInvalidRole          = errors.New("invalid role")
	ErrMissingClient        = errors.New("missing client reference")
	ErrMissingEmployee      = errors.New("missing employee reference")
	ErrMissingService       = errors.New("missing service reference")
	ErrMissingInstant       = errors.New("missing timestamp")
	ErrInvalidCommission    = errors.New("commission percent out of range")
	ErrNegativeCommission   = errors.New("negative commission")
	ErrInvalidDuration      = errors.New("invalid duration")
	ErrInvalidStock         = errors.New("invalid stock level")
	ErrInvalidValidity      = errors.New("invalid validity")
	ErrEmptyEmail           = errors.New("empty email")
)

type (
	// Client is a salon customer. Referenced by id from appointments and
	// transactions.
	Client struct {
		ID           int64      `json:"id"`
		Name         string     `json:"name"`
		Phone        string     `json:"phone"`
		Email        string     `json:"email,omitempty"`
		BirthDate    *time.Time `json:"birthDate,omitempty"`
		RegisteredAt time.Time  `json:"registeredAt"`
		Notes        string     `json:"notes,omitempty"`
	}

	Employee struct {
		ID                int64  `json:"id"`
		Name              string `json:"name"`
		Phone             string `json:"phone"`
		Email             string `json:"email,omitempty"`
		CommissionPercent int64  `json:"commissionPercent"`
		Active            bool   `json:"active"`
	}

	Service struct {
		ID              int64  `json:"id"`
		Name            string `json:"name"`
		Description     string `json:"description,omitempty"`
		Price           Money  `json:"price"`
		DurationMinutes int64  `json:"durationMinutes"`
		Active          bool   `json:"active"`
	}

	Product struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Price       Money  `json:"price"`
		Stock       int64  `json:"stock"`
		MinStock    int64  `json:"minStock"`
		Active      bool   `json:"active"`
	}

	Appointment struct {
		ID           int64             `json:"id"`
		ClientID     int64             `json:"clientId"`
		EmployeeID   int64             `json:"employeeId"`
		ServiceID    int64             `json:"serviceId"`
		ScheduledAt  time.Time         `json:"scheduledAt"`
		Status       AppointmentStatus `json:"status"`
		Notes        string            `json:"notes,omitempty"`
		ReminderSent bool              `json:"reminderSent"`
	}

	// Transaction is a completed sale. There is no foreign key to the sold
	// catalog item: Description holds the Service/Product name and is the
	// join key for reporting rollups.
	Transaction struct {
		ID            int64           `json:"id"`
		Kind          TransactionKind `json:"kind"`
		ClientID      int64           `json:"clientId"`
		EmployeeID    *int64          `json:"employeeId,omitempty"`
		AppointmentID *int64          `json:"appointmentId,omitempty"`
		Amount        Money           `json:"amount"`
		Commission    Money           `json:"commission"`
		PaymentMethod PaymentMethod   `json:"paymentMethod"`
		Description   string          `json:"description,omitempty"`
		OccurredAt    time.Time       `json:"occurredAt"`
	}

	Package struct {
		ID               int64  `json:"id"`
		Name             string `json:"name"`
		Description      string `json:"description,omitempty"`
		Price            Money  `json:"price"`
		OriginalPrice    Money  `json:"originalPrice"`
		IncludedServices string `json:"includedServices"`
		ValidityDays     int64  `json:"validityDays"`
		Active           bool   `json:"active"`
	}

	User struct {
		ID           int64  `json:"id"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		PasswordHash string `json:"-"`
		Role         Role   `json:"role"`
		Active       bool   `json:"active"`
	}
)

func (k TransactionKind) Valid() bool {
	switch k {
	case KindService, KindProduct, KindPackage:
		return true
	}
	return false
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentOther:
		return true
	}
	return false
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInService, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAttendant, RoleManager, RoleAdmin:
		return true
	}
	return false
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ErrEmptyPhone
	}
	return nil
}

func (e Employee) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(e.Phone) == "" {
		return ErrEmptyPhone
	}
	if e.CommissionPercent < 0 || e.CommissionPercent > 100 {
		return ErrInvalidCommission
	}
	return nil
}

func (s Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.Price.Cents <= 0 {
		return ErrInvalidAmount
	}
	if s.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.Cents <= 0 {
		return ErrInvalidAmount
	}
	if p.Stock < 0 || p.MinStock < 0 {
		return ErrInvalidStock
	}
	return nil
}

func (a Appointment) Validate() error {
	if a.ClientID == 0 {
		return ErrMissingClient
	}
	if a.EmployeeID == 0 {
		return ErrMissingEmployee
	}
	if a.ServiceID == 0 {
		return ErrMissingService
	}
	if a.ScheduledAt.IsZero() {
		return ErrMissingInstant
	}
	if !a.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if t.ClientID == 0 {
		return ErrMissingClient
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if t.Commission.Cents < 0 {
		return ErrNegativeCommission
	}
	if !t.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	if t.OccurredAt.IsZero() {
		return ErrMissingInstant
	}
	return nil
}

func (p Package) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.Cents <= 0 || p.OriginalPrice.Cents <= 0 {
		return ErrInvalidAmount
	}
	if p.ValidityDays <= 0 {
		return ErrInvalidValidity
	}
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}
