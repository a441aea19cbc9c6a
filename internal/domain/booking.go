package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking. Wire values are kept in
// Portuguese, matching what the practice's panel and historical data use.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pendente"
	StatusConfirmed BookingStatus = "confirmado"
	StatusCompleted BookingStatus = "realizado"
	StatusCancelled BookingStatus = "cancelado"
	StatusNoShow    BookingStatus = "faltou"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pendente"
	PaymentApproved PaymentStatus = "aprovado"
	PaymentDeclined PaymentStatus = "recusado"
	PaymentRefunded PaymentStatus = "estornado"
)

// PaymentMethod is how a booking was (or will be) paid
type PaymentMethod string

const (
	MethodMercadoPago PaymentMethod = "mercadopago"
	MethodPix         PaymentMethod = "pix"
	MethodCash        PaymentMethod = "dinheiro"
	MethodTransfer    PaymentMethod = "transferencia"
)

// PackageInfo describes a booking's position inside a recurring package.
// PrincipalID is nil for the package's first session and points to it for
// every subsequent one.
type PackageInfo struct {
	IsPackage     bool
	PackageType   PackageType
	TotalSessions int
	SessionIndex  int // 1-based
	PrincipalID   *uuid.UUID
	FixedWeekday  time.Weekday
	FixedTime     string // "HH:MM"
}

// Payment is the payment block of a booking
type Payment struct {
	Status        PaymentStatus
	Method        PaymentMethod
	TransactionID *string
	PreferenceID  *string
	PaidAt        *time.Time
	Proof         *string
}

// Installments is the displayed installment breakdown. The principal booking
// of a package carries the full price; the breakdown is informational, the
// provider manages actual charging.
type Installments struct {
	Count     int
	PerAmount float64
}

// Cancellation records who cancelled a booking, when and why
type Cancellation struct {
	Cancelled   bool
	At          *time.Time
	Reason      *string
	CancelledBy *string // "admin", "paciente", "sistema"
}

// Booking is the confirmed or pending unit of attendance. When is the
// authoritative occupancy key: at most one non-cancelled booking may exist
// per instant, enforced by a partial unique index in storage.
type Booking struct {
	ID        uuid.UUID
	PatientID uuid.UUID
	LeadID    *uuid.UUID
	When      time.Time
	Duration  int // minutes
	Type      SessionType
	Status    BookingStatus
	Value     float64
	Notes     *string

	Package      PackageInfo
	Payment      Payment
	Installments Installments
	Cancellation Cancellation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled reports whether the booking may still transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCancelled
}

// IsPaid reports whether the payment has been approved
func (b *Booking) IsPaid() bool {
	return b.Payment.Status == PaymentApproved
}

// BookingFilter narrows listing queries over bookings
type BookingFilter struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	PatientID       *uuid.UUID
	IncludeInactive bool
}

// ValidBookingStatus reports whether s is one of the known statuses
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
