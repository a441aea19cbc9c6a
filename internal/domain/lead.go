package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus is the lifecycle state of a booking intent
type LeadStatus string

const (
	LeadAwaitingPayment LeadStatus = "aguardando_pagamento"
	LeadConverted       LeadStatus = "convertido"
	LeadExpired         LeadStatus = "expirado"
	LeadCancelled       LeadStatus = "cancelado"
)

// IsTerminal reports whether the status admits no further transitions
func (s LeadStatus) IsTerminal() bool {
	return s == LeadConverted || s == LeadExpired || s == LeadCancelled
}

// ValidLeadStatus reports whether s is one of the known lead statuses
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadAwaitingPayment, LeadConverted, LeadExpired, LeadCancelled:
		return true
	}
	return false
}

// Address is the snapshot of the address fields captured on the form
type Address struct {
	Street       string
	Number       string
	Neighborhood string
	City         string
	State        string
	PostalCode   string
}

// Lead captures a booking intent at checkout time. Patient fields are a
// deliberate snapshot of what the form contained, independent of later edits
// to the Patient record.
type Lead struct {
	ID        uuid.UUID
	PatientID *uuid.UUID // set when the patient already existed at submission

	Name      string
	Email     string
	Phone     string
	CPF       *string
	BirthDate *time.Time
	Address   Address

	SessionType SessionType
	When        time.Time // first session instant
	Value       float64
	Notes       *string

	Installments Installments

	Status    LeadStatus
	BookingID *uuid.UUID // principal booking after conversion

	// Payment provider correlation keys
	PreferenceID  *string
	InitPoint     *string
	LastPaymentID *string

	Origin string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConverted reports whether the lead has already produced its booking
func (l *Lead) IsConverted() bool {
	return l.Status == LeadConverted && l.BookingID != nil
}

// LeadFilter narrows administrative lead listings
type LeadFilter struct {
	Status    *LeadStatus
	StartDate *time.Time // filters by CreatedAt
	EndDate   *time.Time
	Email     *string // substring, case-insensitive
}
