package domain

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the identity record reused across bookings. Uniqueness is
// enforced over email and CPF; patients are created on the first booking
// attempt and looked up by email afterwards.
type Patient struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	CPF       *string
	BirthDate *time.Time
	Address   Address
	Notes     *string
	Active    bool

	FirstConsultation bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
