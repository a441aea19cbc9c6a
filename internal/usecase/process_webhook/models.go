package process_webhook

import "github.com/google/uuid"

// Request is the parsed webhook notification. Only the payment id is taken
// from the body; everything else is re-fetched from the provider.
type Request struct {
	Topic     string // "payment" is the only topic acted on
	PaymentID string
}

// Outcome says what the notification did
type Outcome string

const (
	OutcomeIgnored   Outcome = "ignored"   // unrelated topic or non-final status
	OutcomeConverted Outcome = "converted" // lead became bookings
	OutcomeDuplicate Outcome = "duplicate" // lead was already terminal
	OutcomeDeclined  Outcome = "declined"  // payment rejected, lead closed
)

// Response reports the processing outcome. BookingID is set only on
// conversion.
type Response struct {
	Outcome   Outcome
	LeadID    *uuid.UUID
	BookingID *uuid.UUID
}
