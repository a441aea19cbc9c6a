package mercadopago

import "time"

// Payment statuses as reported by the provider
const (
	PaymentStatusApproved  = "approved"
	PaymentStatusPending   = "pending"
	PaymentStatusInProcess = "in_process"
	PaymentStatusRejected  = "rejected"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusRefunded  = "refunded"
)

// Item is a checkout line item
type Item struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

// BackURLs are the browser return targets after checkout
type BackURLs struct {
	Success string `json:"success"`
	Pending string `json:"pending"`
	Failure string `json:"failure"`
}

// PreferenceRequest is the body of POST /checkout/preferences
type PreferenceRequest struct {
	Items             []Item            `json:"items"`
	ExternalReference string            `json:"external_reference"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	NotificationURL   string            `json:"notification_url,omitempty"`
	BackURLs          *BackURLs         `json:"back_urls,omitempty"`
	AutoReturn        string            `json:"auto_return,omitempty"`
}

// Preference is the created checkout session
type Preference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// Payment is the full payment record fetched from GET /v1/payments/{id}.
// Webhook payloads are never trusted for status; this record is.
type Payment struct {
	ID                int64                  `json:"id"`
	Status            string                 `json:"status"`
	StatusDetail      string                 `json:"status_detail"`
	ExternalReference string                 `json:"external_reference"`
	Metadata          map[string]interface{} `json:"metadata"`
	TransactionAmount float64                `json:"transaction_amount"`
	DateApproved      *time.Time             `json:"date_approved"`
	DateCreated       *time.Time             `json:"date_created"`
}

// LeadReference extracts the lead correlation id, preferring metadata over
// external_reference. Returns "" when neither is present.
func (p *Payment) LeadReference() string {
	if p.Metadata != nil {
		if v, ok := p.Metadata["lead_id"].(string); ok && v != "" {
			return v
		}
	}
	return p.ExternalReference
}
