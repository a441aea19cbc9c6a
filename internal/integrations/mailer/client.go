// Package mailer is a thin client for the practice's mailer service. Email
// rendering and delivery live behind it; this service only fires the
// confirmation request and callers are expected to log-and-swallow failures,
// since a lost email must never roll back a booking.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrUnavailable is returned when the mailer cannot be reached
	ErrUnavailable = errors.New("mailer: service unavailable")

	// ErrInternal covers request building failures
	ErrInternal = errors.New("mailer: internal error")
)

// Logger is the logging surface the client needs
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ConfirmationRequest carries what the mailer needs to render the booking
// confirmation email.
type ConfirmationRequest struct {
	To            string    `json:"to"`
	PatientName   string    `json:"patientName"`
	SessionType   string    `json:"sessionType"`
	When          time.Time `json:"when"`
	TotalSessions int       `json:"totalSessions"`
	Value         float64   `json:"value"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation asks the mailer to deliver the confirmation email
func (c *Client) SendBookingConfirmation(ctx context.Context, req *ConfirmationRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/emails/booking-confirmation", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	c.log.Info("mailer: confirmation queued to=%s", req.To)
	return nil
}
