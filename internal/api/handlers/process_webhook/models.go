package process_webhook

import (
	"encoding/json"
	"net/http"
)

// webhookBody is the provider notification. Depending on the channel the
// provider fills either type+data.id or topic+resource id in the query.
type webhookBody struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// parseNotification extracts the topic and payment id from body or query
func parseNotification(r *http.Request) (topic, paymentID string) {
	var body webhookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
		topic = body.Type
		paymentID = body.Data.ID.String()
	}

	q := r.URL.Query()
	if topic == "" {
		topic = q.Get("topic")
		if topic == "" {
			topic = q.Get("type")
		}
	}
	if paymentID == "" {
		paymentID = q.Get("data.id")
		if paymentID == "" {
			paymentID = q.Get("id")
		}
	}
	return topic, paymentID
}
