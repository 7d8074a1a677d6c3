// Package mailer sends transactional email through an external provider.
package mailer

import "context"

// Message is a single outbound email.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Mailer delivers messages and returns the provider's delivery ID. Callers
// must treat a nil Mailer as "not configured" and fail before attempting any
// state change.
type Mailer interface {
	Send(ctx context.Context, msg Message) (deliveryID string, err error)
}
