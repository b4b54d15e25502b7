package models

import "time"

// Message is a chat entry on an enquiry thread, immutable once created.
// SenderRole is traveller, operator, or system.
type Message struct {
	ID             int64     `json:"id"`
	QuoteRequestID int64     `json:"quote_request_id"`
	SenderRole     string    `json:"sender_role"`
	SenderID       int64     `json:"sender_id,omitempty"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
