package models

import "time"

// Operator approval states. Approval gates trip publishing.
const (
	OperatorPending   = "pending"
	OperatorApproved  = "approved"
	OperatorRejected  = "rejected"
	OperatorSuspended = "suspended"
)

type Operator struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Country   string    `json:"country"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidOperatorStatus reports whether s is a known approval state.
func ValidOperatorStatus(s string) bool {
	switch s {
	case OperatorPending, OperatorApproved, OperatorRejected, OperatorSuspended:
		return true
	default:
		return false
	}
}
