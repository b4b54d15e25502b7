package domain

// ID is used across domain entities.
type ID = int64

// Role classifies authenticated actors.
type Role string

const (
	RoleTraveller Role = "traveller"
	RoleOperator  Role = "operator"
	RoleFinance   Role = "finance"
	RoleAdmin     Role = "admin"
	// RoleSystem tags machine-generated chat messages; it is never an
	// authenticated actor.
	RoleSystem Role = "system"
)

// ParseRole validates a role label coming from storage or a token.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTraveller, RoleOperator, RoleFinance, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Actor carries authenticated caller info extracted from the JWT.
// OperatorID is zero unless Role is RoleOperator.
type Actor struct {
	UserID     ID   `json:"userId"`
	Role       Role `json:"role"`
	OperatorID ID   `json:"operatorId,omitempty"`
}