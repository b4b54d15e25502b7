package lifecycle

import (
	"fmt"

	"safariconnector/internal/domain"
)

// rule describes who may move a booking into a target state, and from where.
// A target absent from this table (pending_payment: creation only) can never
// be entered by a transition.
type rule struct {
	sources map[Status]bool
	roles   map[domain.Role]bool
}

var rules = map[Status]rule{
	StatusPaymentSubmitted: {
		sources: set(StatusPendingPayment),
		roles:   roles(domain.RoleTraveller),
	},
	StatusPaymentVerified: {
		sources: set(StatusPaymentSubmitted),
		roles:   roles(domain.RoleFinance, domain.RoleAdmin),
	},
	StatusConfirmed: {
		sources: set(StatusPaymentVerified),
		roles:   roles(domain.RoleOperator),
	},
	StatusCompleted: {
		sources: set(StatusConfirmed),
		roles:   roles(domain.RoleOperator, domain.RoleAdmin),
	},
	StatusCancelled: {
		sources: set(StatusPendingPayment, StatusPaymentSubmitted, StatusPaymentVerified, StatusConfirmed),
		roles:   roles(domain.RoleTraveller, domain.RoleOperator, domain.RoleAdmin),
	},
}

// Validate checks a requested transition against the table. The caller is
// expected to have short-circuited the idempotent case (current == target)
// already. Error precedence: an unreachable target or a terminal source is an
// InvalidTransitionError; a known target attempted from the wrong source, or
// by a role that never owns it, is a PreconditionFailedError.
func Validate(current, target Status, role domain.Role) error {
	r, ok := rules[target]
	if !ok || current.IsTerminal() {
		return domain.InvalidTransitionError{From: string(current), To: string(target)}
	}
	if !r.sources[current] {
		return domain.PreconditionFailedError{
			Msg: fmt.Sprintf("cannot move to %s while booking is %s", target, current),
		}
	}
	if !r.roles[role] {
		return domain.PreconditionFailedError{
			Msg:   fmt.Sprintf("role %s may not move a booking to %s", role, target),
			Actor: true,
		}
	}
	return nil
}

func set(ss ...Status) map[Status]bool {
	m := make(map[Status]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

func roles(rs ...domain.Role) map[domain.Role]bool {
	m := make(map[domain.Role]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}
