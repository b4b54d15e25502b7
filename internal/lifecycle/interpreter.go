package lifecycle

import "safariconnector/internal/domain"

// Action names a mutation a surface may offer for a booking.
type Action string

const (
	ActionSubmitProof   Action = "submit_proof"
	ActionVerifyPayment Action = "verify_payment"
	ActionConfirm       Action = "confirm"
	ActionComplete      Action = "complete"
	ActionCancel        Action = "cancel"
	ActionMessage       Action = "message"
)

// Interpretation is what every screen renders from: a label, a visual tone,
// and the actions each actor class may currently take. Buttons in a client
// are advisory; the transition authority re-checks everything server-side.
type Interpretation struct {
	Label   string                   `json:"label"`
	Tone    string                   `json:"tone"`
	Actions map[domain.Role][]Action `json:"actions"`
}

var statusLabels = map[Status]struct {
	label string
	tone  string
}{
	StatusPendingPayment:   {"Awaiting payment", "warning"},
	StatusPaymentSubmitted: {"Payment under review", "info"},
	StatusPaymentVerified:  {"Payment verified - awaiting operator confirmation", "info"},
	StatusConfirmed:        {"Confirmed", "success"},
	StatusCompleted:        {"Completed", "muted"},
	StatusCancelled:        {"Cancelled", "danger"},
}

var paymentSuffix = map[PaymentStatus]string{
	PaymentDepositPaid: " (deposit paid)",
	PaymentPaidInFull:  " (paid in full)",
}

// Interpret maps the two raw booking fields to display data and permitted
// actions. It is a pure function of its inputs.
func Interpret(status Status, payment PaymentStatus) Interpretation {
	meta, ok := statusLabels[status]
	if !ok {
		meta.label = "Unknown"
		meta.tone = "muted"
	}

	out := Interpretation{
		Label:   meta.label + paymentSuffix[payment],
		Tone:    meta.tone,
		Actions: map[domain.Role][]Action{},
	}

	add := func(role domain.Role, a Action) {
		out.Actions[role] = append(out.Actions[role], a)
	}

	if !status.IsTerminal() {
		// Operators may send payment instructions on any live booking.
		add(domain.RoleOperator, ActionMessage)
		add(domain.RoleTraveller, ActionMessage)
	}

	for target, r := range rules {
		if !r.sources[status] {
			continue
		}
		action, ok := targetAction[target]
		if !ok {
			continue
		}
		for role := range r.roles {
			add(role, action)
		}
	}

	for role := range out.Actions {
		sortActions(out.Actions[role])
	}
	return out
}

var targetAction = map[Status]Action{
	StatusPaymentSubmitted: ActionSubmitProof,
	StatusPaymentVerified:  ActionVerifyPayment,
	StatusConfirmed:        ActionConfirm,
	StatusCompleted:        ActionComplete,
	StatusCancelled:        ActionCancel,
}

// sortActions keeps the permitted-action order stable for clients and tests;
// map iteration above is randomized.
var actionOrder = map[Action]int{
	ActionSubmitProof:   0,
	ActionVerifyPayment: 1,
	ActionConfirm:       2,
	ActionComplete:      3,
	ActionCancel:        4,
	ActionMessage:       5,
}

func sortActions(as []Action) {
	for i := 1; i < len(as); i++ {
		for j := i; j > 0 && actionOrder[as[j]] < actionOrder[as[j-1]]; j-- {
			as[j], as[j-1] = as[j-1], as[j]
		}
	}
}
