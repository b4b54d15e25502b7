package lifecycle

import (
	"reflect"
	"testing"

	"safariconnector/internal/domain"
)

func TestInterpretPendingPayment(t *testing.T) {
	got := Interpret(StatusPendingPayment, PaymentUnpaid)
	if got.Label != "Awaiting payment" {
		t.Fatalf("label = %q", got.Label)
	}
	if got.Tone != "warning" {
		t.Fatalf("tone = %q", got.Tone)
	}
	want := []Action{ActionSubmitProof, ActionCancel, ActionMessage}
	if !reflect.DeepEqual(got.Actions[domain.RoleTraveller], want) {
		t.Fatalf("traveller actions = %v, want %v", got.Actions[domain.RoleTraveller], want)
	}
	if len(got.Actions[domain.RoleFinance]) != 0 {
		t.Fatalf("finance should have nothing to do yet, got %v", got.Actions[domain.RoleFinance])
	}
}

func TestInterpretPaymentSubmitted(t *testing.T) {
	got := Interpret(StatusPaymentSubmitted, PaymentProofSubmitted)
	if !reflect.DeepEqual(got.Actions[domain.RoleFinance], []Action{ActionVerifyPayment}) {
		t.Fatalf("finance actions = %v", got.Actions[domain.RoleFinance])
	}
	// traveller can no longer submit, only cancel or message
	if !reflect.DeepEqual(got.Actions[domain.RoleTraveller], []Action{ActionCancel, ActionMessage}) {
		t.Fatalf("traveller actions = %v", got.Actions[domain.RoleTraveller])
	}
}

func TestInterpretVerifiedOffersOperatorConfirm(t *testing.T) {
	got := Interpret(StatusPaymentVerified, PaymentDepositPaid)
	if !reflect.DeepEqual(got.Actions[domain.RoleOperator], []Action{ActionConfirm, ActionCancel, ActionMessage}) {
		t.Fatalf("operator actions = %v", got.Actions[domain.RoleOperator])
	}
	if got.Label != "Payment verified - awaiting operator confirmation (deposit paid)" {
		t.Fatalf("label = %q", got.Label)
	}
}

func TestInterpretConfirmedPaidInFull(t *testing.T) {
	got := Interpret(StatusConfirmed, PaymentPaidInFull)
	if got.Label != "Confirmed (paid in full)" {
		t.Fatalf("label = %q", got.Label)
	}
	if !reflect.DeepEqual(got.Actions[domain.RoleOperator], []Action{ActionComplete, ActionCancel, ActionMessage}) {
		t.Fatalf("operator actions = %v", got.Actions[domain.RoleOperator])
	}
	if !reflect.DeepEqual(got.Actions[domain.RoleAdmin], []Action{ActionComplete, ActionCancel}) {
		t.Fatalf("admin actions = %v", got.Actions[domain.RoleAdmin])
	}
}

func TestInterpretTerminalHasNoActions(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		got := Interpret(s, PaymentPaidInFull)
		for role, actions := range got.Actions {
			if len(actions) > 0 {
				t.Fatalf("%s: role %s still offered %v", s, role, actions)
			}
		}
	}
}

func TestInterpretUnknownStatus(t *testing.T) {
	got := Interpret(Status("???"), PaymentUnpaid)
	if got.Label != "Unknown" || got.Tone != "muted" {
		t.Fatalf("got label=%q tone=%q", got.Label, got.Tone)
	}
}
