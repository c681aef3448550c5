package appraisal

import "testing"

func TestApproveRejectOnlyFromSubmitted(t *testing.T) {
	for _, status := range []string{StatusApproved, StatusRejected, StatusNegotiation, StatusAccepted} {
		if CanApprove(status) {
			t.Fatalf("approve must not be legal from %s", status)
		}
		if CanReject(status) {
			t.Fatalf("reject must not be legal from %s", status)
		}
	}
	if !CanApprove(StatusSubmitted) || !CanReject(StatusSubmitted) {
		t.Fatal("submitted must allow approve and reject")
	}
}

func TestNegotiateBlockedAfterAcceptance(t *testing.T) {
	for _, status := range []string{StatusSubmitted, StatusApproved, StatusRejected, StatusNegotiation} {
		if !CanNegotiate(status) {
			t.Fatalf("negotiate should be legal from %s", status)
		}
	}
	if CanNegotiate(StatusAccepted) {
		t.Fatal("accepted appraisals cannot be negotiated")
	}
}

func TestAcceptRequiresDecision(t *testing.T) {
	if CanAccept(StatusSubmitted) {
		t.Fatal("a submitted appraisal awaiting HR cannot be accepted")
	}
	for _, status := range []string{StatusApproved, StatusRejected, StatusNegotiation} {
		if !CanAccept(status) {
			t.Fatalf("accept should be legal from %s", status)
		}
	}
	if CanAccept(StatusAccepted) {
		t.Fatal("accept is not re-entrant")
	}
}

func TestValidTicketStatus(t *testing.T) {
	for _, status := range TicketStatuses {
		if !ValidTicketStatus(status) {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if ValidTicketStatus("escalated") {
		t.Fatal("escalated is not a ticket status")
	}
}
