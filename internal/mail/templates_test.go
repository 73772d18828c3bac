package mail

import (
	"strings"
	"testing"
)

func TestApprovalWithCredentials(t *testing.T) {
	t.Parallel()

	msg := ApprovalWithCredentials("ana@x.com", "tmpPass123", "https://atelier.test/espaco-criador")
	if !strings.Contains(msg.Text, "tmpPass123") || !strings.Contains(msg.HTML, "tmpPass123") {
		t.Fatal("temporary password missing from the message body")
	}
	if !strings.Contains(msg.Text, "https://atelier.test/espaco-criador") {
		t.Fatal("creator space link missing")
	}
}

func TestRejectionDefaultReason(t *testing.T) {
	t.Parallel()

	msg := Rejection("ana@x.com", "")
	if !strings.Contains(msg.Text, "Não especificado") {
		t.Fatal("empty reason must fall back to the default")
	}

	msg = Rejection("ana@x.com", "fora do perfil")
	if !strings.Contains(msg.Text, "fora do perfil") {
		t.Fatal("given reason missing from the message body")
	}
}

func TestResetLinkCarriesURL(t *testing.T) {
	t.Parallel()

	msg := ResetLink("ana@x.com", "https://atelier.test/reset-password/tok123")
	if !strings.Contains(msg.Text, "/reset-password/tok123") {
		t.Fatal("reset link missing from the message body")
	}
}
