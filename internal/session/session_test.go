package session

import (
	"errors"
	"testing"
	"time"
)

func TestLoginNormalizesIdentity(t *testing.T) {
	m := NewManager()
	m.now = func() time.Time { return time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC) }

	s, err := m.Login("op1", "maria", "1º TURNO (05:50 - 14:35)")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if s.Registration != "OP1" {
		t.Errorf("expected registration=OP1, got=%s", s.Registration)
	}
	if s.OperatorName != "MARIA" {
		t.Errorf("expected name=MARIA, got=%s", s.OperatorName)
	}
	if s.Shift != "1º TURNO (05:50 - 14:35)" {
		t.Errorf("expected shift unchanged, got=%s", s.Shift)
	}
	if s.LoginTime.IsZero() {
		t.Error("expected LoginTime to be stamped")
	}
	if !m.LoggedIn() {
		t.Error("expected manager to report logged in")
	}
}

func TestLoginRejectsEmptyFields(t *testing.T) {
	cases := []struct {
		name                  string
		reg, operator, shift  string
		wantMissing           []string
	}{
		{"all empty", "", "", "", []string{"Matrícula", "Nome do Operador", "Turno"}},
		{"blank registration", "   ", "MARIA", "1º TURNO", []string{"Matrícula"}},
		{"blank name", "OP1", "\t", "1º TURNO", []string{"Nome do Operador"}},
		{"blank shift", "OP1", "MARIA", "", []string{"Turno"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager()
			_, err := m.Login(tc.reg, tc.operator, tc.shift)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Missing) != len(tc.wantMissing) {
				t.Fatalf("expected missing %v, got %v", tc.wantMissing, verr.Missing)
			}
			for i, want := range tc.wantMissing {
				if verr.Missing[i] != want {
					t.Errorf("missing[%d]: expected %q, got %q", i, want, verr.Missing[i])
				}
			}
			if m.LoggedIn() {
				t.Error("failed login must not install a session")
			}
		})
	}
}

func TestLogoutClearsSession(t *testing.T) {
	m := NewManager()
	if _, err := m.Login("op2", "joão", "2º TURNO (14:03 - 22:42)"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	m.Logout()

	if m.LoggedIn() {
		t.Error("expected logged out after Logout")
	}
	if m.Active() != nil {
		t.Error("expected nil active session after Logout")
	}
}

func TestReloginReplacesSession(t *testing.T) {
	m := NewManager()
	m.Login("op1", "maria", "1º TURNO")
	m.Logout()
	s, err := m.Login("op9", "carlos", "3º TURNO")
	if err != nil {
		t.Fatalf("second Login failed: %v", err)
	}
	if s.Registration != "OP9" || m.Active() != s {
		t.Errorf("expected fresh session for OP9, got %+v", m.Active())
	}
}
