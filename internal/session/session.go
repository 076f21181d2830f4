package session

import (
	"fmt"
	"strings"
	"time"
)

// Session identifies the operator currently using the terminal.
// It is immutable for its whole lifetime; a new login replaces it wholesale.
type Session struct {
	Registration string
	OperatorName string
	Shift        string
	LoginTime    time.Time
}

// ValidationError reports which login fields were left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campos obrigatórios não preenchidos: %s", strings.Join(e.Missing, ", "))
}

// Manager holds the single active session. Exactly one session can be
// active at a time; there is no multi-operator coordination.
type Manager struct {
	active *Session
	now    func() time.Time
}

// NewManager creates a Manager with no active session.
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// Login validates the three identification fields and, on success,
// installs a new active session. Registration and operator name are
// normalized to uppercase; the shift is taken verbatim.
func (m *Manager) Login(registration, operatorName, shift string) (*Session, error) {
	var missing []string
	if strings.TrimSpace(registration) == "" {
		missing = append(missing, "Matrícula")
	}
	if strings.TrimSpace(operatorName) == "" {
		missing = append(missing, "Nome do Operador")
	}
	if strings.TrimSpace(shift) == "" {
		missing = append(missing, "Turno")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	s := &Session{
		Registration: strings.ToUpper(strings.TrimSpace(registration)),
		OperatorName: strings.ToUpper(strings.TrimSpace(operatorName)),
		Shift:        shift,
		LoginTime:    m.now(),
	}
	m.active = s
	return s, nil
}

// Logout clears the active session. Records already entered keep the
// identity fields they were created with.
func (m *Manager) Logout() {
	m.active = nil
}

// Active returns the current session, or nil when logged out.
func (m *Manager) Active() *Session {
	return m.active
}

// LoggedIn reports whether a session is active.
func (m *Manager) LoggedIn() bool {
	return m.active != nil
}
