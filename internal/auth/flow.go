// Package auth implements the mocked authentication flow: registration with
// a code-based verification step, a check-free login, a social shortcut, and
// session establishment on top of the store ports.
package auth

import (
	"errors"
	"strings"
)

type State string

const (
	StateNone          State = "none"
	StateRegister      State = "register"
	StateVerify        State = "verify"
	StateLogin         State = "login"
	StateAuthenticated State = "authenticated"
)

var (
	ErrMissingFields = errors.New("all fields are required")
	// ErrCodeMismatch keeps the flow in the verify state so the user can retry.
	ErrCodeMismatch = errors.New("verification code does not match")
	ErrBadTransition = errors.New("operation not allowed in current state")
)

// Flow is the per-attempt state machine. It holds the collected display name
// between the register and verify steps; nothing else from the forms is kept.
type Flow struct {
	state      State
	name       string
	acceptCode string
}

func NewFlow(acceptCode string) *Flow {
	return &Flow{state: StateNone, acceptCode: acceptCode}
}

func (f *Flow) State() State { return f.state }

// Name returns the collected display name, or empty if none was given.
func (f *Flow) Name() string { return f.name }

// BeginRegister collects the registration form and moves to verification.
// No server-side credential validation happens beyond non-empty fields.
func (f *Flow) BeginRegister(name, email, password string) error {
	if f.state != StateNone {
		return ErrBadTransition
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return ErrMissingFields
	}
	f.name = strings.TrimSpace(name)
	f.state = StateVerify
	return nil
}

// SubmitCode compares the joined digits against the acceptance code. On a
// mismatch the flow stays in verify and the caller surfaces a retry message.
func (f *Flow) SubmitCode(code string) error {
	if f.state != StateVerify {
		return ErrBadTransition
	}
	if code != f.acceptCode {
		return ErrCodeMismatch
	}
	f.state = StateAuthenticated
	return nil
}

// BeginLogin treats any non-empty submission as a successful authentication
// under the placeholder name. No credential check is performed.
func (f *Flow) BeginLogin(email, password string) error {
	if f.state != StateNone {
		return ErrBadTransition
	}
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return ErrMissingFields
	}
	f.state = StateAuthenticated
	return nil
}

// Social is the third-party identity shortcut straight to authenticated.
func (f *Flow) Social() error {
	if f.state != StateNone {
		return ErrBadTransition
	}
	f.state = StateAuthenticated
	return nil
}
