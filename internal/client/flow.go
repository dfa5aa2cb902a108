package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/canopy-api/internal/domain"
)

// Login flow states.
type State int

const (
	StateEnter State = iota
	StateSending
	StateSent
	StateVerifying
	StateDone
)

func (s State) String() string {
	switch s {
	case StateEnter:
		return "enter"
	case StateSending:
		return "sending"
	case StateSent:
		return "sent"
	case StateVerifying:
		return "verifying"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// countdownSeconds mirrors the five-minute validity of an issued code.
const countdownSeconds = 300

const expiredMessage = "That code has expired. Request a new one."

// LoginFlow is the login state machine a frontend drives: collect identity,
// request a code, count down its validity, verify, done. It is not
// goroutine-safe; drive it from a single loop.
type LoginFlow struct {
	api *Client

	state     State
	remaining int
	message   string
	dev       bool
	email     string
	user      *domain.PublicUser
}

func NewLoginFlow(api *Client) *LoginFlow {
	return &LoginFlow{api: api, state: StateEnter}
}

func (f *LoginFlow) State() State             { return f.state }
func (f *LoginFlow) Remaining() int           { return f.remaining }
func (f *LoginFlow) Message() string          { return f.message }
func (f *LoginFlow) Dev() bool                { return f.dev }
func (f *LoginFlow) User() *domain.PublicUser { return f.user }

// Submit requests a code for the identity. On success the flow moves to sent
// with a fresh countdown; on failure it returns to enter with a message the
// form can show.
func (f *LoginFlow) Submit(ctx context.Context, collegeName, name, email string) error {
	if f.state != StateEnter && f.state != StateSent {
		return fmt.Errorf("submit not allowed in state %s", f.state)
	}
	f.state = StateSending
	f.message = ""

	dev, err := f.api.SendOTP(ctx, collegeName, name, email)
	if err != nil {
		f.state = StateEnter
		f.message = sendMessage(err)
		return err
	}
	f.state = StateSent
	f.remaining = countdownSeconds
	f.dev = dev
	f.email = email
	return nil
}

// Tick advances the countdown by one second. When it runs out the pending
// code is abandoned and the flow returns to the form with an expiry message.
func (f *LoginFlow) Tick() {
	if f.state != StateSent {
		return
	}
	if f.remaining > 0 {
		f.remaining--
	}
	if f.remaining == 0 {
		f.state = StateEnter
		f.message = expiredMessage
	}
}

// VerifyCode submits the entered code. An invalid code stays in sent with the
// countdown untouched; an expired code zeroes the countdown so the next tick
// returns to the form; success lands in done with the session cookies in the jar.
func (f *LoginFlow) VerifyCode(ctx context.Context, code string) error {
	if f.state != StateSent {
		return fmt.Errorf("verify not allowed in state %s", f.state)
	}
	f.state = StateVerifying
	f.message = ""

	user, err := f.api.VerifyOTP(ctx, f.email, code)
	if err != nil {
		f.state = StateSent
		f.message = verifyMessage(err)
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Code == "otp_expired" || apiErr.Code == "no_otp") {
			f.remaining = 0
		}
		return err
	}

	f.state = StateDone
	f.user = user
	return nil
}

// ChangeEmail abandons the pending code and returns to the form.
func (f *LoginFlow) ChangeEmail() {
	f.state = StateEnter
	f.remaining = 0
	f.message = ""
	f.dev = false
	f.email = ""
}

func sendMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return "Something went wrong. Please try again."
	}
	switch apiErr.Code {
	case "college_not_found":
		return "We couldn't find that college. Pick one from the list."
	case "email_domain_invalid":
		return fmt.Sprintf("Use your @%s email address.", apiErr.Domain)
	case "email_send_failed", "email_not_configured":
		return "We couldn't send the code. Please try again later."
	case "missing_fields":
		return "Please fill in every field."
	}
	return "Something went wrong. Please try again."
}

func verifyMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return "Something went wrong. Please try again."
	}
	switch apiErr.Code {
	case "otp_invalid":
		return "That code doesn't match. Check your inbox and try again."
	case "otp_expired":
		return expiredMessage
	case "no_otp":
		return "No code is pending for this email. Request a new one."
	}
	return "Something went wrong. Please try again."
}
