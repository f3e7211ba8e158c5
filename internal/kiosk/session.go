package kiosk

import (
	"errors"
	"sync"
	"time"

	"hagwon/internal/errs"
)

// Session states for the kiosk keypad flow.
const (
	StateInput      = "input"
	StateProcessing = "processing"
	StateSuccess    = "success"
)

const passcodeLen = 4

// Alert and confirmation texts shown on the kiosk screen.
const (
	alertUnknownCode = "등록되지 않은 출석번호입니다."
	alertFailure     = "오류가 발생했습니다."
	successSuffix    = " 학생 출석이 완료되었습니다.\n(학부모님께 문자가 전송되었습니다)"
)

// CheckInFunc performs the actual check-in once 4 digits are entered.
type CheckInFunc func(passcode string) (studentName string, err error)

// Session drives the kiosk keypad: digits accumulate in the input
// state, the fourth digit triggers the check-in, and success holds the
// confirmation for a fixed window before resetting. Failures return to
// input with an alert and a cleared code. There is no cancel while
// processing.
type Session struct {
	mu sync.Mutex

	state       string
	code        string
	studentName string
	confirm     string
	alert       string

	checkIn    CheckInFunc
	resetDelay time.Duration
	timer      *time.Timer
}

// NewSession creates a keypad session. A resetDelay of zero disables
// the auto-reset timer; the caller resets explicitly.
func NewSession(checkIn CheckInFunc, resetDelay time.Duration) *Session {
	return &Session{state: StateInput, checkIn: checkIn, resetDelay: resetDelay}
}

// Snapshot is a point-in-time view of the session for rendering.
type Snapshot struct {
	State       string `json:"state"`
	Entered     int    `json:"entered"`
	StudentName string `json:"studentName,omitempty"`
	Confirm     string `json:"confirm,omitempty"`
	Alert       string `json:"alert,omitempty"`
}

// Press feeds one digit (0-9). Input outside the input state, or a
// non-digit, is ignored. The fourth digit runs the check-in.
func (s *Session) Press(digit int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInput || digit < 0 || digit > 9 {
		return s.snapshot()
	}
	s.alert = ""
	s.code += string(rune('0' + digit))
	if len(s.code) < passcodeLen {
		return s.snapshot()
	}

	s.state = StateProcessing
	name, err := s.checkIn(s.code)
	if err != nil {
		s.state = StateInput
		s.code = ""
		if errors.Is(err, errs.ErrNotFound) {
			s.alert = alertUnknownCode
		} else {
			s.alert = alertFailure
		}
		return s.snapshot()
	}

	s.state = StateSuccess
	s.studentName = name
	s.confirm = name + successSuffix
	if s.resetDelay > 0 {
		s.timer = time.AfterFunc(s.resetDelay, s.Reset)
	}
	return s.snapshot()
}

// Backspace drops the last entered digit.
func (s *Session) Backspace() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInput && s.code != "" {
		s.code = s.code[:len(s.code)-1]
	}
	return s.snapshot()
}

// Clear empties the entered code.
func (s *Session) Clear() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInput {
		s.code = ""
	}
	return s.snapshot()
}

// Reset returns the session to a blank input state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.state = StateInput
	s.code = ""
	s.studentName = ""
	s.confirm = ""
	s.alert = ""
}

// State returns the current session snapshot.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		State:       s.state,
		Entered:     len(s.code),
		StudentName: s.studentName,
		Confirm:     s.confirm,
		Alert:       s.alert,
	}
}
