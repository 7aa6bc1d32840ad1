// Package notify delivers transient user-facing notices. Notices are
// advisory: dropping one never loses ledger state, which always comes
// back through a refresh.
package notify

import (
	"sync"
	"time"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Default display durations, matching the original client behaviour.
const (
	DefaultDuration = 4 * time.Second
	ShortDuration   = 2 * time.Second
)

// Sink receives user-facing notices.
type Sink interface {
	Notify(message string, severity Severity, duration time.Duration)
}

// Toaster shows at most one notice at a time. A new notice replaces
// the current one immediately and restarts the dismissal clock.
type Toaster struct {
	mu      sync.Mutex
	message string
	sev     Severity
	shown   bool
	timer   *time.Timer
}

func NewToaster() *Toaster {
	return &Toaster{}
}

func (t *Toaster) Notify(message string, severity Severity, duration time.Duration) {
	if duration <= 0 {
		duration = DefaultDuration
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.message = message
	t.sev = severity
	t.shown = true
	t.timer = time.AfterFunc(duration, func() { t.dismiss(message) })
}

// Current returns the displayed notice, if any.
func (t *Toaster) Current() (string, Severity, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message, t.sev, t.shown
}

// Dismiss clears the displayed notice ahead of its timer.
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.message = ""
	t.shown = false
}

// dismiss only clears the notice it was armed for; a replacement that
// raced the timer stays up for its own full duration.
func (t *Toaster) dismiss(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.shown || t.message != message {
		return
	}
	t.message = ""
	t.shown = false
	t.timer = nil
}

// ConsoleSink prints notices to the session log for CLI use, where
// there is no surface for a toast to live on.
type ConsoleSink struct{}

func (ConsoleSink) Notify(message string, severity Severity, duration time.Duration) {
	switch severity {
	case SeverityError:
		logx.Error("NOTIFY", message)
	default:
		logx.Info("NOTIFY", message)
	}
}
