// Package notify prints transient user-facing messages.
package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/freelance-desk/internal/apiclient"
)

// Kind is the severity of a notification.
type Kind string

// Notification kinds.
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// DefaultTTL is how long a notification stays active.
const DefaultTTL = 5 * time.Second

var icons = map[Kind]string{
	KindSuccess: "✓",
	KindError:   "✗",
	KindWarning: "!",
	KindInfo:    "i",
}

var colors = map[Kind]lipgloss.Color{
	KindSuccess: lipgloss.Color("#2e7d32"),
	KindError:   lipgloss.Color("#d16d7a"),
	KindWarning: lipgloss.Color("#f39c12"),
	KindInfo:    lipgloss.Color("#5f9fb0"),
}

// Notification is one shown message.
type Notification struct {
	ID        int
	Kind      Kind
	Message   string
	ShownAt   time.Time
	ExpiresAt time.Time
}

// Notifier writes styled notifications and tracks which are still live.
type Notifier struct {
	mu     sync.Mutex
	out    io.Writer
	styles map[Kind]lipgloss.Style
	ttl    time.Duration
	now    func() time.Time
	nextID int
	active []Notification
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithClock sets the clock used for expiry.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(n *Notifier) {
		n.ttl = ttl
	}
}

// New creates a notifier writing to out. Colour support is detected from out.
func New(out io.Writer, opts ...Option) *Notifier {
	n := &Notifier{
		out: out,
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}

	r := lipgloss.NewRenderer(out)
	n.styles = make(map[Kind]lipgloss.Style, len(colors))
	for kind, color := range colors {
		n.styles[kind] = r.NewStyle().Foreground(color).Bold(true)
	}
	return n
}

// Show prints a message and records it as active.
func (n *Notifier) Show(kind Kind, message string) Notification {
	if _, ok := icons[kind]; !ok {
		kind = KindInfo
	}
	message = strings.TrimSpace(message)

	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	n.nextID++
	note := Notification{
		ID:        n.nextID,
		Kind:      kind,
		Message:   message,
		ShownAt:   now,
		ExpiresAt: now.Add(n.ttl),
	}
	n.prune(now)
	n.active = append(n.active, note)

	if n.out != nil {
		_, _ = fmt.Fprintf(n.out, "%s %s\n", n.styles[kind].Render(icons[kind]), message)
	}
	return note
}

// Success shows a success notification.
func (n *Notifier) Success(message string) Notification {
	return n.Show(KindSuccess, message)
}

// Error shows an error notification.
func (n *Notifier) Error(message string) Notification {
	return n.Show(KindError, message)
}

// Warning shows a warning notification.
func (n *Notifier) Warning(message string) Notification {
	return n.Show(KindWarning, message)
}

// Info shows an informational notification.
func (n *Notifier) Info(message string) Notification {
	return n.Show(KindInfo, message)
}

// Active returns the notifications that have not expired, oldest first.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.prune(n.now())
	out := make([]Notification, len(n.active))
	copy(out, n.active)
	return out
}

// Dismiss removes a notification before it expires.
func (n *Notifier) Dismiss(id int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, note := range n.active {
		if note.ID == id {
			n.active = append(n.active[:i], n.active[i+1:]...)
			return true
		}
	}
	return false
}

// APIError shows err as an error notification and returns the message
// shown. Errors not raised by the API client are shown as fallback.
func (n *Notifier) APIError(err error, fallback string) string {
	msg := apiclient.Message(err, fallback)
	if msg == "" {
		msg = "Something went wrong"
	}
	n.Error(msg)
	return msg
}

// prune drops expired notifications. Callers hold mu.
func (n *Notifier) prune(now time.Time) {
	live := n.active[:0]
	for _, note := range n.active {
		if now.Before(note.ExpiresAt) {
			live = append(live, note)
		}
	}
	n.active = live
}
