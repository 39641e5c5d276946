package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// DefaultTTL matches the toast duration of the web dashboards.
const DefaultTTL = 2200 * time.Millisecond

type Message struct {
	Text string
	Kind Kind
}

// Notifier is a single-slot transient notification channel. A new message
// preempts whatever is currently displayed; the slot clears itself after TTL.
type Notifier struct {
	mu       sync.Mutex
	current  *Message
	timer    *time.Timer
	ttl      time.Duration
	onChange func(*Message)
}

func New() *Notifier {
	return NewWithTTL(DefaultTTL)
}

func NewWithTTL(ttl time.Duration) *Notifier {
	return &Notifier{ttl: ttl}
}

// OnChange registers a render callback, invoked with the new message or nil
// when the slot expires. Must be set before use, not swapped mid-flight.
func (n *Notifier) OnChange(fn func(*Message)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onChange = fn
}

func (n *Notifier) Show(text string, kind Kind) {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	msg := &Message{Text: text, Kind: kind}
	n.current = msg
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(msg) })
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(msg)
	}
}

func (n *Notifier) Successf(text string) { n.Show(text, Success) }
func (n *Notifier) Errorf(text string)   { n.Show(text, Error) }
func (n *Notifier) Infof(text string)    { n.Show(text, Info) }

// Current returns the displayed message, nil when the slot is empty.
func (n *Notifier) Current() *Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Notifier) expire(msg *Message) {
	n.mu.Lock()
	// A newer message may have taken the slot already.
	if n.current != msg {
		n.mu.Unlock()
		return
	}
	n.current = nil
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(nil)
	}
}
