package planner

import (
	"sync"
	"time"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

const (
	DefaultNotificationDuration = 4 * time.Second
	DefaultErrorDuration        = 5 * time.Second
)

// Notifier holds at most one notification. Showing a new one replaces the
// current one and its dismiss timer.
type Notifier struct {
	mu            sync.Mutex
	current       *types.Notification
	timer         *time.Timer
	seq           uint64
	duration      time.Duration
	errorDuration time.Duration
	now           func() time.Time
}

func NewNotifier(duration, errorDuration time.Duration) *Notifier {
	if duration <= 0 {
		duration = DefaultNotificationDuration
	}
	if errorDuration <= 0 {
		errorDuration = DefaultErrorDuration
	}
	return &Notifier{
		duration:      duration,
		errorDuration: errorDuration,
		now:           time.Now,
	}
}

func (n *Notifier) Show(kind types.NotificationKind, message string) {
	d := n.duration
	if kind == types.NotificationError {
		d = n.errorDuration
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
	n.seq++
	seq := n.seq
	n.current = &types.Notification{Kind: kind, Message: message, ExpiresAt: n.now().Add(d)}
	n.timer = time.AfterFunc(d, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.seq == seq {
			n.current = nil
			n.timer = nil
		}
	})
}

// ShowNotice displays a notice produced elsewhere, e.g. by geocoding.
func (n *Notifier) ShowNotice(notice *types.Notification) {
	if notice == nil {
		return
	}
	n.Show(notice.Kind, notice.Message)
}

func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
	n.seq++
	n.current = nil
}

func (n *Notifier) Current() *types.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	c := *n.current
	return &c
}

func (n *Notifier) stopLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
