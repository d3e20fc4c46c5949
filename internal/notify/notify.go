// Package notify is the console's transient notification center.
// Notifications dismiss themselves after a fixed time unless the user
// dismisses them first; each one owns a cancellable timer, so a manual
// dismissal never leaves a dangling callback behind.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DefaultTTL is how long a notification stays up before it dismisses
// itself.
const DefaultTTL = 5 * time.Second

// Notification is one message shown to the user.
type Notification struct {
	ID      string
	Level   Level
	Message string
	Created time.Time
}

type entry struct {
	Notification
	timer *time.Timer
}

// Center holds the currently visible notifications. Safe for
// concurrent use.
type Center struct {
	mu    sync.Mutex
	items map[string]*entry
	ttl   time.Duration
}

// NewCenter creates a Center. A non-positive ttl falls back to
// DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{items: make(map[string]*entry), ttl: ttl}
}

// Push adds a notification and schedules its auto-dismissal. The
// returned id can be used to dismiss it early.
func (c *Center) Push(level Level, message string) string {
	id := uuid.NewString()

	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry{Notification: Notification{
		ID:      id,
		Level:   level,
		Message: message,
		Created: time.Now(),
	}}
	e.timer = time.AfterFunc(c.ttl, func() { c.Dismiss(id) })
	c.items[id] = e

	return id
}

// Dismiss removes a notification and cancels its timer. It reports
// whether the notification was still present; dismissing twice, or
// racing the auto-dismissal, is harmless.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[id]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(c.items, id)
	return true
}

// Active returns the visible notifications, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, 0, len(c.items))
	for _, e := range c.items {
		out = append(out, e.Notification)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out
}

// Close cancels every pending timer. Used at shutdown.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, e := range c.items {
		e.timer.Stop()
		delete(c.items, id)
	}
}
