// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify keeps the short-lived notifications shown to the user.
// Each notification removes itself after a fixed TTL; nothing cancels a
// pending notification early.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Level classifies a notification.
type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Error   Level = "error"
)

// Notification is one visible message.
type Notification struct {
	ID      uint64
	Level   Level
	Message string
	Posted  time.Time
}

// Center holds the live notifications. It is safe for concurrent use.
type Center struct {
	ttl    time.Duration
	logger *slog.Logger

	mu     sync.Mutex
	nextID uint64
	live   []Notification
	// onChange is called without the lock held after every post or expiry.
	onChange func()
}

// NewCenter returns a Center whose notifications expire after ttl.
func NewCenter(ttl time.Duration, logger *slog.Logger) *Center {
	if logger == nil {
		logger = slog.Default()
	}
	return &Center{ttl: ttl, logger: logger}
}

// TTL returns the notification lifetime.
func (c *Center) TTL() time.Duration { return c.ttl }

// OnChange registers fn to run after a notification is posted or expires.
func (c *Center) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Post adds a notification and schedules its removal.
func (c *Center) Post(level Level, message string) Notification {
	c.mu.Lock()
	c.nextID++
	n := Notification{ID: c.nextID, Level: level, Message: message, Posted: time.Now()}
	c.live = append(c.live, n)
	fn := c.onChange
	c.mu.Unlock()

	if level == Error {
		c.logger.Warn("notification", "level", string(level), "message", message)
	} else {
		c.logger.Info("notification", "level", string(level), "message", message)
	}

	time.AfterFunc(c.ttl, func() { c.expire(n.ID) })
	if fn != nil {
		fn()
	}
	return n
}

// Active returns the live notifications, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.live))
	copy(out, c.live)
	return out
}

func (c *Center) expire(id uint64) {
	c.mu.Lock()
	for i, n := range c.live {
		if n.ID == id {
			c.live = append(c.live[:i], c.live[i+1:]...)
			break
		}
	}
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}
