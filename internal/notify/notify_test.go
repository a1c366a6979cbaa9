// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPostAndActive(t *testing.T) {
	c := NewCenter(time.Hour, quietLogger())

	first := c.Post(Success, "saved")
	second := c.Post(Error, "failed")

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)
	assert.Equal(t, Error, active[1].Level)
	assert.Equal(t, "failed", active[1].Message)
}

func TestExpiry(t *testing.T) {
	c := NewCenter(20*time.Millisecond, quietLogger())
	c.Post(Info, "short-lived")
	require.Len(t, c.Active(), 1)

	assert.Eventually(t, func() bool { return len(c.Active()) == 0 },
		time.Second, 5*time.Millisecond)
}

func TestExpiryIsPerNotification(t *testing.T) {
	c := NewCenter(150*time.Millisecond, quietLogger())
	c.Post(Info, "first")
	time.Sleep(100 * time.Millisecond)
	c.Post(Info, "second")

	assert.Eventually(t, func() bool {
		active := c.Active()
		return len(active) == 1 && active[0].Message == "second"
	}, time.Second, 2*time.Millisecond)
}

func TestOnChange(t *testing.T) {
	var calls int32
	c := NewCenter(10*time.Millisecond, quietLogger())
	c.OnChange(func() { atomic.AddInt32(&calls, 1) })

	c.Post(Info, "hello")
	// One call for the post, one for the expiry.
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 2 },
		time.Second, 5*time.Millisecond)
}

func TestActiveReturnsCopy(t *testing.T) {
	c := NewCenter(time.Hour, quietLogger())
	c.Post(Info, "one")

	active := c.Active()
	active[0].Message = "mutated"
	assert.Equal(t, "one", c.Active()[0].Message)
}
