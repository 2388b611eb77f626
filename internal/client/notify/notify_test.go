package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCenter() (*Center, *clock) {
	clk := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewCenter(WithClock(clk.now), WithDuration(5*time.Second)), clk
}

func TestCenter_ExpiresAfterDuration(t *testing.T) {
	c, clk := newTestCenter()
	c.Error("Failed to load chats", "server down")

	require.Len(t, c.Active(), 1)

	clk.t = clk.t.Add(4999 * time.Millisecond)
	assert.Len(t, c.Active(), 1)

	clk.t = clk.t.Add(time.Millisecond)
	assert.Empty(t, c.Active())
}

func TestCenter_DrainDeliversOnce(t *testing.T) {
	c, _ := newTestCenter()
	first := c.Error("a", "")
	got := c.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Empty(t, c.Drain())

	c.Success("b", "")
	got = c.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Title)
	assert.Len(t, c.Active(), 2)
}

func TestCenter_Dismiss(t *testing.T) {
	c, _ := newTestCenter()
	n := c.Notify(KindInfo, "x", "")
	c.Notify(KindInfo, "y", "")

	assert.True(t, c.Dismiss(n.ID))
	assert.False(t, c.Dismiss(n.ID))

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "y", active[0].Title)
}

func TestRender_ContainsTitleAndDescription(t *testing.T) {
	out := Render(Notification{Kind: KindError, Title: "Failed to send message", Description: "try again"}, 60)
	assert.Contains(t, out, "Failed to send message")
	assert.Contains(t, out, "try again")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "info", Kind(42).String())
}
