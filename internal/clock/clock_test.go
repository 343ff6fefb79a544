package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestRealClock_Now(t *testing.T) {
	c := &RealClock{}
	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestFakeClock(t *testing.T) {
	t.Run("fixed", func(t *testing.T) {
		c := NewFakeClock(epoch)
		assert.Equal(t, epoch, c.Now())
		assert.Equal(t, epoch, c.Now())
	})

	t.Run("set and advance", func(t *testing.T) {
		c := NewFakeClock(epoch)
		c.Advance(time.Minute)
		assert.Equal(t, epoch.Add(time.Minute), c.Now())

		later := epoch.Add(24 * time.Hour)
		c.Set(later)
		assert.Equal(t, later, c.Now())
	})

	t.Run("step", func(t *testing.T) {
		c := NewFakeClock(epoch)
		c.SetStep(250 * time.Millisecond)
		assert.Equal(t, epoch, c.Now())
		assert.Equal(t, epoch.Add(250*time.Millisecond), c.Now())
	})
}

func TestSince(t *testing.T) {
	c := NewFakeClock(epoch)
	start := c.Now()
	c.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, Since(c, start))
}
