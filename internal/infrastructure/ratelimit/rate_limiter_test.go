package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerMinuteBurstThenBlock(t *testing.T) {
	l := PerMinute(3)
	now := time.Now()
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("u1")
		assert.True(t, ok, "request %d", i)
	}

	ok, wait := l.Allow("u1")
	assert.False(t, ok)
	assert.InDelta(t, float64(20*time.Second), float64(wait), float64(time.Second))

	ok, _ = l.Allow("u2")
	assert.True(t, ok, "keys are independent")

	now = now.Add(21 * time.Second)
	ok, _ = l.Allow("u1")
	assert.True(t, ok, "token refilled")
}

func TestCleanup(t *testing.T) {
	l := PerMinute(5)
	now := time.Now()
	l.now = func() time.Time { return now }

	l.Allow("idle")
	now = now.Add(2 * time.Hour)
	l.Allow("active")

	assert.Equal(t, 1, l.Cleanup(time.Hour))
}
