package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllowsUpToMaxHits(t *testing.T) {
	l := NewLimiter(time.Minute, 3)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// Other keys have their own budget
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestLimiterExpiresOldHits(t *testing.T) {
	current := time.Now()
	l := NewLimiter(time.Minute, 2)
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	current = current.Add(61 * time.Second)
	assert.True(t, l.Allow("10.0.0.1"))
}
