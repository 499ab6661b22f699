package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC)
	clk := NewMockClock(start)
	assert.Equal(t, start, clk.Now())

	clk.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clk.Now())

	clk.Set(start)
	assert.Equal(t, start, clk.Now())
}

func TestRealClockIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewRealClock().Now().Location())
}

func TestAtOrNow(t *testing.T) {
	now := time.Date(2025, 11, 28, 12, 0, 0, 0, time.UTC)
	clk := NewMockClock(now)

	assert.Equal(t, now, AtOrNow(clk, nil))
	assert.Equal(t, now, AtOrNow(clk, &time.Time{}))

	at := time.Date(2025, 12, 1, 9, 0, 0, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, at.UTC(), AtOrNow(clk, &at))
	assert.Equal(t, time.UTC, AtOrNow(clk, &at).Location())
}
