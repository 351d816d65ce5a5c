package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimer_Mark(t *testing.T) {
	timer := NewTimer()

	d := timer.Mark("first")
	assert.GreaterOrEqual(t, d, time.Duration(0))

	got, ok := timer.Get("first")
	assert.True(t, ok)
	assert.Equal(t, d, got)

	_, ok = timer.Get("missing")
	assert.False(t, ok)
}

func TestTimer_Elapsed(t *testing.T) {
	timer := NewTimer()
	time.Sleep(time.Millisecond)
	assert.Greater(t, timer.Elapsed(), time.Duration(0))
}

func TestTimer_Summary(t *testing.T) {
	timer := NewTimer()
	assert.Contains(t, timer.Summary(), "Total:")

	timer.Mark("assemble")
	timer.Mark("optimize")

	summary := timer.Summary()
	assert.Contains(t, summary, "assemble")
	assert.Contains(t, summary, "optimize")
}
