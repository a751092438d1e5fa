package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestElapsedMillis(t *testing.T) {
	start := time.Now()
	end := start.Add(250 * time.Millisecond)
	require.Equal(t, int64(250), ElapsedMillis(start, end))
}

func TestElapsedMillisNeverNegative(t *testing.T) {
	start := time.Now()
	end := start.Add(-10 * time.Millisecond)
	require.Equal(t, int64(0), ElapsedMillis(start, end))
}

func TestSystemClockAdvances(t *testing.T) {
	a := SystemClock.Now()
	time.Sleep(time.Millisecond)
	b := SystemClock.Now()
	require.True(t, b.After(a))
}
