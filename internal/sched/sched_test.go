package sched

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualRunsInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	m.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	m.AfterFunc(200*time.Millisecond, func() { got = append(got, "b") })

	m.Advance(150 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 150*time.Millisecond, m.Now())

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, m.Pending())
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	ran := false
	tm := m.AfterFunc(time.Second, func() { ran = true })
	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	m.Advance(2 * time.Second)
	assert.False(t, ran)
}

func TestManualChainedCallbacks(t *testing.T) {
	m := NewManual()
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 3 {
			m.AfterFunc(time.Second, tick)
		}
	}
	m.AfterFunc(time.Second, tick)

	m.Advance(2 * time.Second)
	assert.Equal(t, 2, ticks)
	m.Advance(5 * time.Second)
	assert.Equal(t, 3, ticks)
}

func TestClockFires(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	Clock{}.AfterFunc(time.Millisecond, wg.Done)

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "clock callback did not fire")
	}
}
