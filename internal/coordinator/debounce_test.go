package coordinator

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestDebouncerOnlyLastScheduledFires(t *testing.T) {
	d := NewDebouncer()
	var first, last int32

	d.Schedule(20*time.Millisecond, func() { atomic.AddInt32(&first, 1) })
	d.Schedule(20*time.Millisecond, func() { atomic.AddInt32(&last, 1) })

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&last) == 1
	}, time.Second, 5*time.Millisecond)
	require.EqualValues(t, 0, atomic.LoadInt32(&first))
	require.False(t, d.Armed())
}

func TestDebouncerRescheduleRestartsDelay(t *testing.T) {
	d := NewDebouncer()
	var fired int32

	// Keep rescheduling faster than the delay; nothing may fire while
	// the burst is running.
	for i := 0; i < 5; i++ {
		d.Schedule(50*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })
		time.Sleep(10 * time.Millisecond)
		require.EqualValues(t, 0, atomic.LoadInt32(&fired))
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer()
	var fired int32

	d.Schedule(20*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })
	d.Cancel()
	require.False(t, d.Armed())

	time.Sleep(60 * time.Millisecond)
	require.EqualValues(t, 0, atomic.LoadInt32(&fired))

	// Cancel on an idle debouncer is a no-op.
	d.Cancel()
}

func TestDebouncerFireNow(t *testing.T) {
	d := NewDebouncer()
	var fired int32

	d.FireNow()
	require.EqualValues(t, 0, atomic.LoadInt32(&fired))

	d.Schedule(time.Hour, func() { atomic.AddInt32(&fired, 1) })
	d.FireNow()
	require.EqualValues(t, 1, atomic.LoadInt32(&fired))
	require.False(t, d.Armed())

	// The stopped timer must not fire the action a second time.
	time.Sleep(30 * time.Millisecond)
	require.EqualValues(t, 1, atomic.LoadInt32(&fired))
}

func TestDebouncerProperty_ExactlyOneFirePerBurst(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)

	properties.Property("a burst of schedules fires exactly once", prop.ForAll(
		func(n int) bool {
			d := NewDebouncer()
			var fired int32
			for i := 0; i < n; i++ {
				d.Schedule(5*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })
			}
			deadline := time.Now().Add(time.Second)
			for atomic.LoadInt32(&fired) == 0 && time.Now().Before(deadline) {
				time.Sleep(time.Millisecond)
			}
			time.Sleep(20 * time.Millisecond)
			return atomic.LoadInt32(&fired) == 1
		},
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}
