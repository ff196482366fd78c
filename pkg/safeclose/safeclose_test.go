package safeclose

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWaitClosedWaitsForAttached(t *testing.T) {
	sc := New()
	var finished int32

	for i := 0; i < 3; i++ {
		sc.Attach(func(done func(), closeSignal <-chan struct{}) {
			defer done()
			<-closeSignal
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&finished, 1)
		})
	}

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
	require.EqualValues(t, 3, atomic.LoadInt32(&finished))
}

func TestFirstCloseErrorWins(t *testing.T) {
	sc := New()
	first := errors.New("first")

	sc.SendCloseSignal(first)
	sc.SendCloseSignal(errors.New("second"))

	require.Equal(t, first, sc.WaitClosed())
}

func TestReceiveCloseSignal(t *testing.T) {
	sc := New()

	select {
	case <-sc.ReceiveCloseSignal():
		t.Fatal("close signal fired early")
	default:
	}

	sc.SendCloseSignal(nil)
	select {
	case <-sc.ReceiveCloseSignal():
	case <-time.After(time.Second):
		t.Fatal("close signal never fired")
	}
}
