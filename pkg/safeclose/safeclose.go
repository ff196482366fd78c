// Package safeclose coordinates the shutdown of long-running goroutines.
// Components attach themselves and receive a shared close signal; the
// owner waits until every attached goroutine reports done.
package safeclose

import "sync"

// SafeClose fans a single close signal out to attached goroutines.
type SafeClose struct {
	mu      sync.Mutex
	closed  bool
	err     error
	closeCh chan struct{}
	wg      sync.WaitGroup
}

func New() *SafeClose {
	return &SafeClose{closeCh: make(chan struct{})}
}

// Attach starts fn in its own goroutine. fn must call done exactly once
// when it finishes and should return promptly after closeSignal fires.
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go fn(func() { s.wg.Done() }, s.closeCh)
}

// SendCloseSignal closes the shared signal. The first call wins; the
// first non-nil err is kept and returned by WaitClosed.
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeCh)
}

// ReceiveCloseSignal returns the channel that fires on shutdown.
func (s *SafeClose) ReceiveCloseSignal() <-chan struct{} {
	return s.closeCh
}

// WaitClosed blocks until the close signal fired and every attached
// goroutine called done, then returns the close error if any.
func (s *SafeClose) WaitClosed() error {
	<-s.closeCh
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
