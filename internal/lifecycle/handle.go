// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package lifecycle

import (
	"sync"
	"sync/atomic"
)

// Handle is the caller-facing view of a running server: a way to observe
// state transitions, request shutdown, and wait for completion. It is
// safe for concurrent use, with two single-use guarantees: Ready and
// StateReceiver share one "observation" slot, whichever is called first
// claims it and the other (or a second call to either) returns
// ErrAlreadyTaken; and Shutdown's effect happens at most once even if
// called repeatedly or concurrently with the server stopping on its own.
type Handle struct {
	stateCh <-chan State
	taken   atomic.Bool

	doneCh   chan struct{}
	shutdown chan Event
	shutOnce sync.Once

	errMu sync.Mutex
	err   error
}

// newHandle wires a Handle around the channels the running state machine
// produces. shutdownOut is the channel Merge reads as its "handle
// shutdown" source.
func newHandle(stateCh <-chan State, shutdownOut chan Event) *Handle {
	return &Handle{
		stateCh:  stateCh,
		doneCh:   make(chan struct{}),
		shutdown: shutdownOut,
	}
}

// StateReceiver claims the single-use subscription to observable lifecycle
// states. The returned channel closes once the state machine terminates,
// after delivering the final Stopped or Errored state (subject to the
// capacity-1 overwrite semantics documented on StateMachine.StateCh).
// Calling StateReceiver a second time, or calling it after Ready, returns
// ErrAlreadyTaken.
func (h *Handle) StateReceiver() (<-chan State, error) {
	if !h.taken.CompareAndSwap(false, true) {
		return nil, ErrAlreadyTaken
	}
	return h.stateCh, nil
}

// Ready claims the single-use subscription and blocks until the state
// machine leaves Startup, returning the first Running, Stopped, or
// Errored state observed. Calling Ready a second time, or calling it
// after StateReceiver, returns ErrAlreadyTaken.
func (h *Handle) Ready() (State, error) {
	if !h.taken.CompareAndSwap(false, true) {
		return State{}, ErrAlreadyTaken
	}
	for s := range h.stateCh {
		if s.Kind != StateStartup {
			return s, nil
		}
	}
	return State{Kind: StateStopped}, nil
}

// Shutdown requests a graceful stop, blocks until the state machine has
// fully terminated, and returns the same result Wait reports. It is safe
// to call more than once, or concurrently with the server terminating on
// its own (e.g. via a Ctrl-C source); only the first call triggers the
// shutdown one-shot, and every call observes the same terminal result.
func (h *Handle) Shutdown() error {
	h.shutOnce.Do(func() {
		select {
		case h.shutdown <- Event{Kind: EventShutdown}:
		default:
		}
		close(h.shutdown)
	})
	return h.Wait()
}

// Wait blocks until the server has fully terminated, returning nil for a
// clean Stopped transition or the error the state machine terminated with
// on Errored. Wait may be called any number of times, including
// concurrently; every caller observes the same result exactly once it is
// available.
func (h *Handle) Wait() error {
	<-h.doneCh
	h.errMu.Lock()
	defer h.errMu.Unlock()
	return h.err
}

// finish records the terminal error (nil on a clean stop) and unblocks
// Wait. It must be called exactly once, by the goroutine driving Run.
func (h *Handle) finish(err error) {
	h.errMu.Lock()
	h.err = err
	h.errMu.Unlock()
	close(h.doneCh)
}
