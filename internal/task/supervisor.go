// Package task runs background units of work (saves, loads, the update
// check) and reports each one back as exactly one completion message. The
// engine's loop is the only consumer; no shared mutable state crosses the
// boundary, only the payload values the tasks themselves produce.
package task

import "sync"

type Kind string

const (
	KindSave        Kind = "save"
	KindLoad        Kind = "load"
	KindUpdateCheck Kind = "update-check"
)

// Completion is the single terminal message of a dispatched task: either
// Payload is meaningful, or Err is set. Never both streaming nor partial.
type Completion struct {
	Kind    Kind
	Payload any
	Err     error
}

type Supervisor struct {
	mu          sync.Mutex
	inFlight    map[Kind]bool
	completions chan Completion
}

func NewSupervisor(buffer int) *Supervisor {
	if buffer <= 0 {
		buffer = 16
	}
	return &Supervisor{
		inFlight:    map[Kind]bool{},
		completions: make(chan Completion, buffer),
	}
}

// Completions is consumed only inside the main event loop.
func (s *Supervisor) Completions() <-chan Completion {
	return s.completions
}

// Dispatch starts fn on its own goroutine and reports false when a task of
// the same kind is already in flight. A coalesced request is satisfied by
// the pending task's completion; this is what keeps two saves from racing
// on the same file.
func (s *Supervisor) Dispatch(kind Kind, fn func() (any, error)) bool {
	s.mu.Lock()
	if s.inFlight[kind] {
		s.mu.Unlock()
		return false
	}
	s.inFlight[kind] = true
	s.mu.Unlock()

	go func() {
		payload, err := fn()
		s.mu.Lock()
		delete(s.inFlight, kind)
		s.mu.Unlock()
		s.completions <- Completion{Kind: kind, Payload: payload, Err: err}
	}()
	return true
}

// InFlight reports whether a task of the given kind is currently running.
func (s *Supervisor) InFlight(kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[kind]
}
