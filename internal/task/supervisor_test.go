package task

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Completion) Completion {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a completion")
		return Completion{}
	}
}

func TestDispatchDeliversExactlyOneCompletion(t *testing.T) {
	s := NewSupervisor(0)
	started := s.Dispatch(KindSave, func() (any, error) { return "done", nil })
	require.True(t, started)

	c := receive(t, s.Completions())
	require.Equal(t, KindSave, c.Kind)
	require.Equal(t, "done", c.Payload)
	require.NoError(t, c.Err)

	select {
	case extra := <-s.Completions():
		t.Fatalf("unexpected second completion: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDispatchReportsFailure(t *testing.T) {
	s := NewSupervisor(0)
	boom := errors.New("disk full")
	require.True(t, s.Dispatch(KindSave, func() (any, error) { return nil, boom }))

	c := receive(t, s.Completions())
	require.ErrorIs(t, c.Err, boom)
	require.Nil(t, c.Payload)
}

func TestSameKindCoalescesWhileInFlight(t *testing.T) {
	s := NewSupervisor(0)
	release := make(chan struct{})

	require.True(t, s.Dispatch(KindSave, func() (any, error) {
		<-release
		return nil, nil
	}))
	require.True(t, s.InFlight(KindSave))

	// A second request of the same kind is absorbed by the pending one.
	require.False(t, s.Dispatch(KindSave, func() (any, error) {
		t.Error("coalesced task must never run")
		return nil, nil
	}))

	// A different kind runs concurrently.
	require.True(t, s.Dispatch(KindLoad, func() (any, error) { return nil, nil }))

	close(release)
	kinds := map[Kind]int{}
	for i := 0; i < 2; i++ {
		kinds[receive(t, s.Completions()).Kind]++
	}
	require.Equal(t, map[Kind]int{KindSave: 1, KindLoad: 1}, kinds)
	require.False(t, s.InFlight(KindSave))
}

func TestDispatchAllowsSameKindAfterCompletion(t *testing.T) {
	s := NewSupervisor(0)
	var mu sync.Mutex
	runs := 0
	run := func() (any, error) {
		mu.Lock()
		runs++
		mu.Unlock()
		return nil, nil
	}

	require.True(t, s.Dispatch(KindSave, run))
	receive(t, s.Completions())
	require.True(t, s.Dispatch(KindSave, run))
	receive(t, s.Completions())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 2, runs)
}
