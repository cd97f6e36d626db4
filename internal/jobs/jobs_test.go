// ABOUTME: Tests for the journey completion scheduler.
// ABOUTME: Uses a fake completer to observe sweeps without a database.
package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeCompleter struct {
	calls atomic.Int32
	ran   chan struct{}
	n     int
	err   error
}

func (f *fakeCompleter) CompleteFinished(ctx context.Context) (int, error) {
	f.calls.Add(1)
	if f.ran != nil {
		select {
		case f.ran <- struct{}{}:
		default:
		}
	}
	return f.n, f.err
}

func TestSweep(t *testing.T) {
	f := &fakeCompleter{n: 3}
	n, err := Sweep(context.Background(), f)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if n != 3 {
		t.Errorf("n = %d, want 3", n)
	}
}

func TestSweepError(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeCompleter{err: boom}
	if _, err := Sweep(context.Background(), f); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestStartRunsImmediately(t *testing.T) {
	f := &fakeCompleter{ran: make(chan struct{}, 1)}
	s, err := Start(f, time.Hour)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = s.Stop() }()

	select {
	case <-f.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep did not run on start")
	}
}
