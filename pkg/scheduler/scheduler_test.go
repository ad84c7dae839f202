package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestScheduleCoalesces(t *testing.T) {
	host := NewManual()
	renders := 0
	s := New(host, func() error {
		renders++
		return nil
	})

	if !s.Schedule() {
		t.Fatal("first Schedule should request a frame")
	}
	if s.Schedule() || s.Schedule() {
		t.Fatal("Schedule while scheduled should be absorbed")
	}
	if host.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", host.Pending())
	}

	host.Tick()

	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}
	if s.State() != Idle {
		t.Errorf("State = %s, want idle", s.State())
	}
	st := s.Stats()
	if st.Requested != 1 || st.Coalesced != 2 || st.Fired != 1 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestScheduleDuringRenderRequestsNewFrame(t *testing.T) {
	host := NewManual()
	var s *Scheduler
	renders := 0
	s = New(host, func() error {
		renders++
		if renders == 1 {
			s.Schedule()
		}
		return nil
	})

	s.Schedule()
	host.Tick()
	if host.Pending() != 1 {
		t.Fatalf("Pending = %d after re-schedule, want 1", host.Pending())
	}
	host.Tick()

	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
}

func TestCancel(t *testing.T) {
	host := NewManual()
	renders := 0
	s := New(host, func() error {
		renders++
		return nil
	})

	if s.Cancel() {
		t.Error("Cancel on idle scheduler should report false")
	}
	s.Schedule()
	if !s.Cancel() {
		t.Error("Cancel with pending frame should report true")
	}
	host.Tick()

	if renders != 0 {
		t.Errorf("renders = %d after cancel, want 0", renders)
	}
}

func TestCancelWithHostThatCannotCancel(t *testing.T) {
	var queued []func()
	host := HostFunc(func(fn func()) func() {
		queued = append(queued, fn)
		return func() {}
	})
	renders := 0
	s := New(host, func() error {
		renders++
		return nil
	})

	s.Schedule()
	s.Cancel()
	s.Schedule()
	for _, fn := range queued {
		fn()
	}

	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}
}

func TestRenderErrorGoesToHandler(t *testing.T) {
	host := NewManual()
	boom := errors.New("boom")
	var got error
	s := New(host, func() error { return boom }, WithErrorHandler(func(err error) { got = err }))

	s.Schedule()
	host.Tick()

	if !errors.Is(got, boom) {
		t.Errorf("handler got %v, want boom", got)
	}
	if s.Stats().Failed != 1 {
		t.Errorf("Failed = %d, want 1", s.Stats().Failed)
	}
}

// Any burst of schedule requests between two frames yields exactly one
// render on the next frame, and none when the burst is empty.
func TestCoalescingProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("one render per non-empty burst", prop.ForAll(
		func(bursts []uint8) bool {
			host := NewManual()
			renders := 0
			s := New(host, func() error {
				renders++
				return nil
			})

			want := 0
			for _, n := range bursts {
				for i := 0; i < int(n%8); i++ {
					s.Schedule()
				}
				if n%8 > 0 {
					want++
				}
				host.Tick()
				if renders != want {
					return false
				}
			}
			return s.State() == Idle
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}

func TestTicker(t *testing.T) {
	ticker := NewTicker(1000)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	renders := make(chan int, 1)
	count := 0
	var s *Scheduler
	s = New(ticker, func() error {
		count++
		select {
		case renders <- count:
		default:
		}
		return nil
	})

	errc := make(chan error, 1)
	go func() { errc <- ticker.Run(ctx) }()

	for i := 0; i < 3; i++ {
		if err := ticker.Post(func() { s.Schedule() }); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-renders:
	case <-ctx.Done():
		t.Fatal("no frame fired")
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
	if err := ticker.Post(func() {}); !errors.Is(err, ErrTickerStopped) {
		t.Errorf("Post after stop = %v, want ErrTickerStopped", err)
	}
	if err := ticker.Run(context.Background()); !errors.Is(err, ErrTickerStopped) {
		t.Errorf("second Run = %v, want ErrTickerStopped", err)
	}
}
