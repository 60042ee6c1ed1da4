package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
)

func TestAttemptsSucceedsAfterFailures(t *testing.T) {
	log, hook := test.NewNullLogger()
	calls := 0
	got, err := Attempts(context.Background(), log, 3, time.Millisecond, func(_ context.Context, attempt int) (string, error) {
		calls++
		if attempt < 3 {
			return "", errors.New("login failed")
		}
		return "done", nil
	})
	if err != nil || got != "done" {
		t.Fatalf("Attempts() = %q, %v", got, err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if n := len(hook.AllEntries()); n < 5 {
		t.Errorf("logged %d entries, want attempts and failures", n)
	}
}

func TestAttemptsExhausted(t *testing.T) {
	log, _ := test.NewNullLogger()
	boom := errors.New("screen not found")
	calls := 0
	_, err := Attempts(context.Background(), log, 3, time.Millisecond, func(context.Context, int) (int, error) {
		calls++
		return 0, boom
	})
	if !errors.Is(err, ErrAttemptsExhausted) || !errors.Is(err, boom) {
		t.Fatalf("Attempts() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestAttemptsPermanent(t *testing.T) {
	log, _ := test.NewNullLogger()
	boom := errors.New("unknown system")
	calls := 0
	_, err := Attempts(context.Background(), log, 3, time.Millisecond, func(context.Context, int) (int, error) {
		calls++
		return 0, Permanent(boom)
	})
	if !errors.Is(err, boom) || errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("Attempts() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestAttemptsStopsOnCancel(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Attempts(ctx, log, 5, time.Hour, func(context.Context, int) (int, error) {
		calls++
		cancel()
		return 0, errors.New("fail")
	})
	if err == nil {
		t.Fatal("Attempts() succeeded")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTimed(t *testing.T) {
	log, hook := test.NewNullLogger()
	boom := errors.New("x")
	if err := Timed(log, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Timed() error = %v", err)
	}
	if len(hook.AllEntries()) != 3 {
		t.Errorf("logged %d entries, want 3", len(hook.AllEntries()))
	}
}

func TestFormatElapsed(t *testing.T) {
	got := FormatElapsed(time.Hour + 2*time.Minute + 3*time.Second + 400*time.Millisecond)
	if want := "Total time: 01 hour(s), 02 minute(s) and 03 second(s)"; got != want {
		t.Errorf("FormatElapsed() = %q, want %q", got, want)
	}
}
