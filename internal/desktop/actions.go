package desktop

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when an image never shows up within the allowed attempts.
var ErrNotFound = errors.New("image not found on screen")

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WaitFor polls l until id appears or timeout elapses. A zero timeout probes once.
func WaitFor(ctx context.Context, l Locator, id string, confidence float64, timeout, interval time.Duration) (Point, bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		at, found, err := l.Locate(ctx, id, confidence)
		if err != nil || found {
			return at, found, err
		}
		if !time.Now().Add(interval).Before(deadline) {
			return Point{}, false, nil
		}
		if err := Sleep(ctx, interval); err != nil {
			return Point{}, false, err
		}
	}
}

// WaitGone polls l until id is no longer visible. It is bounded only by ctx.
func WaitGone(ctx context.Context, l Locator, id string, confidence float64, interval time.Duration) error {
	for {
		_, found, err := l.Locate(ctx, id, confidence)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		if err := Sleep(ctx, interval); err != nil {
			return err
		}
	}
}

// FindClick locates id and clicks it, retrying up to attempts times.
func FindClick(ctx context.Context, s Screen, id string, confidence float64, attempts int, interval time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; i <= attempts; i++ {
		at, found, err := s.Locate(ctx, id, confidence)
		if err != nil {
			return fmt.Errorf("locating %s: %w", id, err)
		}
		if found {
			if err := s.Click(ctx, at); err != nil {
				return fmt.Errorf("clicking %s: %w", id, err)
			}
			return nil
		}
		if i < attempts {
			if err := Sleep(ctx, interval); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("%s: %w", id, ErrNotFound)
}

// FindClickAny clicks the first of ids found on screen, retrying the whole
// list up to attempts times.
func FindClickAny(ctx context.Context, s Screen, ids []string, confidence float64, attempts int, interval time.Duration) error {
	if len(ids) == 0 {
		return fmt.Errorf("empty image list: %w", ErrNotFound)
	}
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; i <= attempts; i++ {
		at, id, found, err := LocateAny(ctx, s, ids, confidence)
		if err != nil {
			return err
		}
		if found {
			if err := s.Click(ctx, at); err != nil {
				return fmt.Errorf("clicking %s: %w", id, err)
			}
			return nil
		}
		if i < attempts {
			if err := Sleep(ctx, interval); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("%v: %w", ids, ErrNotFound)
}

// LocateAny returns the position of the first of ids visible on screen.
func LocateAny(ctx context.Context, l Locator, ids []string, confidence float64) (Point, string, bool, error) {
	for _, id := range ids {
		at, found, err := l.Locate(ctx, id, confidence)
		if err != nil {
			return Point{}, id, false, fmt.Errorf("locating %s: %w", id, err)
		}
		if found {
			return at, id, true, nil
		}
	}
	return Point{}, "", false, nil
}

// ClickConfirm acknowledges a dialog by clicking it and pressing Enter.
type ClickConfirm struct {
	Screen Screen
}

// Acknowledge clicks at and confirms.
func (c ClickConfirm) Acknowledge(ctx context.Context, at Point) error {
	if err := c.Screen.Click(ctx, at); err != nil {
		return fmt.Errorf("click %s: %w", at, err)
	}
	if err := c.Screen.Press(ctx, KeyEnter); err != nil {
		return fmt.Errorf("confirm: %w", err)
	}
	return nil
}
