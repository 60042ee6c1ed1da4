// Package robot implements the desktop interfaces with robotgo.
package robot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/nexconsult/receitanet-bx/internal/desktop"
)

// DefaultFrameTTL is how long a captured frame is reused by concurrent
// lookups before the screen is captured again.
const DefaultFrameTTL = 100 * time.Millisecond

// Screen is the desktop.Screen backed by robotgo.
type Screen struct {
	templates *desktop.Templates
	matcher   desktop.Matcher
	frameTTL  time.Duration
	capture   func() (image.Image, error)

	frameMu    sync.Mutex
	frame      image.Image
	capturedAt time.Time

	// robotgo input is process global; one gesture at a time.
	inputMu sync.Mutex
}

var (
	_ desktop.Screen = (*Screen)(nil)
	_ desktop.Window = Window{}
)

// NewScreen creates a screen that matches images from templates.
func NewScreen(templates *desktop.Templates, matcher desktop.Matcher) *Screen {
	return &Screen{
		templates: templates,
		matcher:   matcher,
		frameTTL:  DefaultFrameTTL,
		capture:   captureScreen,
	}
}

func captureScreen() (image.Image, error) {
	bitmap := robotgo.CaptureScreen()
	if bitmap == nil {
		return nil, errors.New("screen capture returned no bitmap")
	}
	defer robotgo.FreeBitmap(bitmap)
	return desktop.ToRGBA(robotgo.ToImage(bitmap)), nil
}

func (s *Screen) currentFrame() (image.Image, error) {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()

	if s.frame != nil && time.Since(s.capturedAt) < s.frameTTL {
		return s.frame, nil
	}
	frame, err := s.capture()
	if err != nil {
		return nil, err
	}
	s.frame = frame
	s.capturedAt = time.Now()
	return frame, nil
}

// Locate captures the screen (or reuses a fresh frame) and searches for id.
func (s *Screen) Locate(ctx context.Context, id string, confidence float64) (desktop.Point, bool, error) {
	if err := ctx.Err(); err != nil {
		return desktop.Point{}, false, err
	}
	tpl, ok := s.templates.Get(id)
	if !ok {
		return desktop.Point{}, false, fmt.Errorf("%s: %w", id, desktop.ErrUnknownTemplate)
	}
	frame, err := s.currentFrame()
	if err != nil {
		return desktop.Point{}, false, err
	}
	at, found := s.matcher.MatchIn(frame, tpl, s.templates.SearchRect(id, frame.Bounds()), confidence)
	return at, found, nil
}

func (s *Screen) Click(ctx context.Context, at desktop.Point) error {
	return s.click(ctx, at, false)
}

func (s *Screen) DoubleClick(ctx context.Context, at desktop.Point) error {
	return s.click(ctx, at, true)
}

func (s *Screen) click(ctx context.Context, at desktop.Point, double bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.inputMu.Lock()
	defer s.inputMu.Unlock()
	robotgo.Move(at.X, at.Y)
	robotgo.Click("left", double)
	return nil
}

func (s *Screen) Press(ctx context.Context, key string, modifiers ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	args := make([]interface{}, len(modifiers))
	for i, m := range modifiers {
		args[i] = m
	}
	s.inputMu.Lock()
	defer s.inputMu.Unlock()
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("key %s: %w", key, err)
	}
	return nil
}

func (s *Screen) Type(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.inputMu.Lock()
	defer s.inputMu.Unlock()
	robotgo.TypeStr(text)
	return nil
}

// Paste puts text on the clipboard and sends ctrl+v.
func (s *Screen) Paste(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.inputMu.Lock()
	defer s.inputMu.Unlock()
	if err := robotgo.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	if err := robotgo.KeyTap("v", "ctrl"); err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	return nil
}

// Window manages the application window with robotgo and the Windows shell.
type Window struct{}

// Open launches target (an executable or .lnk shortcut) through the shell.
func (Window) Open(ctx context.Context, target string) error {
	cmd := exec.CommandContext(ctx, "cmd", "/c", "start", "", target)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", target, err)
	}
	go cmd.Wait()
	return nil
}

func (Window) Focus(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := robotgo.ActiveName(name); err != nil {
		return fmt.Errorf("focusing %s: %w", name, err)
	}
	return nil
}

// Maximize snaps the focused window with win+up.
func (Window) Maximize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return robotgo.KeyTap("up", "cmd")
}

func (Window) Running(ctx context.Context, process string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ids, err := robotgo.FindIds(process)
	if err != nil {
		return false, fmt.Errorf("listing %s: %w", process, err)
	}
	return len(ids) > 0, nil
}

// Kill terminates every process named process.
func (Window) Kill(ctx context.Context, process string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ids, err := robotgo.FindIds(process)
	if err != nil {
		return fmt.Errorf("listing %s: %w", process, err)
	}
	var errs []error
	for _, pid := range ids {
		if err := robotgo.Kill(pid); err != nil {
			errs = append(errs, fmt.Errorf("killing pid %d: %w", pid, err))
		}
	}
	return errors.Join(errs...)
}
