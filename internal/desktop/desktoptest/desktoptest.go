// Package desktoptest provides scripted in-memory implementations of the
// desktop interfaces for tests.
package desktoptest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nexconsult/receitanet-bx/internal/desktop"
)

// Screen is a fake desktop.Screen. Every id gets a stable point the first time
// it is mentioned; clicks at that point are attributed to the id.
type Screen struct {
	mu        sync.Mutex
	points    map[string]desktop.Point
	ids       map[desktop.Point]string
	visible   map[string]bool
	onClick   map[string]func(*Screen)
	onLocate  map[string]func(*Screen, int)
	locateErr map[string]error
	locates   map[string]int
	events    []string
}

var _ desktop.Screen = (*Screen)(nil)

// NewScreen returns a screen with nothing visible.
func NewScreen() *Screen {
	return &Screen{
		points:    make(map[string]desktop.Point),
		ids:       make(map[desktop.Point]string),
		visible:   make(map[string]bool),
		onClick:   make(map[string]func(*Screen)),
		onLocate:  make(map[string]func(*Screen, int)),
		locateErr: make(map[string]error),
		locates:   make(map[string]int),
	}
}

func (s *Screen) pointLocked(id string) desktop.Point {
	if p, ok := s.points[id]; ok {
		return p
	}
	n := len(s.points) + 1
	p := desktop.Point{X: 10 * n, Y: 5 * n}
	s.points[id] = p
	s.ids[p] = id
	return p
}

// PointOf returns the point assigned to id.
func (s *Screen) PointOf(id string) desktop.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointLocked(id)
}

// Show makes ids visible.
func (s *Screen) Show(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.pointLocked(id)
		s.visible[id] = true
	}
}

// Hide makes ids invisible.
func (s *Screen) Hide(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.visible, id)
	}
}

// OnClick runs fn after id is clicked or double-clicked.
func (s *Screen) OnClick(id string, fn func(*Screen)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointLocked(id)
	s.onClick[id] = fn
}

// OnLocate runs fn before each lookup of id with the lookup count, starting at 1.
func (s *Screen) OnLocate(id string, fn func(s *Screen, n int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLocate[id] = fn
}

// FailLocate makes every lookup of id return err.
func (s *Screen) FailLocate(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locateErr[id] = err
}

func (s *Screen) Locate(ctx context.Context, id string, _ float64) (desktop.Point, bool, error) {
	if err := ctx.Err(); err != nil {
		return desktop.Point{}, false, err
	}
	s.mu.Lock()
	s.locates[id]++
	n := s.locates[id]
	hook := s.onLocate[id]
	s.mu.Unlock()

	if hook != nil {
		hook(s, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.locateErr[id]; err != nil {
		return desktop.Point{}, false, err
	}
	if !s.visible[id] {
		return desktop.Point{}, false, nil
	}
	return s.pointLocked(id), true, nil
}

func (s *Screen) Click(ctx context.Context, at desktop.Point) error {
	return s.click(ctx, "click", at)
}

func (s *Screen) DoubleClick(ctx context.Context, at desktop.Point) error {
	return s.click(ctx, "double-click", at)
}

func (s *Screen) click(ctx context.Context, kind string, at desktop.Point) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	id, ok := s.ids[at]
	if !ok {
		id = at.String()
	}
	s.events = append(s.events, kind+" "+id)
	hook := s.onClick[id]
	s.mu.Unlock()

	if hook != nil {
		hook(s)
	}
	return nil
}

func (s *Screen) Press(ctx context.Context, key string, modifiers ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := key
	if len(modifiers) > 0 {
		name = strings.Join(modifiers, "+") + "+" + key
	}
	s.record("press " + name)
	return nil
}

func (s *Screen) Type(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.record("type " + text)
	return nil
}

func (s *Screen) Paste(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.record("paste " + text)
	return nil
}

func (s *Screen) record(event string) {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
}

// Events returns the input received so far, in order.
func (s *Screen) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

// Count returns how many recorded events equal event.
func (s *Screen) Count(event string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if e == event {
			n++
		}
	}
	return n
}

// Locates returns how many times id was looked up.
func (s *Screen) Locates(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locates[id]
}

// Window is a fake desktop.Window.
type Window struct {
	mu      sync.Mutex
	running map[string]bool
	events  []string

	// OpenErr is returned by Open when set.
	OpenErr error
	// OnOpen runs after a successful Open.
	OnOpen func()
}

var _ desktop.Window = (*Window)(nil)

// NewWindow returns a window manager with no process running.
func NewWindow() *Window {
	return &Window{running: make(map[string]bool)}
}

func (w *Window) Open(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.record("open " + target)
	if w.OpenErr != nil {
		return w.OpenErr
	}
	if w.OnOpen != nil {
		w.OnOpen()
	}
	return nil
}

func (w *Window) Focus(_ context.Context, name string) error {
	w.record("focus " + name)
	return nil
}

func (w *Window) Maximize(context.Context) error {
	w.record("maximize")
	return nil
}

// SetRunning marks process as running or stopped.
func (w *Window) SetRunning(process string, running bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running[process] = running
}

func (w *Window) Running(_ context.Context, process string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running[process], nil
}

func (w *Window) Kill(_ context.Context, process string) error {
	w.mu.Lock()
	w.running[process] = false
	w.mu.Unlock()
	w.record("kill " + process)
	return nil
}

func (w *Window) record(event string) {
	w.mu.Lock()
	w.events = append(w.events, event)
	w.mu.Unlock()
}

// Events returns the calls received so far, in order.
func (w *Window) Events() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.events...)
}

// Count returns how many recorded events equal event.
func (w *Window) Count(event string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, e := range w.events {
		if e == event {
			n++
		}
	}
	return n
}

// String summarises the recorded screen input; handy in test failures.
func (s *Screen) String() string {
	return fmt.Sprintf("%q", s.Events())
}
