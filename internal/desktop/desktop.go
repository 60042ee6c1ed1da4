// Package desktop drives the local screen: it finds template images on the
// current frame and injects mouse and keyboard input.
package desktop

import (
	"context"
	"fmt"
)

// Point is a screen coordinate in pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Locator reports whether the image registered as id is on screen and where.
// Implementations must be safe for concurrent use.
type Locator interface {
	Locate(ctx context.Context, id string, confidence float64) (Point, bool, error)
}

// Mouse clicks at absolute screen positions.
type Mouse interface {
	Click(ctx context.Context, at Point) error
	DoubleClick(ctx context.Context, at Point) error
}

// Keyboard injects keystrokes into the focused window.
type Keyboard interface {
	// Press taps key while holding modifiers ("ctrl", "shift", "alt", "cmd").
	Press(ctx context.Context, key string, modifiers ...string) error
	Type(ctx context.Context, text string) error
	Paste(ctx context.Context, text string) error
}

// Screen combines locating and input.
type Screen interface {
	Locator
	Mouse
	Keyboard
}

// Window manages the external application process and its window.
type Window interface {
	Open(ctx context.Context, target string) error
	Focus(ctx context.Context, name string) error
	Maximize(ctx context.Context) error
	Running(ctx context.Context, process string) (bool, error)
	Kill(ctx context.Context, process string) error
}

// Key names accepted by Keyboard.Press.
const (
	KeyEnter = "enter"
	KeyTab   = "tab"
)
