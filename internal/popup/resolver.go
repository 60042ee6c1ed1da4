// Package popup decides which of several mutually exclusive dialogs the
// external application showed after a request was submitted.
package popup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nexconsult/receitanet-bx/internal/desktop"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultPollInterval is the cadence of each watcher.
const DefaultPollInterval = 200 * time.Millisecond

// ErrNoOutcome is returned when every watcher finished without a detection.
var ErrNoOutcome = errors.New("no popup outcome detected")

// Probe reports whether a dialog signature is currently on screen.
// It is called concurrently by all watchers.
type Probe interface {
	Locate(ctx context.Context, id string, confidence float64) (desktop.Point, bool, error)
}

// Acknowledger dismisses a detected dialog.
type Acknowledger interface {
	Acknowledge(ctx context.Context, at desktop.Point) error
}

// Resolver races one watcher per catalog entry and settles on the first
// detection.
type Resolver struct {
	probe    Probe
	ack      Acknowledger
	logger   *logrus.Logger
	interval time.Duration
	timeout  time.Duration
	maxPolls int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPollInterval sets how often each watcher probes the screen.
func WithPollInterval(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithTimeout bounds a single Resolve call. Zero, the default, means the race
// runs until a dialog shows up or the caller's context ends; the bot relies on
// its outer attempts wrapper for that bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithMaxPolls caps how many probes each watcher makes. Zero means no cap.
func WithMaxPolls(n int) Option {
	return func(r *Resolver) {
		if n >= 0 {
			r.maxPolls = n
		}
	}
}

// NewResolver creates a resolver probing through probe and acknowledging
// through ack.
func NewResolver(probe Probe, ack Acknowledger, logger *logrus.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	r := &Resolver{
		probe:    probe,
		ack:      ack,
		logger:   logger,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// resolution is the state shared by the watchers of one Resolve call.
type resolution struct {
	mu     sync.Mutex
	won    bool
	winner Outcome
}

func (s *resolution) settled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.won
}

// claim settles the race for o. Flag and result are written in the same
// critical section; it returns false if another watcher already won.
func (s *resolution) claim(o Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.won {
		return false
	}
	s.won = true
	s.winner = o
	return true
}

func (s *resolution) result() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winner, s.won
}

// Resolve watches every outcome in catalog concurrently and returns the first
// one detected. It returns only after all watchers have exited.
func (r *Resolver) Resolve(ctx context.Context, catalog Catalog) (Outcome, error) {
	if err := catalog.Validate(); err != nil {
		return Outcome{}, err
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	id := uuid.NewString()
	log := r.logger.WithFields(logrus.Fields{
		"resolution_id": id,
		"watchers":      len(catalog),
	})
	log.Debug("Watching for submission popups")

	state := &resolution{}
	g, gctx := errgroup.WithContext(ctx)
	for _, o := range catalog {
		g.Go(func() error {
			return r.watch(gctx, log, state, o)
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Popup watcher failed")
		return Outcome{}, err
	}

	if winner, ok := state.result(); ok {
		return winner, nil
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrNoOutcome, err)
	}
	return Outcome{}, ErrNoOutcome
}

// watch polls for a single outcome until it wins, sees another winner, runs
// out of polls or its context ends.
func (r *Resolver) watch(ctx context.Context, log *logrus.Entry, state *resolution, o Outcome) error {
	limiter := rate.NewLimiter(rate.Every(r.interval), 1)

	for polls := 0; r.maxPolls == 0 || polls < r.maxPolls; polls++ {
		if state.settled() {
			return nil
		}
		// limiter.Wait fails early when the next token lands past the
		// deadline; sleep on the reservation so the race lasts until ctx ends.
		res := limiter.Reserve()
		if err := desktop.Sleep(ctx, res.Delay()); err != nil {
			res.Cancel()
			return nil
		}
		if state.settled() {
			return nil
		}

		at, found, err := r.probe.Locate(ctx, o.ProbeID, o.Confidence)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("probing %s: %w", o.ProbeID, err)
		}
		if !found {
			continue
		}
		if !state.claim(o) {
			return nil
		}

		log.WithFields(logrus.Fields{
			"probe_id": o.ProbeID,
			"status":   o.Status,
			"result":   o.Result,
			"at":       at.String(),
		}).Info(o.LogMessage)

		if o.Action == ActionAcknowledge {
			if err := r.ack.Acknowledge(ctx, at); err != nil {
				return fmt.Errorf("acknowledging %s: %w", o.ProbeID, err)
			}
		}
		return nil
	}
	return nil
}
