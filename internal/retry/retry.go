// Package retry runs whole bot executions a bounded number of times and
// reports how long they took.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
)

// ErrAttemptsExhausted wraps the last error once every attempt failed.
var ErrAttemptsExhausted = errors.New("attempts exhausted")

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Attempts runs op up to attempts times, waiting wait between failures.
func Attempts[T any](ctx context.Context, log logrus.FieldLogger, attempts int, wait time.Duration, op func(ctx context.Context, attempt int) (T, error)) (T, error) {
	if attempts < 1 {
		attempts = 1
	}

	attempt := 0
	permanent := false
	operation := func() (T, error) {
		attempt++
		log.Infof("Attempt %d of %d", attempt, attempts)

		res, err := op(ctx, attempt)
		if err != nil {
			var pe *backoff.PermanentError
			permanent = errors.As(err, &pe)
			log.WithError(err).Warnf("Attempt %d of %d failed", attempt, attempts)
		}
		return res, err
	}

	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(wait)),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
	)
	if err == nil {
		return res, nil
	}
	if permanent || ctx.Err() != nil {
		return res, err
	}
	return res, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempts, err)
}

// Timed logs when fn starts and ends and the total elapsed time.
func Timed(log logrus.FieldLogger, fn func() error) error {
	start := time.Now()
	log.Infof("Execution started at %s", start.Format("15:04:05"))

	err := fn()

	end := time.Now()
	elapsed := end.Sub(start)
	log.WithField("elapsed", elapsed.String()).Infof("Execution finished at %s", end.Format("15:04:05"))
	log.Info(FormatElapsed(elapsed))
	return err
}

// FormatElapsed renders d as hours, minutes and seconds.
func FormatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("Total time: %02d hour(s), %02d minute(s) and %02d second(s)", total/3600, total%3600/60, total%60)
}
