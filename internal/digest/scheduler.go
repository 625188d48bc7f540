// AngelaMos | 2026
// scheduler.go

package digest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lexisarthi/api/internal/config"
	"github.com/lexisarthi/api/internal/core"
	"github.com/lexisarthi/api/internal/mailer"
)

// Subscriber is a recipient of the daily word email.
type Subscriber struct {
	Email string
	Name  string
}

// SubscriberSource lists every account currently opted in to the digest.
type SubscriberSource interface {
	DigestSubscribers(ctx context.Context) ([]Subscriber, error)
}

// WordSource hands out the next word to send, advancing its rotation as a
// side effect.
type WordSource interface {
	NextDigestWord(ctx context.Context) (*WordEntry, error)
}

// SendResult records the outcome of one recipient's delivery attempt.
type SendResult struct {
	Recipient string
	Err       error
}

// Scheduler fires the digest once a day at the configured wall-clock time.
// One recipient's failure never blocks the rest of the fan-out.
type Scheduler struct {
	config      config.DigestConfig
	subscribers SubscriberSource
	words       WordSource
	mail        mailer.Mailer
	logger      *slog.Logger
	now         func() time.Time
}

func NewScheduler(
	cfg config.DigestConfig,
	subscribers SubscriberSource,
	words WordSource,
	mail mailer.Mailer,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		config:      cfg,
		subscribers: subscribers,
		words:       words,
		mail:        mail,
		logger:      logger,
		now:         time.Now,
	}
}

// Start blocks until ctx is cancelled, running the digest at every
// configured fire time. Callers run it in its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	loc, err := s.config.Location()
	if err != nil {
		s.logger.Error("invalid digest timezone, using local",
			slog.String("timezone", s.config.Timezone),
			slog.Any("error", err),
		)
		loc = time.Local
	}

	for {
		next := nextFire(s.now().In(loc), s.config.Hour, s.config.Minute)
		timer := time.NewTimer(next.Sub(s.now()))

		s.logger.Info("digest scheduled",
			slog.Time("next_run", next),
		)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
		results, err := s.RunOnce(runCtx)
		cancel()

		if err != nil {
			s.logger.Error("digest run failed", slog.Any("error", err))
			continue
		}

		sent, failed := tally(results)
		s.logger.Info("digest run complete",
			slog.Int("sent", sent),
			slog.Int("failed", failed),
		)
	}
}

// RunOnce performs a single digest delivery: list the subscribers, pick
// the word, fan out with bounded concurrency. An empty subscriber list or
// an empty catalog is a no-op, not an error. Subscribers are checked first
// so an empty run never advances the word rotation.
func (s *Scheduler) RunOnce(ctx context.Context) ([]SendResult, error) {
	subscribers, err := s.subscribers.DigestSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list digest subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		return nil, nil
	}

	entry, err := s.words.NextDigestWord(ctx)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.logger.Info("digest skipped, no words in catalog")
			return nil, nil
		}
		return nil, fmt.Errorf("pick digest word: %w", err)
	}

	body, err := renderBody(entry)
	if err != nil {
		return nil, err
	}
	subject := subjectFor(entry)

	concurrency := s.config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]SendResult, len(subscribers))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, sub := range subscribers {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int, sub Subscriber) {
			defer wg.Done()
			defer func() { <-sem }()

			err := s.mail.Send(ctx, sub.Email, subject, body)
			results[i] = SendResult{Recipient: sub.Email, Err: err}

			if err != nil {
				s.logger.Error("digest send failed",
					slog.String("recipient", sub.Email),
					slog.Any("error", err),
				)
			}
		}(i, sub)
	}

	wg.Wait()

	return results, nil
}

// nextFire returns the next occurrence of hour:minute strictly after now,
// in now's location.
func nextFire(now time.Time, hour, minute int) time.Time {
	next := time.Date(
		now.Year(), now.Month(), now.Day(),
		hour, minute, 0, 0,
		now.Location(),
	)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func tally(results []SendResult) (sent, failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			sent++
		}
	}
	return sent, failed
}
