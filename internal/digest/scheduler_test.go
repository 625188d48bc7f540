// AngelaMos | 2026
// scheduler_test.go

package digest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexisarthi/api/internal/config"
	"github.com/lexisarthi/api/internal/core"
)

type fakeSubscriberSource struct {
	subscribers []Subscriber
	err         error
}

func (f *fakeSubscriberSource) DigestSubscribers(
	_ context.Context,
) ([]Subscriber, error) {
	return f.subscribers, f.err
}

type fakeWordSource struct {
	entry *WordEntry
	err   error
	picks int
}

func (f *fakeWordSource) NextDigestWord(
	_ context.Context,
) (*WordEntry, error) {
	f.picks++
	return f.entry, f.err
}

type fakeMailer struct {
	mu       sync.Mutex
	sent     []string
	bodies   map[string]string
	subjects map[string]string
	failFor  map[string]error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		bodies:   make(map[string]string),
		subjects: make(map[string]string),
		failFor:  make(map[string]error),
	}
}

func (f *fakeMailer) Send(
	_ context.Context,
	to, subject, htmlBody string,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failFor[to]; ok {
		return err
	}

	f.sent = append(f.sent, to)
	f.subjects[to] = subject
	f.bodies[to] = htmlBody
	return nil
}

func testEntry() *WordEntry {
	return &WordEntry{
		Word:          "lucid",
		MeaningHindi:  "स्पष्ट",
		Pronunciation: "LOO-sid",
		Examples:      []string{"The water was lucid.", "पानी स्पष्ट था।"},
		Synonyms:      []string{"clear", "limpid"},
		Antonyms:      []string{"murky"},
	}
}

func newTestScheduler(
	words WordSource,
	subscribers SubscriberSource,
	mail *fakeMailer,
) *Scheduler {
	return NewScheduler(
		config.DigestConfig{
			Enabled:     true,
			Hour:        9,
			Minute:      0,
			Concurrency: 2,
			RunTimeout:  time.Minute,
		},
		subscribers,
		words,
		mail,
		slog.New(slog.DiscardHandler),
	)
}

func TestRunOnceNoSubscribers(t *testing.T) {
	mail := newFakeMailer()
	words := &fakeWordSource{entry: testEntry()}
	scheduler := newTestScheduler(
		words,
		&fakeSubscriberSource{},
		mail,
	)

	results, err := scheduler.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, mail.sent)
	assert.Equal(t, 0, words.picks,
		"an empty run must not advance the word rotation")
}

func TestRunOnceEmptyCatalog(t *testing.T) {
	mail := newFakeMailer()
	scheduler := newTestScheduler(
		&fakeWordSource{err: fmt.Errorf("pick: %w", core.ErrNotFound)},
		&fakeSubscriberSource{subscribers: []Subscriber{
			{Email: "a@example.com"},
		}},
		mail,
	)

	results, err := scheduler.RunOnce(context.Background())
	require.NoError(t, err, "empty catalog is a no-op, not a failure")
	assert.Empty(t, results)
	assert.Empty(t, mail.sent)
}

func TestRunOnceFansOut(t *testing.T) {
	mail := newFakeMailer()
	scheduler := newTestScheduler(
		&fakeWordSource{entry: testEntry()},
		&fakeSubscriberSource{subscribers: []Subscriber{
			{Email: "a@example.com", Name: "A"},
			{Email: "b@example.com", Name: "B"},
			{Email: "c@example.com", Name: "C"},
		}},
		mail,
	)

	results, err := scheduler.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, result := range results {
		assert.NoError(t, result.Err)
	}
	assert.Len(t, mail.sent, 3)

	body := mail.bodies["a@example.com"]
	assert.Contains(t, body, "lucid")
	assert.Contains(t, body, "स्पष्ट")
	assert.Contains(t, body, "LOO-sid")
	assert.Contains(t, body, "clear, limpid")
	assert.Equal(t, "Daily Word: lucid", mail.subjects["a@example.com"])
}

func TestRunOnceIsolatesFailures(t *testing.T) {
	mail := newFakeMailer()
	mail.failFor["b@example.com"] = errors.New("mailbox full")

	scheduler := newTestScheduler(
		&fakeWordSource{entry: testEntry()},
		&fakeSubscriberSource{subscribers: []Subscriber{
			{Email: "a@example.com"},
			{Email: "b@example.com"},
			{Email: "c@example.com"},
		}},
		mail,
	)

	results, err := scheduler.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	sent, failed := tally(results)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, failed)

	for _, result := range results {
		if result.Recipient == "b@example.com" {
			assert.Error(t, result.Err)
		} else {
			assert.NoError(t, result.Err)
		}
	}
}

func TestRunOnceSubscriberSourceFailure(t *testing.T) {
	mail := newFakeMailer()
	scheduler := newTestScheduler(
		&fakeWordSource{entry: testEntry()},
		&fakeSubscriberSource{err: errors.New("db down")},
		mail,
	)

	_, err := scheduler.RunOnce(context.Background())
	require.Error(t, err)
	assert.Empty(t, mail.sent)
}

func TestNextFire(t *testing.T) {
	loc := time.UTC

	before := time.Date(2026, 3, 10, 8, 30, 0, 0, loc)
	next := nextFire(before, 9, 0)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, loc), next)

	after := time.Date(2026, 3, 10, 9, 30, 0, 0, loc)
	next = nextFire(after, 9, 0)
	assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, loc), next)

	exactly := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
	next = nextFire(exactly, 9, 0)
	assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, loc), next,
		"firing exactly at the boundary schedules the next day")
}
