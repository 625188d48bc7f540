// AngelaMos | 2026
// service_test.go

package word

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexisarthi/api/internal/core"
)

type fakeRepository struct {
	byWord map[string]*Word
	picked []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byWord: make(map[string]*Word)}
}

func (f *fakeRepository) Create(_ context.Context, word *Word) error {
	if _, exists := f.byWord[word.Word]; exists {
		return fmt.Errorf("create word: %w", core.ErrDuplicateKey)
	}
	word.CreatedAt = time.Now()
	word.UpdatedAt = word.CreatedAt
	clone := *word
	f.byWord[word.Word] = &clone
	return nil
}

func (f *fakeRepository) GetByWord(
	_ context.Context,
	text string,
) (*Word, error) {
	word, ok := f.byWord[text]
	if !ok {
		return nil, fmt.Errorf("get word: %w", core.ErrNotFound)
	}
	clone := *word
	return &clone, nil
}

func (f *fakeRepository) List(_ context.Context) ([]Word, error) {
	words := make([]Word, 0, len(f.byWord))
	for _, word := range f.byWord {
		words = append(words, *word)
	}
	return words, nil
}

func (f *fakeRepository) Update(_ context.Context, word *Word) error {
	stored, ok := f.byWord[word.Word]
	if !ok {
		return fmt.Errorf("update word: %w", core.ErrNotFound)
	}
	updated := *word
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	f.byWord[word.Word] = &updated
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, text string) error {
	if _, ok := f.byWord[text]; !ok {
		return fmt.Errorf("delete word: %w", core.ErrNotFound)
	}
	delete(f.byWord, text)
	return nil
}

func (f *fakeRepository) PickForDigest(_ context.Context) (*Word, error) {
	var oldest *Word
	for _, word := range f.byWord {
		if oldest == nil ||
			word.LastSentAt.Time.Before(oldest.LastSentAt.Time) {
			oldest = word
		}
	}
	if oldest == nil {
		return nil, fmt.Errorf("pick digest word: %w", core.ErrNotFound)
	}
	oldest.LastSentAt.Time = time.Now()
	oldest.LastSentAt.Valid = true
	f.picked = append(f.picked, oldest.Word)
	clone := *oldest
	return &clone, nil
}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo), repo
}

func TestCreateNormalizesHeadword(t *testing.T) {
	svc, repo := newTestService()

	word, err := svc.Create(context.Background(), CreateWordRequest{
		Word:         "  Lucid ",
		MeaningHindi: "स्पष्ट",
	})
	require.NoError(t, err)

	assert.Equal(t, "lucid", word.Word)
	_, ok := repo.byWord["lucid"]
	assert.True(t, ok)
}

func TestCreateDuplicate(t *testing.T) {
	svc, _ := newTestService()

	req := CreateWordRequest{Word: "lucid", MeaningHindi: "स्पष्ट"}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	require.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestCreateRejectsBlankHeadword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateWordRequest{
		Word:         "   ",
		MeaningHindi: "स्पष्ट",
	})
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSearchExactMatch(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateWordRequest{
		Word:         "lucid",
		MeaningHindi: "स्पष्ट",
	})
	require.NoError(t, err)

	found, err := svc.Search(context.Background(), " LUCID ")
	require.NoError(t, err)
	assert.Equal(t, "lucid", found.Word)

	_, err = svc.Search(context.Background(), "luc")
	require.ErrorIs(t, err, core.ErrNotFound,
		"lookup is exact match, not prefix")

	_, err = svc.Search(context.Background(), "")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdatePartialFields(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateWordRequest{
		Word:          "lucid",
		MeaningHindi:  "स्पष्ट",
		Pronunciation: "LOO-sid",
		Synonyms:      []string{"clear"},
	})
	require.NoError(t, err)

	meaning := "साफ़"
	updated, err := svc.Update(context.Background(), "lucid",
		UpdateWordRequest{MeaningHindi: &meaning})
	require.NoError(t, err)

	assert.Equal(t, "साफ़", updated.MeaningHindi)
	assert.Equal(t, "LOO-sid", updated.Pronunciation)
	assert.Equal(t, StringList{"clear"}, updated.Synonyms)
}

func TestDeleteUnknownWord(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestNextDigestWordRotates(t *testing.T) {
	svc, repo := newTestService()

	for _, text := range []string{"alpha", "beta"} {
		_, err := svc.Create(context.Background(), CreateWordRequest{
			Word:         text,
			MeaningHindi: "अर्थ",
		})
		require.NoError(t, err)
	}

	first, err := svc.NextDigestWord(context.Background())
	require.NoError(t, err)

	second, err := svc.NextDigestWord(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.Word, second.Word,
		"consecutive picks rotate through the catalog")
	assert.Len(t, repo.picked, 2)
}

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"one", "two"}

	value, err := list.Value()
	require.NoError(t, err)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)

	var empty StringList
	value, err = empty.Value()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(value.([]byte)),
		"nil list stores as an empty array, not null")
}
