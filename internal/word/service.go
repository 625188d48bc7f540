// AngelaMos | 2026
// service.go

package word

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexisarthi/api/internal/core"
	"github.com/lexisarthi/api/internal/digest"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateWordRequest,
) (*Word, error) {
	word := &Word{
		Word:          normalizeWord(req.Word),
		MeaningHindi:  strings.TrimSpace(req.MeaningHindi),
		Pronunciation: strings.TrimSpace(req.Pronunciation),
		Examples:      StringList(req.Examples),
		Synonyms:      StringList(req.Synonyms),
		Antonyms:      StringList(req.Antonyms),
	}

	if word.Word == "" {
		return nil, fmt.Errorf("create word: %w", core.ErrInvalidInput)
	}

	if err := s.repo.Create(ctx, word); err != nil {
		return nil, err
	}

	return word, nil
}

func (s *Service) Get(ctx context.Context, text string) (*Word, error) {
	return s.repo.GetByWord(ctx, normalizeWord(text))
}

func (s *Service) List(ctx context.Context) ([]Word, error) {
	return s.repo.List(ctx)
}

// Search is an exact match on the normalized headword; there is no fuzzy
// or prefix lookup.
func (s *Service) Search(ctx context.Context, text string) (*Word, error) {
	text = normalizeWord(text)
	if text == "" {
		return nil, fmt.Errorf("search word: %w", core.ErrInvalidInput)
	}

	return s.repo.GetByWord(ctx, text)
}

func (s *Service) Update(
	ctx context.Context,
	text string,
	req UpdateWordRequest,
) (*Word, error) {
	word, err := s.repo.GetByWord(ctx, normalizeWord(text))
	if err != nil {
		return nil, err
	}

	if req.MeaningHindi != nil {
		word.MeaningHindi = strings.TrimSpace(*req.MeaningHindi)
	}
	if req.Pronunciation != nil {
		word.Pronunciation = strings.TrimSpace(*req.Pronunciation)
	}
	if req.Examples != nil {
		word.Examples = StringList(req.Examples)
	}
	if req.Synonyms != nil {
		word.Synonyms = StringList(req.Synonyms)
	}
	if req.Antonyms != nil {
		word.Antonyms = StringList(req.Antonyms)
	}

	if err := s.repo.Update(ctx, word); err != nil {
		return nil, err
	}

	return word, nil
}

func (s *Service) Delete(ctx context.Context, text string) error {
	return s.repo.Delete(ctx, normalizeWord(text))
}

// NextDigestWord advances the catalog rotation and returns the picked entry
// in the digest's read model.
func (s *Service) NextDigestWord(
	ctx context.Context,
) (*digest.WordEntry, error) {
	word, err := s.repo.PickForDigest(ctx)
	if err != nil {
		return nil, err
	}

	return &digest.WordEntry{
		Word:          word.Word,
		MeaningHindi:  word.MeaningHindi,
		Pronunciation: word.Pronunciation,
		Examples:      word.Examples,
		Synonyms:      word.Synonyms,
		Antonyms:      word.Antonyms,
	}, nil
}

// normalizeWord keeps headwords comparable: trimmed and lowercased, the
// same form used on write and on lookup.
func normalizeWord(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

var _ digest.WordSource = (*Service)(nil)
