// AngelaMos | 2026
// repository.go

package word

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lexisarthi/api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, word *Word) error
	GetByWord(ctx context.Context, text string) (*Word, error)
	List(ctx context.Context) ([]Word, error)
	Update(ctx context.Context, word *Word) error
	Delete(ctx context.Context, text string) error
	PickForDigest(ctx context.Context) (*Word, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, word *Word) error {
	query := `
		INSERT INTO words (word, meaning_hindi, pronunciation, example, synonyms, antonyms)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, word, query,
		word.Word,
		word.MeaningHindi,
		word.Pronunciation,
		word.Examples,
		word.Synonyms,
		word.Antonyms,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create word: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create word: %w", err)
	}

	return nil
}

func (r *repository) GetByWord(
	ctx context.Context,
	text string,
) (*Word, error) {
	query := `
		SELECT word, meaning_hindi, pronunciation, example, synonyms, antonyms,
		       last_sent_at, created_at, updated_at
		FROM words
		WHERE word = $1`

	var word Word
	err := r.db.GetContext(ctx, &word, query, text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get word: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}

	return &word, nil
}

func (r *repository) List(ctx context.Context) ([]Word, error) {
	query := `
		SELECT word, meaning_hindi, pronunciation, example, synonyms, antonyms,
		       last_sent_at, created_at, updated_at
		FROM words
		ORDER BY word ASC`

	var words []Word
	if err := r.db.SelectContext(ctx, &words, query); err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	return words, nil
}

func (r *repository) Update(ctx context.Context, word *Word) error {
	query := `
		UPDATE words
		SET meaning_hindi = $2, pronunciation = $3, example = $4,
		    synonyms = $5, antonyms = $6, updated_at = NOW()
		WHERE word = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &word.UpdatedAt, query,
		word.Word,
		word.MeaningHindi,
		word.Pronunciation,
		word.Examples,
		word.Synonyms,
		word.Antonyms,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update word: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update word: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, text string) error {
	query := `DELETE FROM words WHERE word = $1`

	result, err := r.db.ExecContext(ctx, query, text)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete word: %w", core.ErrNotFound)
	}

	return nil
}

// PickForDigest selects the least-recently-sent word and stamps it in the
// same statement, rotating through the catalog across runs.
func (r *repository) PickForDigest(ctx context.Context) (*Word, error) {
	query := `
		UPDATE words
		SET last_sent_at = NOW()
		WHERE word = (
			SELECT word FROM words
			ORDER BY last_sent_at ASC NULLS FIRST, word ASC
			LIMIT 1
		)
		RETURNING word, meaning_hindi, pronunciation, example, synonyms, antonyms,
		          last_sent_at, created_at, updated_at`

	var word Word
	err := r.db.GetContext(ctx, &word, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pick digest word: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("pick digest word: %w", err)
	}

	return &word, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
