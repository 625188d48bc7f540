// AngelaMos | 2026
// dto.go

package word

import (
	"time"
)

type CreateWordRequest struct {
	Word          string   `json:"word"           validate:"required,min=1,max=100"`
	MeaningHindi  string   `json:"meaning_hindi"  validate:"required,min=1,max=500"`
	Pronunciation string   `json:"pronunciation"  validate:"omitempty,max=200"`
	Examples      []string `json:"example"        validate:"omitempty,max=4,dive,min=1,max=500"`
	Synonyms      []string `json:"synonyms"       validate:"omitempty,dive,min=1,max=100"`
	Antonyms      []string `json:"antonyms"       validate:"omitempty,dive,min=1,max=100"`
}

type UpdateWordRequest struct {
	MeaningHindi  *string  `json:"meaning_hindi,omitempty" validate:"omitempty,min=1,max=500"`
	Pronunciation *string  `json:"pronunciation,omitempty" validate:"omitempty,max=200"`
	Examples      []string `json:"example,omitempty"       validate:"omitempty,max=4,dive,min=1,max=500"`
	Synonyms      []string `json:"synonyms,omitempty"      validate:"omitempty,dive,min=1,max=100"`
	Antonyms      []string `json:"antonyms,omitempty"      validate:"omitempty,dive,min=1,max=100"`
}

type WordResponse struct {
	Word          string    `json:"word"`
	MeaningHindi  string    `json:"meaning_hindi"`
	Pronunciation string    `json:"pronunciation,omitempty"`
	Examples      []string  `json:"example"`
	Synonyms      []string  `json:"synonyms"`
	Antonyms      []string  `json:"antonyms"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type WordListResponse struct {
	Words []WordResponse `json:"words"`
}

func ToWordResponse(w *Word) WordResponse {
	return WordResponse{
		Word:          w.Word,
		MeaningHindi:  w.MeaningHindi,
		Pronunciation: w.Pronunciation,
		Examples:      orEmpty(w.Examples),
		Synonyms:      orEmpty(w.Synonyms),
		Antonyms:      orEmpty(w.Antonyms),
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func ToWordResponseList(words []Word) []WordResponse {
	responses := make([]WordResponse, 0, len(words))
	for _, w := range words {
		responses = append(responses, ToWordResponse(&w))
	}
	return responses
}

func orEmpty(l StringList) []string {
	if l == nil {
		return []string{}
	}
	return l
}
