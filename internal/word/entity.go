// AngelaMos | 2026
// entity.go

package word

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MaxExamples bounds the example list: two source-language and two
// target-language sentences.
const MaxExamples = 4

type Word struct {
	Word          string       `db:"word"`
	MeaningHindi  string       `db:"meaning_hindi"`
	Pronunciation string       `db:"pronunciation"`
	Examples      StringList   `db:"example"`
	Synonyms      StringList   `db:"synonyms"`
	Antonyms      StringList   `db:"antonyms"`
	LastSentAt    sql.NullTime `db:"last_sent_at"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

// StringList stores an ordered list of strings as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}
}
