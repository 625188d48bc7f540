// AngelaMos | 2026
// render.go

package digest

import (
	"fmt"
	"html/template"
	"strings"
)

// WordEntry is the digest's read model of one vocabulary entry, decoupled
// from the word store's row shape.
type WordEntry struct {
	Word          string
	MeaningHindi  string
	Pronunciation string
	Examples      []string
	Synonyms      []string
	Antonyms      []string
}

var bodyTemplate = template.Must(template.New("daily_word").Funcs(template.FuncMap{
	"join": func(items []string) string { return strings.Join(items, ", ") },
}).Parse(`<h2>{{.Word}}</h2>
<p><b>Hindi:</b> {{.MeaningHindi}}</p>
{{- if .Pronunciation}}
<p><b>Pronunciation:</b> {{.Pronunciation}}</p>
{{- end}}
{{- if .Examples}}
<p><b>Examples:</b></p>
<ul>
{{- range .Examples}}
  <li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
{{- if .Synonyms}}
<p><b>Synonyms:</b> {{join .Synonyms}}</p>
{{- end}}
{{- if .Antonyms}}
<p><b>Antonyms:</b> {{join .Antonyms}}</p>
{{- end}}
`))

func renderBody(entry *WordEntry) (string, error) {
	var sb strings.Builder
	if err := bodyTemplate.Execute(&sb, entry); err != nil {
		return "", fmt.Errorf("render digest body: %w", err)
	}
	return sb.String(), nil
}

func subjectFor(entry *WordEntry) string {
	return "Daily Word: " + entry.Word
}
