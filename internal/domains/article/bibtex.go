package article

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nickng/bibtex"
)

// BibEntry is one parsed bibliography entry, normalized for ingestion.
type BibEntry struct {
	CiteKey     string       `json:"citekey"`
	Type        string       `json:"tipo"`
	Title       string       `json:"titulo"`
	Authors     []AuthorName `json:"autores"`
	Booktitle   string       `json:"booktitle,omitempty"`
	Year        int          `json:"ano,omitempty"`
	Abstract    string       `json:"resumo,omitempty"`
	Keywords    string       `json:"palavras_chave,omitempty"`
	SubjectArea string       `json:"area,omitempty"`
}

// AuthorName is a person name split into the two columns authors carry.
type AuthorName struct {
	FirstName string `json:"nome"`
	LastName  string `json:"sobrenome"`
}

// ParseBibTeX reads a .bib stream into normalized entries. Entries without a
// citation key are kept; validation of required fields happens at import time.
func ParseBibTeX(r io.Reader) ([]BibEntry, error) {
	bib, err := bibtex.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse bibtex: %w", err)
	}

	entries := make([]BibEntry, 0, len(bib.Entries))
	for _, raw := range bib.Entries {
		entry := BibEntry{
			CiteKey:     raw.CiteName,
			Type:        raw.Type,
			Title:       cleanBraces(fieldValue(raw, "title")),
			Booktitle:   cleanBraces(fieldValue(raw, "booktitle")),
			Abstract:    fieldValue(raw, "abstract"),
			Keywords:    fieldValue(raw, "keywords"),
			SubjectArea: fieldValue(raw, "area"),
		}

		if year := fieldValue(raw, "year"); year != "" {
			entry.Year, _ = strconv.Atoi(strings.TrimSpace(year))
		}

		for _, name := range splitAuthors(fieldValue(raw, "author")) {
			entry.Authors = append(entry.Authors, SplitAuthorName(name))
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// SplitAuthorName handles both BibTeX conventions: "Last, First" and
// "First Middle Last" (everything before the final token is the first name).
func SplitAuthorName(full string) AuthorName {
	full = strings.TrimSpace(cleanBraces(full))

	if before, after, found := strings.Cut(full, ","); found {
		return AuthorName{
			FirstName: strings.TrimSpace(after),
			LastName:  strings.TrimSpace(before),
		}
	}

	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return AuthorName{}
	case 1:
		return AuthorName{FirstName: parts[0]}
	default:
		return AuthorName{
			FirstName: strings.Join(parts[:len(parts)-1], " "),
			LastName:  parts[len(parts)-1],
		}
	}
}

func splitAuthors(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var names []string
	for _, part := range strings.Split(raw, " and ") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func fieldValue(entry *bibtex.BibEntry, key string) string {
	if v, ok := entry.Fields[key]; ok {
		return strings.TrimSpace(v.String())
	}
	return ""
}

func cleanBraces(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}
