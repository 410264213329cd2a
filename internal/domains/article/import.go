package article

import (
	"context"
	"io"
)

// SkippedEntry records an entry the import deliberately passed over.
type SkippedEntry struct {
	CiteKey string `json:"id"`
	Reason  string `json:"motivo"`
}

// FailedEntry records an entry whose persistence errored out.
type FailedEntry struct {
	CiteKey string `json:"id"`
	Error   string `json:"erro"`
}

// ImportReport summarizes one bulk import run. One bad entry never aborts the
// batch; it lands in Skipped or Failed and the loop moves on.
type ImportReport struct {
	Processed       int            `json:"processados"`
	Created         int            `json:"cadastrados"`
	Skipped         []SkippedEntry `json:"pulados"`
	Failed          []FailedEntry  `json:"erros"`
	EditionsCreated []string       `json:"edicoes_criadas"`
}

// Importer is the bulk BibTeX ingestion pipeline.
type Importer interface {
	// Preview parses the stream and returns the normalized entries without
	// touching the store.
	Preview(ctx context.Context, r io.Reader) ([]BibEntry, error)

	// Save persists the entries. pdfs maps "<citekey>.pdf" file names to
	// their contents, extracted from the uploaded archive.
	Save(ctx context.Context, r io.Reader, pdfs map[string][]byte) (*ImportReport, error)
}
