package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"library-backend/internal/domains/article"
	"library-backend/internal/domains/author"
	"library-backend/internal/domains/event"
	"library-backend/internal/infrastructure/storage"
	"library-backend/internal/shared/utils"
)

type importService struct {
	repo     article.Repository
	authors  author.Service
	events   event.Service
	store    storage.Store
	notifier article.Notifier
}

func NewImportService(
	repo article.Repository,
	authors author.Service,
	events event.Service,
	store storage.Store,
	notifier article.Notifier,
) article.Importer {
	return &importService{
		repo:     repo,
		authors:  authors,
		events:   events,
		store:    store,
		notifier: notifier,
	}
}

func (s *importService) Preview(ctx context.Context, r io.Reader) ([]article.BibEntry, error) {
	return article.ParseBibTeX(r)
}

func (s *importService) Save(ctx context.Context, r io.Reader, pdfs map[string][]byte) (*article.ImportReport, error) {
	entries, err := article.ParseBibTeX(r)
	if err != nil {
		return nil, err
	}

	report := &article.ImportReport{
		Skipped:         []article.SkippedEntry{},
		Failed:          []article.FailedEntry{},
		EditionsCreated: []string{},
	}
	withPDFs := len(pdfs) > 0

	for _, entry := range entries {
		report.Processed++

		if entry.Title == "" || len(entry.Authors) == 0 {
			report.Skipped = append(report.Skipped, article.SkippedEntry{
				CiteKey: entryID(entry),
				Reason:  "campos obrigatórios ausentes (title, author)",
			})
			continue
		}
		if withPDFs && (entry.Booktitle == "" || entry.Year == 0) {
			report.Skipped = append(report.Skipped, article.SkippedEntry{
				CiteKey: entryID(entry),
				Reason:  "booktitle e year são obrigatórios quando PDFs são enviados",
			})
			continue
		}

		edition, skipReason, err := s.resolveEdition(ctx, entry, report)
		if err != nil {
			report.Failed = append(report.Failed, article.FailedEntry{
				CiteKey: entryID(entry),
				Error:   err.Error(),
			})
			continue
		}
		if skipReason != "" {
			report.Skipped = append(report.Skipped, article.SkippedEntry{
				CiteKey: entryID(entry),
				Reason:  skipReason,
			})
			continue
		}

		exists, err := s.repo.ExistsByTitleEdition(ctx, entry.Title, edition.ID)
		if err != nil {
			report.Failed = append(report.Failed, article.FailedEntry{
				CiteKey: entryID(entry),
				Error:   err.Error(),
			})
			continue
		}
		if exists {
			report.Skipped = append(report.Skipped, article.SkippedEntry{
				CiteKey: entryID(entry),
				Reason:  "artigo já existe nesta edição",
			})
			continue
		}

		if err := s.createArticle(ctx, entry, edition, pdfs); err != nil {
			report.Failed = append(report.Failed, article.FailedEntry{
				CiteKey: entryID(entry),
				Error:   err.Error(),
			})
			continue
		}
		report.Created++
	}

	return report, nil
}

// resolveEdition finds the target edition for an entry. Entries with venue
// information get their event/edition created on demand; entries without fall
// back to the oldest existing edition, or are skipped when there is none.
func (s *importService) resolveEdition(ctx context.Context, entry article.BibEntry, report *article.ImportReport) (*event.Edition, string, error) {
	if entry.Booktitle != "" && entry.Year != 0 {
		parent, err := s.events.FindOrCreateEventByName(ctx, entry.Booktitle)
		if err != nil {
			return nil, "", fmt.Errorf("resolve event: %w", err)
		}

		edition, created, err := s.events.FindOrCreateEdition(ctx, parent.ID, entry.Year)
		if err != nil {
			return nil, "", fmt.Errorf("resolve edition: %w", err)
		}
		if created {
			report.EditionsCreated = append(report.EditionsCreated, edition.Slug)
		}
		return edition, "", nil
	}

	edition, err := s.events.FirstEdition(ctx)
	if err != nil {
		if errors.Is(err, event.ErrEditionNotFound) {
			return nil, "sem booktitle/year e nenhuma edição existente", nil
		}
		return nil, "", fmt.Errorf("fallback edition: %w", err)
	}
	return edition, "", nil
}

func (s *importService) createArticle(ctx context.Context, entry article.BibEntry, edition *event.Edition, pdfs map[string][]byte) error {
	authorIDs := make([]uuid.UUID, 0, len(entry.Authors))
	for _, name := range entry.Authors {
		person, err := s.authors.FindOrCreate(ctx, name.FirstName, name.LastName)
		if err != nil {
			return fmt.Errorf("resolve author %q: %w", name.FirstName+" "+name.LastName, err)
		}
		authorIDs = append(authorIDs, person.ID)
	}

	entity := article.New(entry.Title, edition.ID)
	entity.Abstract = entry.Abstract
	entity.Keywords = entry.Keywords
	entity.SubjectArea = entry.SubjectArea
	if entry.Year != 0 {
		published := utils.NewDate(entry.Year, 1, 1)
		entity.PublishedOn = &published
	}

	if entry.CiteKey != "" {
		if content, ok := pdfs[entry.CiteKey+".pdf"]; ok {
			path, err := s.store.Save(entry.CiteKey+".pdf", content)
			if err != nil {
				return fmt.Errorf("store pdf: %w", err)
			}
			entity.PDFPath = path
		}
	}

	if err := s.repo.Create(ctx, entity, authorIDs); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.NotifyArticlePublished(ctx, entity.ID)
	}
	return nil
}

func entryID(entry article.BibEntry) string {
	if entry.CiteKey != "" {
		return entry.CiteKey
	}
	return entry.Title
}
