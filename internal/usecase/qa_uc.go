package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

// QAReport is the advisory review of a job's latest deliverable: glossary
// hits in the translated text plus the numeric consistency check.
type QAReport struct {
	JobID     string             `json:"job_id"`
	Spans     []model.TermSpan   `json:"glossary_spans"`
	Annotated string             `json:"annotated_text"`
	Numbers   model.NumericCheck `json:"numbers"`
}

// Compile-time check
var _ QAUseCase = (*qaUC)(nil)

type QAUseCase interface {
	// Review runs glossary highlighting and the numeric check over the
	// job's latest deliverable. Purely advisory; it never changes state.
	Review(ctx context.Context, jobID string, actor model.Actor) (*QAReport, error)
	// Highlight annotates arbitrary text with the client's glossary.
	Highlight(ctx context.Context, clientID, text string) ([]model.TermSpan, string, error)
}

type qaUC struct {
	deliverables repository.DeliverableRepository
	glossary     repository.GlossaryRepository
	jobs         JobUseCase
	log          *zerolog.Logger
}

func NewQAUseCase(
	deliverables repository.DeliverableRepository,
	glossary repository.GlossaryRepository,
	jobs JobUseCase,
	logger *zerolog.Logger,
) *qaUC {
	compLog := logger.With().Str("component", "QAUC").Logger()
	return &qaUC{
		deliverables: deliverables,
		glossary:     glossary,
		jobs:         jobs,
		log:          &compLog,
	}
}

func (u *qaUC) Review(ctx context.Context, jobID string, actor model.Actor) (*QAReport, error) {
	job, err := u.jobs.Get(ctx, jobID, actor)
	if err != nil {
		return nil, err
	}
	d, err := u.deliverables.FindLatestByJob(ctx, repository.NoTX, jobID)
	if err != nil {
		return nil, err
	}
	terms, err := u.glossary.ListByClient(ctx, repository.NoTX, job.ClientID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	spans, annotated := model.HighlightTerms(d.TranslatedText, terms)
	return &QAReport{
		JobID:     jobID,
		Spans:     spans,
		Annotated: annotated,
		Numbers:   model.CompareNumbers(job.SourceText, d.TranslatedText),
	}, nil
}

func (u *qaUC) Highlight(ctx context.Context, clientID, text string) ([]model.TermSpan, string, error) {
	terms, err := u.glossary.ListByClient(ctx, repository.NoTX, clientID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}
	spans, annotated := model.HighlightTerms(text, terms)
	return spans, annotated, nil
}
