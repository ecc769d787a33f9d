package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/adapter"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

// Compile-time check
var _ IntakeUseCase = (*intakeUC)(nil)

type IntakeUseCase interface {
	// Submit accepts an uploaded document, extracts its text and word count,
	// creates the job and immediately prices it. When no rate covers the
	// language pair the draft job is kept and domain.ErrRateNotFound is
	// returned alongside it, so a manager can add the rate and reprice.
	Submit(ctx context.Context, clientID, sourceLang, targetLang, filename string, data []byte) (*model.Job, *model.Quote, error)
}

type intakeUC struct {
	jobs      repository.JobRepository
	audit     repository.AuditLogRepository
	tm        repository.TransactionManager
	extractor adapter.TextExtractor
	storage   adapter.FileStorage
	quotes    QuoteUseCase
	log       *zerolog.Logger
}

func NewIntakeUseCase(
	jobs repository.JobRepository,
	audit repository.AuditLogRepository,
	tm repository.TransactionManager,
	extractor adapter.TextExtractor,
	storage adapter.FileStorage,
	quotes QuoteUseCase,
	logger *zerolog.Logger,
) *intakeUC {
	compLog := logger.With().Str("component", "IntakeUC").Logger()
	return &intakeUC{
		jobs:      jobs,
		audit:     audit,
		tm:        tm,
		extractor: extractor,
		storage:   storage,
		quotes:    quotes,
		log:       &compLog,
	}
}

func (u *intakeUC) Submit(ctx context.Context, clientID, sourceLang, targetLang, filename string, data []byte) (*model.Job, *model.Quote, error) {
	text, words, err := u.extractor.Extract(ctx, data, filename)
	if err != nil {
		return nil, nil, err
	}
	handle, err := u.storage.Save(ctx, filename, data)
	if err != nil {
		return nil, nil, fmt.Errorf("store upload: %w", domain.ErrCollaboratorUnavailable)
	}

	job, err := model.NewJob(uuid.NewString(), clientID, sourceLang, targetLang, filename)
	if err != nil {
		return nil, nil, err
	}
	job.WordCount = words
	job.SourceText = text
	job.SourceFile = handle

	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := u.jobs.Save(ctx, tx, job); err != nil {
			return err
		}
		return u.audit.Save(ctx, tx, model.NewAuditLog(uuid.NewString(), clientID, "request_created", "job", job.ID))
	})
	if err != nil {
		return nil, nil, err
	}

	quote, err := u.quotes.Generate(ctx, job.ID, model.System)
	if errors.Is(err, domain.ErrRateNotFound) {
		u.log.Warn().Str("job_id", job.ID).Str("pair", model.LanguagePair(sourceLang, targetLang)).
			Msg("no rate for pair; job left in draft")
		return job, nil, err
	}
	if err != nil {
		return nil, nil, err
	}
	job.State = model.JobStateQuoted
	return job, quote, nil
}
