package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/adapter"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

// Compile-time check
var _ QuoteUseCase = (*quoteUC)(nil)

type QuoteUseCase interface {
	// Generate prices the job against the rate table, supersedes any prior
	// quote and moves a draft job to quoted. Fails with domain.ErrRateNotFound
	// when no rate covers the job's language pair.
	Generate(ctx context.Context, jobID string, actor model.Actor) (*model.Quote, error)
	// Approve is idempotent: re-approving the active quote returns the
	// original approval timestamp; a superseded quote fails with
	// domain.ErrStaleQuote. First approval moves the job to approved.
	Approve(ctx context.Context, quoteID string, actor model.Actor) (time.Time, error)
	Reject(ctx context.Context, quoteID string, actor model.Actor) error
	ActiveForJob(ctx context.Context, jobID string) (*model.Quote, error)
	HistoryForJob(ctx context.Context, jobID string) ([]*model.Quote, error)
}

type quoteUC struct {
	quotes repository.QuoteRepository
	jobs   repository.JobRepository
	rates  repository.RateRepository
	audit  repository.AuditLogRepository
	tm     repository.TransactionManager
	locker adapter.Locker
	notify NotificationQueue
	log    *zerolog.Logger
}

func NewQuoteUseCase(
	quotes repository.QuoteRepository,
	jobs repository.JobRepository,
	rates repository.RateRepository,
	audit repository.AuditLogRepository,
	tm repository.TransactionManager,
	locker adapter.Locker,
	notify NotificationQueue,
	logger *zerolog.Logger,
) *quoteUC {
	compLog := logger.With().Str("component", "QuoteUC").Logger()
	return &quoteUC{
		quotes: quotes,
		jobs:   jobs,
		rates:  rates,
		audit:  audit,
		tm:     tm,
		locker: locker,
		notify: notify,
		log:    &compLog,
	}
}

func (u *quoteUC) Generate(ctx context.Context, jobID string, actor model.Actor) (*model.Quote, error) {
	token, err := u.locker.TryLock(ctx, "job:"+jobID, jobLockTTL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = u.locker.Unlock(context.Background(), "job:"+jobID, token) }()

	var quote *model.Quote
	var job *model.Job
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		job, err = u.jobs.FindByID(ctx, tx, jobID)
		if err != nil {
			return err
		}
		rate, err := u.rates.FindByPair(ctx, tx, job.SourceLanguage, job.TargetLanguage)
		if err != nil {
			return err
		}
		if err := u.quotes.SupersedeActive(ctx, tx, job.ID); err != nil {
			return err
		}
		quote, err = model.NewQuote(uuid.NewString(), job, rate)
		if err != nil {
			return err
		}
		if err := u.quotes.Save(ctx, tx, quote); err != nil {
			return err
		}
		// Repricing a job that is already quoted keeps its state; only the
		// initial quote advances draft -> quoted.
		if job.State == model.JobStateDraft {
			if err := job.Transition(model.JobStateQuoted, model.System); err != nil {
				return err
			}
			if err := u.jobs.Save(ctx, tx, job); err != nil {
				return err
			}
		}
		return u.audit.Save(ctx, tx, model.NewAuditLog(uuid.NewString(), actor.UserID, "quote_generated", "quote", quote.ID))
	})
	if err != nil {
		return nil, err
	}

	if job.State == model.JobStateQuoted {
		if err := u.notify.Enqueue(model.Notification{JobID: job.ID, NewState: job.State, Actor: model.System, QueuedAt: time.Now()}); err != nil {
			u.log.Error().Err(err).Str("job_id", job.ID).Msg("failed to enqueue notification")
		}
	}
	return quote, nil
}

func (u *quoteUC) Approve(ctx context.Context, quoteID string, actor model.Actor) (time.Time, error) {
	var approvedAt time.Time
	var job *model.Job
	var transitioned bool
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		quote, err := u.quotes.FindByID(ctx, tx, quoteID)
		if err != nil {
			return err
		}
		job, err = u.jobs.FindByID(ctx, tx, quote.JobID)
		if err != nil {
			return err
		}
		if job.ClientID != actor.UserID {
			return domain.ErrForbidden
		}
		alreadyApproved := quote.Approved
		approvedAt, err = quote.Approve()
		if err != nil {
			return err
		}
		if alreadyApproved {
			return nil // idempotent no-op, nothing to persist
		}
		if err := job.Transition(model.JobStateApproved, actor); err != nil {
			return err
		}
		transitioned = true
		if err := u.quotes.Save(ctx, tx, quote); err != nil {
			return err
		}
		if err := u.jobs.Save(ctx, tx, job); err != nil {
			return err
		}
		return u.audit.Save(ctx, tx, model.NewAuditLog(uuid.NewString(), actor.UserID, "quote_approved", "quote", quote.ID))
	})
	if err != nil {
		return time.Time{}, err
	}

	if transitioned {
		if err := u.notify.Enqueue(model.Notification{JobID: job.ID, NewState: job.State, Actor: actor, QueuedAt: time.Now()}); err != nil {
			u.log.Error().Err(err).Str("job_id", job.ID).Msg("failed to enqueue notification")
		}
	}
	return approvedAt, nil
}

func (u *quoteUC) Reject(ctx context.Context, quoteID string, actor model.Actor) error {
	var job *model.Job
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		quote, err := u.quotes.FindByID(ctx, tx, quoteID)
		if err != nil {
			return err
		}
		if quote.Superseded {
			return domain.ErrStaleQuote
		}
		job, err = u.jobs.FindByID(ctx, tx, quote.JobID)
		if err != nil {
			return err
		}
		if job.ClientID != actor.UserID {
			return domain.ErrForbidden
		}
		if err := job.Transition(model.JobStateRejected, actor); err != nil {
			return err
		}
		if err := u.jobs.Save(ctx, tx, job); err != nil {
			return err
		}
		return u.audit.Save(ctx, tx, model.NewAuditLog(uuid.NewString(), actor.UserID, "quote_rejected", "quote", quote.ID))
	})
	if err != nil {
		return err
	}

	if err := u.notify.Enqueue(model.Notification{JobID: job.ID, NewState: job.State, Actor: actor, QueuedAt: time.Now()}); err != nil {
		u.log.Error().Err(err).Str("job_id", job.ID).Msg("failed to enqueue notification")
	}
	return nil
}

func (u *quoteUC) ActiveForJob(ctx context.Context, jobID string) (*model.Quote, error) {
	return u.quotes.FindActiveByJob(ctx, repository.NoTX, jobID)
}

func (u *quoteUC) HistoryForJob(ctx context.Context, jobID string) ([]*model.Quote, error) {
	return u.quotes.ListByJob(ctx, repository.NoTX, jobID)
}
