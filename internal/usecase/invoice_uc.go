package usecase

import (
	"context"
	"errors"
	"fmt"
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
var _ InvoiceUseCase = (*invoiceUC)(nil)

type InvoiceUseCase interface {
	// Issue invoices an accepted job against its approved quote and moves
	// it to invoiced, atomically. Fails with domain.ErrNotEligible when the
	// job is not accepted or its quote is not an approved active one, and
	// with domain.ErrAlreadyInvoiced on a second call. PDF rendering runs
	// after the invoice is durable; a rendering or storage outage surfaces
	// domain.ErrCollaboratorUnavailable without undoing the invoice.
	Issue(ctx context.Context, jobID string, actor model.Actor) (*model.Invoice, error)
	FindByJob(ctx context.Context, jobID string, actor model.Actor) (*model.Invoice, error)
	// RenderPDF retries the rendering side effect for an issued invoice.
	RenderPDF(ctx context.Context, jobID string) (*model.Invoice, error)
}

type invoiceUC struct {
	invoices repository.InvoiceRepository
	quotes   repository.QuoteRepository
	jobs     repository.JobRepository
	users    repository.UserRepository
	audit    repository.AuditLogRepository
	tm       repository.TransactionManager
	locker   adapter.Locker
	renderer adapter.InvoiceRenderer
	storage  adapter.FileStorage
	jobUC    JobUseCase
	notify   NotificationQueue
	log      *zerolog.Logger
}

func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	quotes repository.QuoteRepository,
	jobs repository.JobRepository,
	users repository.UserRepository,
	audit repository.AuditLogRepository,
	tm repository.TransactionManager,
	locker adapter.Locker,
	renderer adapter.InvoiceRenderer,
	storage adapter.FileStorage,
	jobUC JobUseCase,
	notify NotificationQueue,
	logger *zerolog.Logger,
) *invoiceUC {
	compLog := logger.With().Str("component", "InvoiceUC").Logger()
	return &invoiceUC{
		invoices: invoices,
		quotes:   quotes,
		jobs:     jobs,
		users:    users,
		audit:    audit,
		tm:       tm,
		locker:   locker,
		renderer: renderer,
		storage:  storage,
		jobUC:    jobUC,
		notify:   notify,
		log:      &compLog,
	}
}

func (u *invoiceUC) Issue(ctx context.Context, jobID string, actor model.Actor) (*model.Invoice, error) {
	token, err := u.locker.TryLock(ctx, "job:"+jobID, jobLockTTL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = u.locker.Unlock(context.Background(), "job:"+jobID, token) }()

	var inv *model.Invoice
	var job *model.Job
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		job, err = u.jobs.FindByID(ctx, tx, jobID)
		if err != nil {
			return err
		}
		if job.State == model.JobStateInvoiced {
			return domain.ErrAlreadyInvoiced
		}
		if job.State != model.JobStateAccepted {
			return fmt.Errorf("job %s is %s: %w", jobID, job.State, domain.ErrNotEligible)
		}
		quote, err := u.quotes.FindActiveByJob(ctx, tx, jobID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotEligible
			}
			return err
		}
		if !quote.Approved {
			return fmt.Errorf("quote %s not approved: %w", quote.ID, domain.ErrNotEligible)
		}

		number, err := u.invoices.NextNumber(ctx, tx)
		if err != nil {
			return err
		}
		inv, err = model.NewInvoice(uuid.NewString(), number, job, quote)
		if err != nil {
			return err
		}
		if err := u.invoices.Save(ctx, tx, inv); err != nil {
			return err
		}
		if err := job.Transition(model.JobStateInvoiced, actor); err != nil {
			return err
		}
		if err := u.jobs.Save(ctx, tx, job); err != nil {
			return err
		}
		return u.audit.Save(ctx, tx, model.NewAuditLog(uuid.NewString(), actor.UserID, "invoice_issued", "invoice", inv.ID))
	})
	if err != nil {
		return nil, err
	}

	if err := u.notify.Enqueue(model.Notification{JobID: job.ID, NewState: job.State, Actor: actor, QueuedAt: time.Now()}); err != nil {
		u.log.Error().Err(err).Str("job_id", job.ID).Msg("failed to enqueue notification")
	}

	// Rendering happens outside the transaction; the invoice is already
	// issued and a failure here is reported for a standalone retry.
	if err := u.render(ctx, inv, job); err != nil {
		return inv, err
	}
	return inv, nil
}

func (u *invoiceUC) FindByJob(ctx context.Context, jobID string, actor model.Actor) (*model.Invoice, error) {
	job, err := u.jobUC.Get(ctx, jobID, actor)
	if err != nil {
		return nil, err
	}
	return u.invoices.FindByJob(ctx, repository.NoTX, job.ID)
}

func (u *invoiceUC) RenderPDF(ctx context.Context, jobID string) (*model.Invoice, error) {
	inv, err := u.invoices.FindByJob(ctx, repository.NoTX, jobID)
	if err != nil {
		return nil, err
	}
	job, err := u.jobs.FindByID(ctx, repository.NoTX, jobID)
	if err != nil {
		return nil, err
	}
	if err := u.render(ctx, inv, job); err != nil {
		return inv, err
	}
	return inv, nil
}

func (u *invoiceUC) render(ctx context.Context, inv *model.Invoice, job *model.Job) error {
	client, err := u.users.FindByID(ctx, repository.NoTX, inv.ClientID)
	if err != nil {
		return err
	}
	data, err := u.renderer.Render(ctx, inv, job, client)
	if err != nil {
		u.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("invoice rendering failed")
		return fmt.Errorf("render invoice %s: %w", inv.ID, domain.ErrCollaboratorUnavailable)
	}
	handle, err := u.storage.Save(ctx, fmt.Sprintf("invoice_%04d.pdf", inv.Number), data)
	if err != nil {
		return fmt.Errorf("store invoice %s: %w", inv.ID, domain.ErrCollaboratorUnavailable)
	}
	if err := u.invoices.SetPDFHandle(ctx, repository.NoTX, inv.ID, handle); err != nil {
		return err
	}
	inv.PDFHandle = handle
	return nil
}
