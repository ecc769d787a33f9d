package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/adapter"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

// Compile-time check
var _ NotificationUseCase = (*notificationUC)(nil)

type NotificationUseCase interface {
	// Dispatch resolves recipients for the transition, sends one mail per
	// recipient and records every attempt. At-least-once: duplicates are
	// acceptable, silence is not.
	Dispatch(ctx context.Context, n model.Notification) error
	// RecordDrop records a dispatch that never reached a worker as failed
	// for every resolved recipient, so RetryFailed can pick it up later.
	RecordDrop(ctx context.Context, n model.Notification, cause error) error
	// RetryFailed re-sends recent failed dispatches; returns how many went out.
	RetryFailed(ctx context.Context, limit int) (int, error)
	// RemindDueSoon mails translators whose jobs come due within the window.
	RemindDueSoon(ctx context.Context, withinHours int) (int, error)
}

type notificationUC struct {
	jobs  repository.JobRepository
	users repository.UserRepository
	logs  repository.NotificationLogRepository
	mail  adapter.MailTransport
	log   *zerolog.Logger
}

func NewNotificationUseCase(
	jobs repository.JobRepository,
	users repository.UserRepository,
	logs repository.NotificationLogRepository,
	mail adapter.MailTransport,
	logger *zerolog.Logger,
) *notificationUC {
	compLog := logger.With().Str("component", "NotificationUC").Logger()
	return &notificationUC{jobs: jobs, users: users, logs: logs, mail: mail, log: &compLog}
}

// stateTemplates maps a new job state to the mail template and the parties
// who care about the change.
var stateTemplates = map[model.JobState]struct {
	template   string
	client     bool
	translator bool
	manager    bool
}{
	model.JobStateQuoted:    {template: "job_quoted", client: true},
	model.JobStateApproved:  {template: "quote_approved", manager: true},
	model.JobStateRejected:  {template: "quote_rejected", manager: true},
	model.JobStateAssigned:  {template: "job_assigned", client: true, translator: true},
	model.JobStateDelivered: {template: "job_delivered", client: true, manager: true},
	model.JobStateReturned:  {template: "job_returned", translator: true},
	model.JobStateAccepted:  {template: "job_accepted", client: true, translator: true},
	model.JobStateInvoiced:  {template: "invoice_issued", client: true},
}

// resolveRecipients loads the job and the users the transition concerns.
// Users without an email address are filtered out.
func (u *notificationUC) resolveRecipients(ctx context.Context, n model.Notification) (*model.Job, string, []*model.User, error) {
	spec, ok := stateTemplates[n.NewState]
	if !ok {
		return nil, "", nil, nil // nothing to announce for this state
	}
	job, err := u.jobs.FindByID(ctx, repository.NoTX, n.JobID)
	if err != nil {
		return nil, "", nil, err
	}

	var recipients []*model.User
	if spec.client {
		if c, err := u.users.FindByID(ctx, repository.NoTX, job.ClientID); err == nil {
			recipients = append(recipients, c)
		}
	}
	if spec.translator && job.TranslatorID != nil {
		if t, err := u.users.FindByID(ctx, repository.NoTX, *job.TranslatorID); err == nil {
			recipients = append(recipients, t)
		}
	}
	if spec.manager {
		managers, err := u.users.ListByRole(ctx, repository.NoTX, model.RoleManager)
		if err == nil {
			recipients = append(recipients, managers...)
		}
	}

	withEmail := recipients[:0]
	for _, r := range recipients {
		if r.Email == "" {
			u.log.Debug().Str("user_id", r.ID).Msg("recipient has no email; skipping")
			continue
		}
		withEmail = append(withEmail, r)
	}
	return job, spec.template, withEmail, nil
}

func (u *notificationUC) Dispatch(ctx context.Context, n model.Notification) error {
	job, template, recipients, err := u.resolveRecipients(ctx, n)
	if err != nil || template == "" {
		return err
	}

	data := map[string]string{
		"job_id":   job.ID,
		"state":    string(n.NewState),
		"pair":     model.LanguagePair(job.SourceLanguage, job.TargetLanguage),
		"filename": job.OriginalName,
	}

	var firstErr error
	for _, r := range recipients {
		err := u.mail.Send(ctx, template, r.Email, data)
		entry := &model.NotificationLog{
			ID:        uuid.NewString(),
			JobID:     job.ID,
			State:     n.NewState,
			ActorID:   n.Actor.UserID,
			Recipient: r.Email,
			Template:  template,
			Status:    model.NotificationStatusSent,
			CreatedAt: n.QueuedAt,
		}
		if err != nil {
			entry.Status = model.NotificationStatusFailed
			entry.Error = err.Error()
			if firstErr == nil {
				firstErr = fmt.Errorf("notify %s: %w", r.Email, domain.ErrCollaboratorUnavailable)
			}
		}
		if logErr := u.logs.Save(ctx, repository.NoTX, entry); logErr != nil {
			u.log.Error().Err(logErr).Str("job_id", job.ID).Msg("failed to record notification")
		}
	}
	return firstErr
}

func (u *notificationUC) RecordDrop(ctx context.Context, n model.Notification, cause error) error {
	job, template, recipients, err := u.resolveRecipients(ctx, n)
	if err != nil || template == "" {
		return err
	}
	var firstErr error
	for _, r := range recipients {
		entry := &model.NotificationLog{
			ID:        uuid.NewString(),
			JobID:     job.ID,
			State:     n.NewState,
			ActorID:   n.Actor.UserID,
			Recipient: r.Email,
			Template:  template,
			Status:    model.NotificationStatusFailed,
			Error:     cause.Error(),
			CreatedAt: n.QueuedAt,
		}
		if err := u.logs.Save(ctx, repository.NoTX, entry); err != nil {
			u.log.Error().Err(err).Str("job_id", job.ID).Msg("failed to record dropped notification")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (u *notificationUC) RetryFailed(ctx context.Context, limit int) (int, error) {
	failed, err := u.logs.ListFailed(ctx, repository.NoTX, limit)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, f := range failed {
		data := map[string]string{"job_id": f.JobID, "state": string(f.State)}
		if err := u.mail.Send(ctx, f.Template, f.Recipient, data); err != nil {
			if !errors.Is(err, domain.ErrCollaboratorUnavailable) {
				return sent, err
			}
			continue
		}
		sent++
		entry := &model.NotificationLog{
			ID:        uuid.NewString(),
			JobID:     f.JobID,
			State:     f.State,
			ActorID:   f.ActorID,
			Recipient: f.Recipient,
			Template:  f.Template,
			Status:    model.NotificationStatusSent,
			CreatedAt: time.Now(),
		}
		if err := u.logs.Save(ctx, repository.NoTX, entry); err != nil {
			u.log.Error().Err(err).Str("job_id", f.JobID).Msg("failed to record retried notification")
		}
	}
	return sent, nil
}

func (u *notificationUC) RemindDueSoon(ctx context.Context, withinHours int) (int, error) {
	jobs, err := u.jobs.ListDueWithin(ctx, repository.NoTX, withinHours)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, job := range jobs {
		if job.TranslatorID == nil {
			continue
		}
		t, err := u.users.FindByID(ctx, repository.NoTX, *job.TranslatorID)
		if err != nil || t.Email == "" {
			continue
		}
		data := map[string]string{
			"job_id": job.ID,
			"due":    job.DueDate.Format("2006-01-02 15:04"),
		}
		if err := u.mail.Send(ctx, "job_due_soon", t.Email, data); err != nil {
			u.log.Warn().Err(err).Str("job_id", job.ID).Msg("due-soon reminder failed")
			continue
		}
		sent++
	}
	return sent, nil
}
