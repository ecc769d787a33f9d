package usecase

import (
	"context"
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

// jobLockTTL bounds how long one transition may hold the per-job lock.
const jobLockTTL = 10 * time.Second

// NotificationQueue accepts a lifecycle notification for async dispatch.
// Enqueue must complete before the triggering transition call returns;
// delivery is at-least-once.
type NotificationQueue interface {
	Enqueue(n model.Notification) error
}

// Compile-time check
var _ JobUseCase = (*jobUC)(nil)

type JobUseCase interface {
	Get(ctx context.Context, jobID string, actor model.Actor) (*model.Job, error)
	ListForActor(ctx context.Context, actor model.Actor) ([]*model.Job, error)
	// Assign hands the job to a translator; manager only.
	Assign(ctx context.Context, jobID, translatorID string, dueDate *time.Time, notes string, actor model.Actor) (*model.Job, error)
	// Start is the explicit assigned -> in_progress edge.
	Start(ctx context.Context, jobID string, actor model.Actor) (*model.Job, error)
	// Deliver stores the deliverable and moves the job to delivered. The
	// returned NumericCheck is advisory and never blocks the transition.
	Deliver(ctx context.Context, jobID, filename string, fileBytes []byte, translatedText string, actor model.Actor) (*model.Job, model.NumericCheck, error)
	Accept(ctx context.Context, jobID, comment string, actor model.Actor) (*model.Job, error)
	Return(ctx context.Context, jobID, comment string, actor model.Actor) (*model.Job, error)
	// CanView reports whether the actor may see the job at all.
	CanView(job *model.Job, actor model.Actor) bool
}

type jobUC struct {
	jobs         repository.JobRepository
	deliverables repository.DeliverableRepository
	users        repository.UserRepository
	audit        repository.AuditLogRepository
	tm           repository.TransactionManager
	locker       adapter.Locker
	storage      adapter.FileStorage
	notify       NotificationQueue
	log          *zerolog.Logger
}

func NewJobUseCase(
	jobs repository.JobRepository,
	deliverables repository.DeliverableRepository,
	users repository.UserRepository,
	audit repository.AuditLogRepository,
	tm repository.TransactionManager,
	locker adapter.Locker,
	storage adapter.FileStorage,
	notify NotificationQueue,
	logger *zerolog.Logger,
) *jobUC {
	compLog := logger.With().Str("component", "JobUC").Logger()
	return &jobUC{
		jobs:         jobs,
		deliverables: deliverables,
		users:        users,
		audit:        audit,
		tm:           tm,
		locker:       locker,
		storage:      storage,
		notify:       notify,
		log:          &compLog,
	}
}

func (u *jobUC) Get(ctx context.Context, jobID string, actor model.Actor) (*model.Job, error) {
	job, err := u.jobs.FindByID(ctx, repository.NoTX, jobID)
	if err != nil {
		return nil, err
	}
	if !u.CanView(job, actor) {
		return nil, domain.ErrForbidden
	}
	return job, nil
}

func (u *jobUC) ListForActor(ctx context.Context, actor model.Actor) ([]*model.Job, error) {
	switch actor.Role {
	case model.RoleClient:
		return u.jobs.ListByClient(ctx, repository.NoTX, actor.UserID)
	case model.RoleTranslator:
		return u.jobs.ListByTranslator(ctx, repository.NoTX, actor.UserID)
	case model.RoleManager, model.RoleAdmin:
		return u.jobs.ListAll(ctx, repository.NoTX)
	}
	return nil, domain.ErrForbidden
}

func (u *jobUC) CanView(job *model.Job, actor model.Actor) bool {
	switch actor.Role {
	case model.RoleManager, model.RoleAdmin:
		return true
	case model.RoleClient:
		return job.ClientID == actor.UserID
	case model.RoleTranslator:
		return job.TranslatorID != nil && *job.TranslatorID == actor.UserID
	}
	return false
}

func (u *jobUC) Assign(ctx context.Context, jobID, translatorID string, dueDate *time.Time, notes string, actor model.Actor) (*model.Job, error) {
	translator, err := u.users.FindByID(ctx, repository.NoTX, translatorID)
	if err != nil {
		return nil, err
	}
	if translator.Role != model.RoleTranslator {
		return nil, fmt.Errorf("user %s is not a translator: %w", translatorID, domain.ErrInvalidArgument)
	}
	return u.transition(ctx, jobID, model.JobStateAssigned, actor, "job_assigned", func(ctx context.Context, tx repository.Tx, job *model.Job) error {
		job.TranslatorID = &translator.ID
		job.DueDate = dueDate
		job.Notes = notes
		return nil
	})
}

func (u *jobUC) Start(ctx context.Context, jobID string, actor model.Actor) (*model.Job, error) {
	return u.transition(ctx, jobID, model.JobStateInProgress, actor, "job_started", func(ctx context.Context, tx repository.Tx, job *model.Job) error {
		return u.requireAssignedTranslator(job, actor)
	})
}

func (u *jobUC) Deliver(ctx context.Context, jobID, filename string, fileBytes []byte, translatedText string, actor model.Actor) (*model.Job, model.NumericCheck, error) {
	// The upload goes to file storage before any state changes; a storage
	// outage aborts the whole delivery.
	handle, err := u.storage.Save(ctx, filename, fileBytes)
	if err != nil {
		return nil, model.NumericCheck{}, fmt.Errorf("store deliverable: %w", domain.ErrCollaboratorUnavailable)
	}

	var check model.NumericCheck
	job, err := u.transition(ctx, jobID, model.JobStateDelivered, actor, "job_delivered", func(ctx context.Context, tx repository.Tx, job *model.Job) error {
		if err := u.requireAssignedTranslator(job, actor); err != nil {
			return err
		}
		d, err := model.NewDeliverable(uuid.NewString(), job.ID, handle, filename, translatedText, actor.UserID)
		if err != nil {
			return err
		}
		if err := u.deliverables.Save(ctx, tx, d); err != nil {
			return err
		}
		check = model.CompareNumbers(job.SourceText, translatedText)
		return nil
	})
	if err != nil {
		return nil, model.NumericCheck{}, err
	}
	if !check.Match {
		u.log.Warn().Str("job_id", jobID).Strs("missing", check.Missing).Strs("extra", check.Extra).
			Msg("numeric tokens differ between source and delivery")
	}
	return job, check, nil
}

func (u *jobUC) Accept(ctx context.Context, jobID, comment string, actor model.Actor) (*model.Job, error) {
	return u.transition(ctx, jobID, model.JobStateAccepted, actor, "job_accepted", func(ctx context.Context, tx repository.Tx, job *model.Job) error {
		job.ManagerComment = comment
		return nil
	})
}

func (u *jobUC) Return(ctx context.Context, jobID, comment string, actor model.Actor) (*model.Job, error) {
	return u.transition(ctx, jobID, model.JobStateReturned, actor, "job_returned", func(ctx context.Context, tx repository.Tx, job *model.Job) error {
		job.ManagerComment = comment
		return nil
	})
}

func (u *jobUC) requireAssignedTranslator(job *model.Job, actor model.Actor) error {
	if job.TranslatorID == nil || *job.TranslatorID != actor.UserID {
		return domain.ErrForbidden
	}
	return nil
}

// transition applies one edge under the per-job lock: the job row is locked
// for update inside the transaction, the state change and any attached
// entities commit together, and the notification is queued before returning.
func (u *jobUC) transition(ctx context.Context, jobID string, to model.JobState, actor model.Actor, action string, mutate func(ctx context.Context, tx repository.Tx, job *model.Job) error) (*model.Job, error) {
	token, err := u.locker.TryLock(ctx, "job:"+jobID, jobLockTTL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = u.locker.Unlock(context.Background(), "job:"+jobID, token) }()

	var job *model.Job
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		job, err = u.jobs.FindByID(ctx, tx, jobID)
		if err != nil {
			return err
		}
		if err := job.Transition(to, actor); err != nil {
			return err
		}
		if mutate != nil {
			if err := mutate(ctx, tx, job); err != nil {
				return err
			}
		}
		if err := u.jobs.Save(ctx, tx, job); err != nil {
			return err
		}
		return u.audit.Save(ctx, tx, model.NewAuditLog(uuid.NewString(), actor.UserID, action, "job", job.ID))
	})
	if err != nil {
		return nil, err
	}

	u.enqueueNotification(job, actor)
	return job, nil
}

func (u *jobUC) enqueueNotification(job *model.Job, actor model.Actor) {
	n := model.Notification{JobID: job.ID, NewState: job.State, Actor: actor, QueuedAt: time.Now()}
	if err := u.notify.Enqueue(n); err != nil {
		// The transition is already durable. A rejected enqueue is recorded
		// as a failed dispatch so the retry sweep re-sends it.
		u.log.Error().Err(err).Str("job_id", job.ID).Str("state", string(job.State)).
			Msg("failed to enqueue notification")
	}
}
