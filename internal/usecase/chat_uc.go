package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

// ChatBroadcaster pushes a freshly appended message to listeners currently
// subscribed to the job. The message is durable before Broadcast runs, so a
// push failure only degrades to the polling path.
type ChatBroadcaster interface {
	Broadcast(jobID string, msg *model.ChatMessage)
}

// NopBroadcaster is used where no push transport is wired.
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(string, *model.ChatMessage) {}

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

type ChatUseCase interface {
	// Append records a message with the next per-job sequence number and
	// broadcasts it to connected listeners. Appends on one job are
	// serialized; different jobs do not block each other.
	Append(ctx context.Context, jobID, body string, actor model.Actor) (*model.ChatMessage, error)
	// List returns the job's messages ordered by seq, filtered to
	// seq > afterSeq when afterSeq > 0.
	List(ctx context.Context, jobID string, afterSeq int64, actor model.Actor) ([]*model.ChatMessage, error)
}

type chatUC struct {
	messages  repository.ChatMessageRepository
	users     repository.UserRepository
	jobs      JobUseCase
	tm        repository.TransactionManager
	broadcast ChatBroadcaster
	seqLocks  *keyedMutex
	log       *zerolog.Logger
}

func NewChatUseCase(
	messages repository.ChatMessageRepository,
	users repository.UserRepository,
	jobs JobUseCase,
	tm repository.TransactionManager,
	broadcast ChatBroadcaster,
	logger *zerolog.Logger,
) *chatUC {
	if broadcast == nil {
		broadcast = NopBroadcaster{}
	}
	compLog := logger.With().Str("component", "ChatUC").Logger()
	return &chatUC{
		messages:  messages,
		users:     users,
		jobs:      jobs,
		tm:        tm,
		broadcast: broadcast,
		seqLocks:  newKeyedMutex(),
		log:       &compLog,
	}
}

func (u *chatUC) Append(ctx context.Context, jobID, body string, actor model.Actor) (*model.ChatMessage, error) {
	job, err := u.jobs.Get(ctx, jobID, actor)
	if err != nil {
		return nil, err
	}

	sender, err := u.users.FindByID(ctx, repository.NoTX, actor.UserID)
	if err != nil {
		return nil, err
	}

	msg, err := model.NewChatMessage(ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		jobID, sender.ID, sender.Username, sender.Role, body)
	if err != nil {
		return nil, err
	}

	// Sequence assignment is serialized per job; the keyed mutex is created
	// lazily and reused for the job's lifetime.
	u.seqLocks.Lock(jobID)
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		return u.messages.Append(ctx, tx, msg)
	})
	u.seqLocks.Unlock(jobID)
	if err != nil {
		return nil, err
	}

	// First translator activity implicitly starts the job. Failure here is
	// harmless: the message is already durable and delivery will still
	// require the explicit edges.
	if actor.Role == model.RoleTranslator && job.State == model.JobStateAssigned {
		if _, err := u.jobs.Start(ctx, jobID, actor); err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
			u.log.Debug().Err(err).Str("job_id", jobID).Msg("implicit start skipped")
		}
	}

	u.broadcast.Broadcast(jobID, msg)
	return msg, nil
}

func (u *chatUC) List(ctx context.Context, jobID string, afterSeq int64, actor model.Actor) ([]*model.ChatMessage, error) {
	if _, err := u.jobs.Get(ctx, jobID, actor); err != nil {
		return nil, err
	}
	return u.messages.ListByJob(ctx, repository.NoTX, jobID, afterSeq)
}
