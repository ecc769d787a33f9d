package repository

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

type ChatMessageRepository interface {
	// Append stores the message and assigns its per-job sequence number
	// (last + 1). Callers serialize appends per job id; the repository only
	// guarantees the stored seq is unique per job.
	Append(ctx context.Context, tx Tx, msg *model.ChatMessage) error
	// ListByJob returns messages ordered by seq, restricted to seq > afterSeq
	// when afterSeq > 0.
	ListByJob(ctx context.Context, tx Tx, jobID string, afterSeq int64) ([]*model.ChatMessage, error)
	LastSeq(ctx context.Context, tx Tx, jobID string) (int64, error)
}
