package repository

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

type AuditLogRepository interface {
	Save(ctx context.Context, tx Tx, entry *model.AuditLog) error
	ListByObject(ctx context.Context, tx Tx, objectType, objectID string) ([]*model.AuditLog, error)
}
