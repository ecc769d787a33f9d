package usecase

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

type StatsUseCase interface {
	// Totals returns user count and job counts grouped by state.
	Totals(ctx context.Context) (int, map[model.JobState]int, error)
	// Revenue returns invoiced cents for the current week, month and year.
	Revenue(ctx context.Context) (week, month, year int64, err error)
}

type statsUC struct {
	users    repository.UserRepository
	jobs     repository.JobRepository
	invoices repository.InvoiceRepository
}

func NewStatsUseCase(users repository.UserRepository, jobs repository.JobRepository, invoices repository.InvoiceRepository) *statsUC {
	return &statsUC{users: users, jobs: jobs, invoices: invoices}
}

func (u *statsUC) Totals(ctx context.Context) (int, map[model.JobState]int, error) {
	users, err := u.users.CountAll(ctx, repository.NoTX)
	if err != nil {
		return 0, nil, err
	}
	byState, err := u.jobs.CountByState(ctx, repository.NoTX)
	if err != nil {
		return 0, nil, err
	}
	return users, byState, nil
}

func (u *statsUC) Revenue(ctx context.Context) (int64, int64, int64, error) {
	week, err := u.invoices.SumByPeriod(ctx, repository.NoTX, "week")
	if err != nil {
		return 0, 0, 0, err
	}
	month, err := u.invoices.SumByPeriod(ctx, repository.NoTX, "month")
	if err != nil {
		return 0, 0, 0, err
	}
	year, err := u.invoices.SumByPeriod(ctx, repository.NoTX, "year")
	if err != nil {
		return 0, 0, 0, err
	}
	return week, month, year, nil
}
