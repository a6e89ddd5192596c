// Package services содержит бизнес-логику расчёта задолженностей и выручки.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/membership-ledger/internal/ledger"
	"github.com/magabrotheeeer/membership-ledger/internal/models"
)

// MemberRepository определяет методы чтения участников из хранилища.
type MemberRepository interface {
	// ListMembers возвращает всех участников.
	ListMembers(ctx context.Context) ([]*models.Member, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// DuesService пересчитывает производные агрегаты задолженности по всем участникам.
// Агрегаты не хранятся: каждый расчёт идёт от текущего состояния карт оплат.
type DuesService struct {
	repo  MemberRepository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// NewDuesService создает новый экземпляр DuesService.
func NewDuesService(repo MemberRepository, cache Cache, log *slog.Logger) *DuesService {
	return &DuesService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

const duesCacheKey = "dues:list"

// ComputeDueList возвращает сводку задолженностей по участникам с хотя бы
// одним неоплаченным месяцем, отсортированную по убыванию серьёзности.
// Полностью оплаченные участники в список не попадают.
// Результат кешируется на короткий срок.
func (s *DuesService) ComputeDueList(ctx context.Context) ([]models.DueSummary, error) {
	var summaries []models.DueSummary
	found, err := s.cache.Get(duesCacheKey, &summaries)
	if err != nil {
		return nil, err
	}
	if found {
		return summaries, nil
	}

	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summaries = make([]models.DueSummary, 0, len(members))
	for _, m := range members {
		summary := ledger.Aggregate(*m, now)
		if summary.UnpaidCount == 0 {
			continue
		}
		summaries = append(summaries, summary)
	}
	ledger.RankDueList(summaries)

	s.log.Info("computed due list", slog.Int("members", len(summaries)))

	if err := s.cache.Set(duesCacheKey, summaries, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache due list", slog.Any("err", err))
	}
	return summaries, nil
}

// MonthlyRevenue возвращает фактическую выручку за месяц с ключом YYYY-MM.
// Пустой ключ означает текущий месяц.
func (s *DuesService) MonthlyRevenue(ctx context.Context, monthKey string) (string, int, error) {
	if monthKey == "" {
		monthKey = ledger.MonthKey(s.now())
	}
	if _, ok := ledger.ParseMonthKey(monthKey); !ok {
		return "", 0, fmt.Errorf("%w: %q", ledger.ErrInvalidMonth, monthKey)
	}

	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return "", 0, err
	}

	flat := make([]models.Member, 0, len(members))
	for _, m := range members {
		flat = append(flat, *m)
	}
	total := ledger.Revenue(flat, monthKey)

	s.log.Info("computed monthly revenue", slog.String("month", monthKey), slog.Int("total", total))
	return monthKey, total, nil
}
