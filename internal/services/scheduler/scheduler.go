// Package services содержит планировщик напоминаний о задолженностях.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/membership-ledger/internal/ledger"
	"github.com/magabrotheeeer/membership-ledger/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/membership-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/membership-ledger/internal/models"
)

// MemberRepository определяет методы чтения участников из хранилища.
type MemberRepository interface {
	ListMembers(ctx context.Context) ([]*models.Member, error)
}

// SchedulerService периодически пересчитывает задолженности и публикует
// напоминания для участников с тремя и более неоплаченными месяцами.
type SchedulerService struct {
	repo MemberRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo MemberRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// PublishDueReminders запускает ежедневный цикл публикации напоминаний.
func (s *SchedulerService) PublishDueReminders(ctx context.Context, channel *amqp.Channel) {
	s.runPublishDueReminders(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		s.runPublishDueReminders(ctx, channel)
	}
}

func (s *SchedulerService) runPublishDueReminders(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find members with overdue payments")
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		s.log.Error("failed to list members", sl.Err(err))
		return
	}

	reminders := s.collectReminders(members)
	if len(reminders) == 0 {
		s.log.Info("no overdue members found")
		return
	}
	s.log.Info("found overdue members", "count", len(reminders))
	for _, reminder := range reminders {
		err = rabbitmq.PublishMessage(channel, rabbitmq.ReminderExchange, "dues", reminder)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}

// collectReminders собирает напоминания для участников с серьёзностью
// Overdue и выше. Участники без адреса почты пропускаются.
func (s *SchedulerService) collectReminders(members []*models.Member) []models.DueReminder {
	now := s.now()
	var reminders []models.DueReminder
	for _, m := range members {
		if m.Email == "" {
			continue
		}
		summary := ledger.Aggregate(*m, now)
		if summary.UnpaidCount < 3 {
			continue
		}
		firstUnpaid := ""
		if len(summary.UnpaidMonths) > 0 {
			// UnpaidMonths отсортированы по убыванию, самый старый месяц последний
			firstUnpaid = summary.UnpaidMonths[len(summary.UnpaidMonths)-1]
		}
		reminders = append(reminders, models.DueReminder{
			Email:            m.Email,
			Name:             m.Name,
			UnpaidCount:      summary.UnpaidCount,
			TotalDue:         summary.TotalDue,
			FirstUnpaidMonth: firstUnpaid,
		})
	}
	return reminders
}
