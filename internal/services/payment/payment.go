// Package services содержит бизнес-логику изменения помесячного состояния оплаты.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/membership-ledger/internal/ledger"
	"github.com/magabrotheeeer/membership-ledger/internal/models"
	"github.com/magabrotheeeer/membership-ledger/internal/storage/repository"
)

// MemberRepository определяет методы хранилища, нужные для мутации оплаты.
type MemberRepository interface {
	// GetMember возвращает участника по ID.
	GetMember(ctx context.Context, id string) (*models.Member, error)
	// UpdatePaymentFields записывает новые карты оплат при совпадении версии документа.
	UpdatePaymentFields(ctx context.Context, id string, fields models.PaymentFields, expectedVersion int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// PaymentService применяет обновления оплаты к карточке участника.
// Запись идёт через optimistic lock по версии документа: при конфликте
// состояние перечитывается и мутация применяется повторно один раз.
type PaymentService struct {
	repo  MemberRepository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(repo MemberRepository, cache Cache, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// ApplyPayment применяет обновление статуса оплаты месяца к участнику
// и возвращает новые карты платёжного состояния.
func (s *PaymentService) ApplyPayment(ctx context.Context, memberID string, req models.DummyPaymentUpdate) (*models.PaymentFields, error) {
	upd := ledger.Update{
		Month:       req.Month,
		Status:      req.Status,
		Amount:      req.Amount,
		CoverMonths: req.CoverMonths,
	}

	fields, err := s.applyOnce(ctx, memberID, upd)
	if errors.Is(err, repository.ErrVersionConflict) {
		s.log.Warn("version conflict, retrying payment update", slog.String("member_id", memberID))
		fields, err = s.applyOnce(ctx, memberID, upd)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("applied payment update",
		slog.String("member_id", memberID),
		slog.String("month", req.Month),
		slog.String("status", req.Status))

	cacheKey := fmt.Sprintf("member:%s", memberID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate member cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if err := s.cache.Invalidate("members:list"); err != nil {
		s.log.Warn("failed to invalidate members list cache", slog.Any("err", err))
	}
	if err := s.cache.Invalidate("dues:list"); err != nil {
		s.log.Warn("failed to invalidate due list cache", slog.Any("err", err))
	}

	return fields, nil
}

func (s *PaymentService) applyOnce(ctx context.Context, memberID string, upd ledger.Update) (*models.PaymentFields, error) {
	member, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	fields, err := ledger.Apply(*member, upd, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePaymentFields(ctx, memberID, fields, member.Version); err != nil {
		return nil, err
	}
	return &fields, nil
}
