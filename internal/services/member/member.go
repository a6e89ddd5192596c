// Package services содержит бизнес-логику работы с карточками участников и кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/membership-ledger/internal/models"
)

// MemberRepository определяет методы для работы с участниками в хранилище.
type MemberRepository interface {
	// CreateMember добавляет нового участника и возвращает его регистрационный номер.
	CreateMember(ctx context.Context, m models.Member) (int, error)
	// GetMember возвращает участника по ID.
	GetMember(ctx context.Context, id string) (*models.Member, error)
	// ListMembers возвращает всех участников, отсортированных по регистрационному номеру.
	ListMembers(ctx context.Context) ([]*models.Member, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// MemberService реализует бизнес-логику работы с участниками, включая кеширование.
type MemberService struct {
	repo  MemberRepository
	cache Cache
	log   *slog.Logger
}

// NewMemberService создает новый экземпляр MemberService.
func NewMemberService(repo MemberRepository, cache Cache, log *slog.Logger) *MemberService {
	return &MemberService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

const listCacheKey = "members:list"

// Create регистрирует нового участника, кеширует его карточку и возвращает её.
func (s *MemberService) Create(ctx context.Context, req models.DummyMember) (*models.Member, error) {
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "Pending"
	}

	member := models.Member{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		Phone:               req.Phone,
		Email:               req.Email,
		JoinDate:            req.JoinDate,
		MembershipType:      req.MembershipType,
		MembershipStartDate: req.MembershipStartDate,
		MembershipEndDate:   req.MembershipEndDate,
		Status:              "Active",
		Fee:                 req.Fee,
		PaymentMode:         req.PaymentMode,
		PaymentStatus:       paymentStatus,
		Payments:            map[string]bool{},
		PaymentsAmounts:     map[string]int{},
		Version:             1,
	}

	regNo, err := s.repo.CreateMember(ctx, member)
	if err != nil {
		return nil, err
	}
	member.RegNo = regNo

	s.log.Info("created new member", slog.String("id", member.ID), slog.Int("reg_no", regNo))

	cacheKey := fmt.Sprintf("member:%s", member.ID)
	if err := s.cache.Set(cacheKey, member, time.Hour); err != nil {
		s.log.Warn("failed to cache member", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate members list cache", slog.Any("err", err))
	}

	return &member, nil
}

// Get возвращает участника по ID, используя кеш или репозиторий.
func (s *MemberService) Get(ctx context.Context, id string) (*models.Member, error) {
	var result *models.Member
	cacheKey := fmt.Sprintf("member:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey),
				slog.Any("err", err))
		}
	}
	return result, nil
}

// List возвращает список участников, опционально отфильтрованный поисковой строкой.
// Поиск выполняется по имени, телефону и регистрационному номеру.
func (s *MemberService) List(ctx context.Context, search string) ([]*models.Member, error) {
	var members []*models.Member
	found, err := s.cache.Get(listCacheKey, &members)
	if err != nil {
		return nil, err
	}
	if !found {
		members, err = s.repo.ListMembers(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(listCacheKey, members, 5*time.Minute); err != nil {
			s.log.Warn("failed to cache members list", slog.Any("err", err))
		}
	}

	if search == "" {
		return members, nil
	}

	query := strings.ToLower(strings.TrimSpace(search))
	filtered := make([]*models.Member, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), query) ||
			strings.Contains(m.Phone, query) ||
			strconv.Itoa(m.RegNo) == query {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}
