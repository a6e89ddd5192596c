// Package read реализует HTTP-обработчик для получения карточки участника по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику чтения карточки
// и возвращает её в JSON-формате вместе с производной сводкой задолженности.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/membership-ledger/internal/http/response"
	"github.com/magabrotheeeer/membership-ledger/internal/ledger"
	"github.com/magabrotheeeer/membership-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/membership-ledger/internal/models"
	"github.com/magabrotheeeer/membership-ledger/internal/storage/repository"
)

// Handler обрабатывает запросы на получение участника по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения карточки участника.
type Service interface {
	Get(ctx context.Context, id string) (*models.Member, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Карточка участника
// @Description Возвращает карточку участника по ID вместе со сводкой задолженности.
// @Tags Members
// @Produce  json
// @Param id path string true "ID участника"
// @Success 200 {object} map[string]any "Карточка участника"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении карточки"
// @Router /members/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing id in url"))
		return
	}

	member, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			log.Error("member not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
			return
		}
		log.Error("failed to read member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read member"))
		return
	}

	summary := ledger.Aggregate(*member, timeNow())

	log.Info("success to read member", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"member": member,
		"dues":   summary,
	}))
}
