// Package list реализует HTTP-обработчик для получения списка участников.
//
// Handler поддерживает необязательный параметр запроса search для поиска
// по имени, телефону или регистрационному номеру.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/membership-ledger/internal/http/response"
	"github.com/magabrotheeeer/membership-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/membership-ledger/internal/models"
)

// Handler обрабатывает запросы на получение списка участников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка участников.
type Service interface {
	List(ctx context.Context, search string) ([]*models.Member, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список участников
// @Description Возвращает всех участников, отсортированных по регистрационному номеру. Поддерживает поиск по имени, телефону и номеру.
// @Tags Members
// @Produce  json
// @Param search query string false "Поисковая строка"
// @Success 200 {object} map[string]any "Список участников"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении списка"
// @Router /members [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	search := r.URL.Query().Get("search")

	members, err := h.service.List(r.Context(), search)
	if err != nil {
		log.Error("failed to list members", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list members"))
		return
	}

	log.Info("success to list members", slog.Int("count", len(members)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"members": members,
		"count":   len(members),
	}))
}
