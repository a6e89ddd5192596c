// Package list реализует HTTP-обработчик для получения сводки задолженностей.
//
// Handler возвращает список участников с неоплаченными месяцами,
// отсортированный по убыванию серьёзности задолженности.
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

// Handler обрабатывает запросы на получение сводки задолженностей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расчёта задолженностей.
type Service interface {
	ComputeDueList(ctx context.Context) ([]models.DueSummary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка задолженностей
// @Description Возвращает сводку задолженностей по всем участникам, отсортированную по серьёзности.
// @Tags Dues
// @Produce  json
// @Success 200 {object} map[string]any "Список задолженностей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при расчёте"
// @Router /members/dues [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dues.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summaries, err := h.service.ComputeDueList(r.Context())
	if err != nil {
		log.Error("failed to compute due list", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute due list"))
		return
	}

	log.Info("success to compute due list", slog.Int("count", len(summaries)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"dues":  summaries,
		"count": len(summaries),
	}))
}
