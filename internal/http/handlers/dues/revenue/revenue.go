// Package revenue реализует HTTP-обработчик для получения выручки за месяц.
//
// Handler принимает необязательный параметр запроса month в формате YYYY-MM;
// без него считается выручка за текущий месяц.
package revenue

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/membership-ledger/internal/http/response"
	"github.com/magabrotheeeer/membership-ledger/internal/ledger"
	"github.com/magabrotheeeer/membership-ledger/internal/lib/sl"
)

// Handler обрабатывает запросы на расчёт выручки за месяц.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расчёта выручки.
type Service interface {
	MonthlyRevenue(ctx context.Context, monthKey string) (string, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выручка за месяц
// @Description Возвращает фактическую выручку за указанный месяц. Без параметра month считается текущий месяц.
// @Tags Dues
// @Produce  json
// @Param month query string false "Месяц в формате YYYY-MM"
// @Success 200 {object} map[string]any "Выручка за месяц"
// @Failure 400 {object} response.ErrorResponse "Некорректный формат месяца"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при расчёте"
// @Router /members/revenue [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dues.revenue"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	monthKey := r.URL.Query().Get("month")

	month, total, err := h.service.MonthlyRevenue(r.Context(), monthKey)
	if errors.Is(err, ledger.ErrInvalidMonth) {
		log.Error("invalid month key", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid month, expected YYYY-MM"))
		return
	}
	if err != nil {
		log.Error("failed to compute revenue", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute revenue"))
		return
	}

	log.Info("success to compute revenue", slog.String("month", month), slog.Int("total", total))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"month":   month,
		"revenue": total,
	}))
}
