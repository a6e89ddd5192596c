// Package update реализует HTTP-обработчик изменения помесячного статуса оплаты.
//
// Handler принимает JSON с месяцем, целевым статусом и суммой, валидирует их
// и делегирует мутацию сервису оплат. Ошибки доменных инвариантов
// (защита первого месяца, неизвестный статус) транслируются в коды HTTP.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/membership-ledger/internal/http/response"
	"github.com/magabrotheeeer/membership-ledger/internal/ledger"
	"github.com/magabrotheeeer/membership-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/membership-ledger/internal/models"
	"github.com/magabrotheeeer/membership-ledger/internal/storage/repository"
)

// Handler обрабатывает запросы на изменение статуса оплаты месяца.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики применения оплаты.
type Service interface {
	ApplyPayment(ctx context.Context, memberID string, req models.DummyPaymentUpdate) (*models.PaymentFields, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить статус оплаты месяца
// @Description Помечает месяц оплаченным, неоплаченным или замороженным. Авансовый платёж закрывает cover_months последовательных месяцев.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param id path string true "ID участника"
// @Param request body models.DummyPaymentUpdate true "Обновление оплаты"
// @Success 200 {object} map[string]any "Новое платёжное состояние"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 409 {object} response.ErrorResponse "Конфликт версий документа"
// @Failure 422 {object} response.ErrorResponse "Нарушение доменных инвариантов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при записи"
// @Router /members/{id}/payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.update"

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

	var req models.DummyPaymentUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	fields, err := h.service.ApplyPayment(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMemberNotFound):
			log.Error("member not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
		case errors.Is(err, ledger.ErrFirstMonthLocked):
			log.Error("first liability month is protected", slog.String("month", req.Month))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("first liability month cannot be unpaid or frozen"))
		case errors.Is(err, ledger.ErrInvalidMonth), errors.Is(err, ledger.ErrUnknownStatus):
			log.Error("invalid payment update", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid payment update"))
		case errors.Is(err, repository.ErrVersionConflict):
			log.Error("version conflict", slog.String("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("concurrent update, try again"))
		default:
			log.Error("failed to apply payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not apply payment"))
		}
		return
	}

	log.Info("success to apply payment",
		slog.String("id", id),
		slog.String("month", req.Month),
		slog.String("status", req.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payments":         fields.Payments,
		"payments_amounts": fields.PaymentsAmounts,
		"frozen_months":    fields.FrozenMonths,
	}))
}
