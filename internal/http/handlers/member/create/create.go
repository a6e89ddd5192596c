// Package create реализует HTTP-обработчик для регистрации новых участников.
//
// Handler принимает JSON-запрос с данными участника, валидирует их,
// вызывает бизнес-логику создания карточки через сервис и возвращает
// созданную карточку с присвоенным регистрационным номером.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/membership-ledger/internal/http/response"
	"github.com/magabrotheeeer/membership-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/membership-ledger/internal/models"
)

// Handler управляет HTTP-запросами на регистрацию новых участников.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания карточек
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания участника.
type Service interface {
	Create(ctx context.Context, req models.DummyMember) (*models.Member, error)
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
// @Summary Зарегистрировать нового участника
// @Description Создает карточку участника и присваивает регистрационный номер.
// @Tags Members
// @Accept  json
// @Produce  json
// @Param request body models.DummyMember true "Данные нового участника"
// @Success 200 {object} map[string]any "Созданная карточка участника"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании карточки"
// @Router /members [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMember
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

	member, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create member"))
		return
	}

	log.Info("success to create member", slog.String("id", member.ID), slog.Int("reg_no", member.RegNo))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"member": member,
	}))
}
