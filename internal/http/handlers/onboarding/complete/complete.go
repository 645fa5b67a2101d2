// Package complete реализует HTTP-обработчик завершения онбординга.
//
// Операция идемпотентна: повторный вызов для уже завершённого онбординга
// отвечает успехом и не меняет состояние.
package complete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/access-gate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/access-gate/internal/http/response"
	"github.com/magabrotheeeer/access-gate/internal/lib/sl"
	"github.com/magabrotheeeer/access-gate/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики завершения онбординга.
type Service interface {
	CompleteOnboarding(ctx context.Context, subjectID string) (bool, error)
}

// Handler обрабатывает запросы на завершение онбординга.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Завершение онбординга
// @Description Отмечает онбординг аккаунта завершённым. Идемпотентно.
// @Tags Onboarding
// @Produce  json
// @Success 200 {object} map[string]any "Онбординг завершён"
// @Failure 401 {object} response.ErrorResponse "Нет верифицированного субъекта"
// @Failure 404 {object} response.ErrorResponse "Аккаунт не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /onboarding/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.onboarding.complete"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subjectID, _ := r.Context().Value(middlewarectx.SubjectID).(string)
	if subjectID == "" {
		log.Error("missing subject in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthenticated"))
		return
	}

	changed, err := h.service.CompleteOnboarding(r.Context(), subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			log.Info("account not found", slog.String("subject_id", subjectID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
			return
		}
		log.Error("failed to complete onboarding", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not complete onboarding"))
		return
	}

	log.Info("onboarding completed",
		slog.String("subject_id", subjectID),
		slog.Bool("changed", changed))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"completed": true,
		"changed":   changed,
	}))
}
