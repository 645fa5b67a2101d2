// Package status реализует HTTP-обработчик проекции статуса доступа.
//
// Эндпоинт информационный, а не запрещающий: он отдаёт факты аккаунта
// (онбординг, подписка, итоговый доступ) для отрисовки интерфейса,
// но сам ничего не блокирует. Неизвестный аккаунт — это found=false
// в теле ответа, а не ошибка.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/access-gate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/access-gate/internal/http/response"
	"github.com/magabrotheeeer/access-gate/internal/lib/sl"
	"github.com/magabrotheeeer/access-gate/internal/models"
)

// Service описывает интерфейс бизнес-логики проекции статуса.
type Service interface {
	ProjectStatus(ctx context.Context, subjectID string) (*models.StatusProjection, error)
}

// Handler обрабатывает запросы на получение проекции статуса аккаунта.
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
// @Summary Проекция статуса доступа
// @Description Возвращает факты аккаунта и итоговый флаг доступа. Ничего не блокирует.
// @Tags Access
// @Produce  json
// @Success 200 {object} map[string]any "Проекция статуса"
// @Failure 401 {object} response.ErrorResponse "Нет верифицированного субъекта"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /access/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.status"

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

	projection, err := h.service.ProjectStatus(r.Context(), subjectID)
	if err != nil {
		log.Error("failed to project account status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read account status"))
		return
	}

	log.Info("status projected",
		slog.String("subject_id", subjectID),
		slog.Bool("has_access", projection.HasAccess))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": projection,
	}))
}
