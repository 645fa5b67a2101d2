// Package current реализует HTTP-обработчик чтения текущей подписки аккаунта.
//
// Возвращает последнюю запись подписки и признак, квалифицирует ли она
// аккаунт для доступа. Отсутствие подписки — не ошибка: в этом случае
// запись в ответе null.
package current

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

// Service описывает интерфейс бизнес-логики чтения подписки.
type Service interface {
	Current(ctx context.Context, accountUID string) (*models.SubscriptionRecord, bool, error)
}

// Handler обрабатывает запросы на чтение текущей подписки.
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
// @Summary Текущая подписка аккаунта
// @Description Возвращает последнюю запись подписки и признак её квалификации.
// @Tags Subscription
// @Produce  json
// @Success 200 {object} map[string]any "Данные подписки"
// @Failure 401 {object} response.ErrorResponse "Нет верифицированного субъекта"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /subscription [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.current"

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

	record, qualifies, err := h.service.Current(r.Context(), subjectID)
	if err != nil {
		log.Error("failed to read subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription"))
		return
	}

	log.Info("subscription read",
		slog.String("subject_id", subjectID),
		slog.Bool("qualifies", qualifies))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscription": record,
		"qualifies":    qualifies,
	}))
}
