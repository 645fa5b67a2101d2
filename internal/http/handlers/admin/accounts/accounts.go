// Package accounts реализует административный список аккаунтов.
//
// Эндпоинт доступен только ролям staff и admin; клиентам возвращается
// HTTP 403 независимо от состояния их онбординга и подписки.
package accounts

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/access-gate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/access-gate/internal/http/response"
	"github.com/magabrotheeeer/access-gate/internal/lib/sl"
	"github.com/magabrotheeeer/access-gate/internal/models"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Service описывает интерфейс бизнес-логики списка аккаунтов.
type Service interface {
	ListOverviews(ctx context.Context, limit, offset int) ([]*models.AccountOverview, error)
}

// Handler обрабатывает запросы административного списка аккаунтов.
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
// @Summary Список аккаунтов с фактами доступа
// @Description Постраничный список аккаунтов для комплаенс-панели. Только staff и admin.
// @Tags Admin
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 50, максимум 200)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Страница аккаунтов"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admin/accounts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.accounts"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	role, _ := r.Context().Value(middlewarectx.Role).(string)
	if !models.RoleBypassesGate(role) {
		log.Info("forbidden for role", slog.String("role", role))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("insufficient permissions"))
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			log.Error("failed to decode limit from query", slog.String("limit", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid limit"))
			return
		}
		limit = min(v, maxLimit)
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			log.Error("failed to decode offset from query", slog.String("offset", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid offset"))
			return
		}
		offset = v
	}

	overviews, err := h.service.ListOverviews(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list accounts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list accounts"))
		return
	}

	log.Info("accounts listed", slog.Int("count", len(overviews)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"accounts": overviews,
		"limit":    limit,
		"offset":   offset,
	}))
}
