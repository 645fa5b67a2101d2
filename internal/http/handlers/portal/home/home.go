// Package home реализует стартовую точку клиентского портала.
//
// Маршрут закрыт комбинированным гейтом: сюда попадают только аккаунты
// с завершённым онбордингом и квалифицирующей подпиской (или роли staff
// и admin). Обработчик читает факты аккаунта из контекста, положенные
// гейтом, и не обращается к хранилищу.
package home

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/access-gate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/access-gate/internal/http/response"
)

// Handler обрабатывает запросы стартовой точки портала.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Стартовая точка портала
// @Description Доступна только за комбинированным гейтом. Возвращает факты аккаунта.
// @Tags Portal
// @Produce  json
// @Success 200 {object} map[string]any "Факты аккаунта"
// @Failure 401 {object} response.ErrorResponse "Нет верифицированного субъекта"
// @Failure 403 {object} response.Denial "Доступ запрещен гейтом"
// @Security BearerAuth
// @Router /portal [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.portal.home"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	st, ok := middlewarectx.AccountStatusFromContext(r.Context())
	if !ok {
		// Гейт ролей staff/admin пропускает без чтения статуса,
		// для них отдаем только роль из токена.
		role, _ := r.Context().Value(middlewarectx.Role).(string)
		log.Info("portal opened without status snapshot", slog.String("role", role))
		render.JSON(w, r, response.OKWithData(map[string]any{
			"role": role,
		}))
		return
	}

	log.Info("portal opened", slog.String("account_uid", st.AccountUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"account_uid":          st.AccountUID,
		"role":                 st.Role,
		"onboarding_completed": st.OnboardingCompleted,
		"subscription":         st.Subscription,
	}))
}
