package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/access-gate/internal/http/response"
	"github.com/magabrotheeeer/access-gate/internal/lib/sl"
	"github.com/magabrotheeeer/access-gate/internal/models"
)

// AccessChecker описывает интерфейс сервиса решения о доступе.
type AccessChecker interface {
	Check(ctx context.Context, subjectID string, checks models.CheckSet) (models.Decision, *models.AccountStatus, error)
}

// RequireOnboarding пропускает только аккаунты с завершённым онбордингом.
// Роли staff и admin проходят без проверки.
func RequireOnboarding(log *slog.Logger, svc AccessChecker) func(http.Handler) http.Handler {
	return gate(log, svc, models.NewCheckSet(models.CheckOnboarding), false)
}

// RequireSubscription пропускает только аккаунты с квалифицирующей подпиской.
// Роли staff и admin проходят без проверки.
func RequireSubscription(log *slog.Logger, svc AccessChecker) func(http.Handler) http.Handler {
	return gate(log, svc, models.NewCheckSet(models.CheckSubscription), false)
}

// RequireFullAccess — комбинированный гейт: онбординг и подписка.
// При разрешении кладёт прочитанный статус аккаунта в контекст запроса
// под ключом AccountStatusKey.
func RequireFullAccess(log *slog.Logger, svc AccessChecker) func(http.Handler) http.Handler {
	return gate(log, svc, models.NewCheckSet(models.CheckOnboarding, models.CheckSubscription), true)
}

// AccountStatusFromContext извлекает статус аккаунта, сохранённый
// комбинированным гейтом.
func AccountStatusFromContext(ctx context.Context) (*models.AccountStatus, bool) {
	st, ok := ctx.Value(AccountStatusKey).(*models.AccountStatus)
	return st, ok
}

// gate — общая реализация гейтов. Все гейты принимают решение одним
// сервисом и отображают его в транспорт одним и тем же способом:
// расхождение семантики между точками вызова исключено конструктивно.
func gate(log *slog.Logger, svc AccessChecker, checks models.CheckSet, attachStatus bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.gate"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			subjectID, _ := r.Context().Value(SubjectID).(string)

			decision, st, err := svc.Check(r.Context(), subjectID, checks)
			if err != nil {
				log.Error("failed to check access",
					slog.String("subject_id", subjectID),
					slog.Any("checks", checks),
					sl.Err(err))
				observeDecision("error")
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !decision.Allowed {
				log.Info("access denied",
					slog.String("subject_id", subjectID),
					sl.Reason(decision.Reason))
				observeDecision(string(decision.Reason))
				w.WriteHeader(statusForReason(decision.Reason))
				render.JSON(w, r, response.Deny(decision))
				return
			}

			observeDecision("allow")
			if attachStatus && st != nil {
				ctx := context.WithValue(r.Context(), AccountStatusKey, st)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// statusForReason отображает причину отказа в класс HTTP-статуса.
// Отсутствие субъекта и отсутствие аккаунта отличимы от бизнес-отказов:
// клиент должен понимать, переавторизоваться ему или доделать онбординг.
func statusForReason(reason models.Reason) int {
	switch reason {
	case models.ReasonUnauthenticated:
		return http.StatusUnauthorized
	case models.ReasonNotFound:
		return http.StatusNotFound
	default:
		return http.StatusForbidden
	}
}
