// Package access содержит решение о доступе: чтение фактов аккаунта,
// чистый вычислитель гейта и проекцию статуса для отображения.
//
// Гейт принимает решение по двум независимым фактам жизненного цикла
// аккаунта — завершённости онбординга и наличию квалифицирующей подписки.
// Отказ по бизнес-правилу — ожидаемый результат, а не ошибка; отказ
// хранилища — ошибка и никогда не превращается молча в разрешение
// или запрет.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/access-gate/internal/models"
	"github.com/magabrotheeeer/access-gate/internal/storage/repository"
)

// StatusRepository описывает чтение фактов доступа из хранилища.
type StatusRepository interface {
	// GetAccountStatus возвращает факты доступа одним согласованным снимком.
	// Для неизвестного субъекта возвращает repository.ErrAccountNotFound.
	GetAccountStatus(ctx context.Context, subjectID string) (*models.AccountStatus, error)
	// GetPlan возвращает метаданные плана или nil, если план неизвестен.
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
}

// Cache описывает методы для кэширования метаданных планов.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// planCacheTTL — срок жизни имени плана в кеше. Имя плана — отображающая
// метаинформация, устаревание до часа допустимо; факты гейта не кэшируются.
const planCacheTTL = time.Hour

// AllChecks — полный набор проверок комбинированного гейта.
// Этим же набором считается HasAccess в проекции статуса.
var AllChecks = models.NewCheckSet(models.CheckOnboarding, models.CheckSubscription)

// Evaluate — чистый вычислитель гейта. Правила упорядочены, срабатывает
// первое подходящее:
//
//  1. аккаунт не найден (st == nil) — NOT_FOUND;
//  2. роль staff или admin — разрешение без дальнейших проверок;
//  3. требуется онбординг и он не завершён — ONBOARDING_INCOMPLETE;
//  4. требуется подписка и квалифицирующей нет — NO_ACTIVE_SUBSCRIPTION;
//  5. иначе — разрешение.
//
// Онбординг проверяется раньше подписки намеренно: пользователь без обоих
// фактов всегда маршрутизируется сначала на онбординг.
func Evaluate(st *models.AccountStatus, checks models.CheckSet) models.Decision {
	if st == nil {
		return models.Deny(models.ReasonNotFound)
	}
	if models.RoleBypassesGate(st.Role) {
		return models.Allow()
	}
	if checks.Has(models.CheckOnboarding) && !st.OnboardingCompleted {
		return models.Deny(models.ReasonOnboardingIncomplete)
	}
	if checks.Has(models.CheckSubscription) && !st.HasQualifyingSubscription {
		return models.Deny(models.ReasonNoActiveSubscription)
	}
	return models.Allow()
}

// AccessService связывает чтение фактов, вычислитель и проекцию статуса.
// Сервис не хранит состояния между запросами: каждое решение читает
// хранилище заново.
type AccessService struct {
	repo  StatusRepository
	cache Cache
	log   *slog.Logger
}

// NewAccessService создает новый экземпляр AccessService.
func NewAccessService(repo StatusRepository, cache Cache, log *slog.Logger) *AccessService {
	return &AccessService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Check принимает решение о доступе для субъекта. Пустой идентификатор —
// UNAUTHENTICATED, неизвестный — NOT_FOUND; отказ хранилища возвращается
// ошибкой, решение при этом не принимается.
//
// При разрешении возвращается и прочитанный статус аккаунта, чтобы точка
// вызова могла передать его дальше без повторного чтения.
func (s *AccessService) Check(ctx context.Context, subjectID string, checks models.CheckSet) (models.Decision, *models.AccountStatus, error) {
	if subjectID == "" {
		return models.Deny(models.ReasonUnauthenticated), nil, nil
	}

	st, err := s.repo.GetAccountStatus(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return models.Deny(models.ReasonNotFound), nil, nil
		}
		return models.Decision{}, nil, err
	}

	return Evaluate(st, checks), st, nil
}

// ProjectStatus строит сводный статус доступа для отображения. Проекция
// никогда не запрещает: для неизвестного субъекта возвращается Found=false
// без ошибки; отказ хранилища пробрасывается ошибкой.
//
// HasAccess считается тем же вычислителем и тем же полным набором проверок,
// что и комбинированный гейт — отображение и принуждение не расходятся.
func (s *AccessService) ProjectStatus(ctx context.Context, subjectID string) (*models.StatusProjection, error) {
	st, err := s.repo.GetAccountStatus(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return &models.StatusProjection{Found: false}, nil
		}
		return nil, err
	}

	proj := &models.StatusProjection{
		Found:                     true,
		Role:                      st.Role,
		OnboardingCompleted:       st.OnboardingCompleted,
		HasQualifyingSubscription: st.HasQualifyingSubscription,
		Subscription:              st.Subscription,
		HasAccess:                 Evaluate(st, AllChecks).Allowed,
	}

	if st.Subscription != nil && st.Subscription.PlanID != "" {
		proj.PlanName = s.planName(ctx, st.Subscription.PlanID)
	}
	return proj, nil
}

// planName возвращает имя плана, используя кеш. Ошибки кеша и неизвестный
// план не фатальны для проекции: имя просто остаётся пустым.
func (s *AccessService) planName(ctx context.Context, planID string) string {
	cacheKey := fmt.Sprintf("plan:%s", planID)

	var cached models.Plan
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plan from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached.Name
	}

	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		s.log.Warn("failed to read plan", slog.String("plan_id", planID), slog.Any("err", err))
		return ""
	}
	if plan == nil {
		return ""
	}

	if err := s.cache.Set(cacheKey, plan, planCacheTTL); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return plan.Name
}
