// Package account содержит бизнес-логику жизненного цикла аккаунта:
// завершение онбординга и административный список аккаунтов.
package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/access-gate/internal/models"
	"github.com/magabrotheeeer/access-gate/internal/rabbitmq"
)

// Repository описывает методы хранилища, нужные сервису аккаунтов.
type Repository interface {
	// GetAccountStatus возвращает факты доступа одним согласованным снимком.
	GetAccountStatus(ctx context.Context, subjectID string) (*models.AccountStatus, error)
	// CompleteOnboarding переводит онбординг аккаунта в завершённое состояние.
	CompleteOnboarding(ctx context.Context, accountUID string) error
	// ListAccountOverviews возвращает список аккаунтов с фактами доступа.
	ListAccountOverviews(ctx context.Context, limit, offset int) ([]*models.AccountOverview, error)
}

// EventPublisher публикует события жизненного цикла аккаунта.
type EventPublisher interface {
	Publish(routingKey string, event rabbitmq.AccountEvent) error
}

// AccountService реализует операции над аккаунтом поверх хранилища
// и публикатора событий.
type AccountService struct {
	repo      Repository
	publisher EventPublisher
	log       *slog.Logger
}

// NewAccountService создает новый экземпляр AccountService.
func NewAccountService(repo Repository, publisher EventPublisher, log *slog.Logger) *AccountService {
	return &AccountService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// CompleteOnboarding завершает онбординг субъекта. Переход одноразовый:
// повторный вызов идемпотентен и события не публикует. Возвращает true,
// если состояние изменилось этим вызовом.
func (s *AccountService) CompleteOnboarding(ctx context.Context, subjectID string) (bool, error) {
	st, err := s.repo.GetAccountStatus(ctx, subjectID)
	if err != nil {
		return false, err
	}
	if st.OnboardingCompleted {
		return false, nil
	}

	if err := s.repo.CompleteOnboarding(ctx, st.AccountUID); err != nil {
		return false, err
	}
	s.log.Info("onboarding completed", slog.String("account_uid", st.AccountUID))

	event := rabbitmq.AccountEvent{
		AccountUID: st.AccountUID,
		Kind:       rabbitmq.RoutingKeyOnboardingCompleted,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyOnboardingCompleted, event); err != nil {
		s.log.Warn("failed to publish onboarding event",
			slog.String("account_uid", st.AccountUID), slog.Any("err", err))
	}
	return true, nil
}

// ListOverviews возвращает страницу аккаунтов с их фактами доступа.
func (s *AccountService) ListOverviews(ctx context.Context, limit, offset int) ([]*models.AccountOverview, error) {
	return s.repo.ListAccountOverviews(ctx, limit, offset)
}
