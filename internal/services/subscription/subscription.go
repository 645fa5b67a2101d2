// Package subscription содержит бизнес-логику обслуживания записей подписок:
// обработку событий биллинг-провайдера и чтение текущей подписки аккаунта.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/access-gate/internal/models"
	"github.com/magabrotheeeer/access-gate/internal/rabbitmq"
)

// Repository описывает методы хранилища, нужные сервису подписок.
type Repository interface {
	// UpsertSubscriptionRecord добавляет или обновляет запись подписки
	// по идентификатору подписки у провайдера.
	UpsertSubscriptionRecord(ctx context.Context, rec models.SubscriptionRecord) (int, error)
	// GetLatestSubscription возвращает последнюю запись подписки аккаунта.
	GetLatestSubscription(ctx context.Context, accountUID string) (*models.SubscriptionRecord, error)
}

// EventPublisher публикует события жизненного цикла аккаунта.
type EventPublisher interface {
	Publish(routingKey string, event rabbitmq.AccountEvent) error
}

// BillingEvent — нормализованное событие биллинг-провайдера после
// проверки подписи и разбора полезной нагрузки вебхука.
type BillingEvent struct {
	AccountUID             string    // Аккаунт из метаданных события
	ProviderSubscriptionID string    // Идентификатор подписки у провайдера
	PlanID                 string    // План подписки
	Status                 string    // Новый статус
	CurrentPeriodEnd       time.Time // Конец оплаченного периода
}

// SubscriptionService реализует обслуживание записей подписок.
type SubscriptionService struct {
	repo      Repository
	publisher EventPublisher
	log       *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo Repository, publisher EventPublisher, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// ProcessBillingEvent применяет событие провайдера к записям подписок.
// Статусы провайдера хранятся как есть: квалификацию (active/trialing и
// неистёкший период) вычисляет предикат хранилища в момент решения гейта,
// а не при записи.
func (s *SubscriptionService) ProcessBillingEvent(ctx context.Context, event BillingEvent) error {
	const op = "services.subscription.ProcessBillingEvent"

	rec := models.SubscriptionRecord{
		AccountUID:             event.AccountUID,
		PlanID:                 event.PlanID,
		Status:                 event.Status,
		CurrentPeriodEnd:       event.CurrentPeriodEnd,
		ProviderSubscriptionID: event.ProviderSubscriptionID,
	}
	id, err := s.repo.UpsertSubscriptionRecord(ctx, rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("subscription record upserted",
		slog.Int("id", id),
		slog.String("account_uid", event.AccountUID),
		slog.String("status", event.Status))

	accountEvent := rabbitmq.AccountEvent{
		AccountUID: event.AccountUID,
		Kind:       rabbitmq.RoutingKeySubscriptionUpdated,
		OccurredAt: time.Now().UTC(),
		Detail:     event.Status,
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeySubscriptionUpdated, accountEvent); err != nil {
		s.log.Warn("failed to publish subscription event",
			slog.String("account_uid", event.AccountUID), slog.Any("err", err))
	}
	return nil
}

// Current возвращает последнюю запись подписки аккаунта и признак её
// квалификации на текущий момент. Запись может отсутствовать.
func (s *SubscriptionService) Current(ctx context.Context, accountUID string) (*models.SubscriptionRecord, bool, error) {
	rec, err := s.repo.GetLatestSubscription(ctx, accountUID)
	if err != nil {
		return nil, false, err
	}
	if rec == nil {
		return nil, false, nil
	}
	return rec, rec.Qualifies(time.Now()), nil
}
