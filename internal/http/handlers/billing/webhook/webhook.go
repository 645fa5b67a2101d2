// Package webhook реализует приём событий биллинг-провайдера.
//
// Провайдер подписывает тело запроса HMAC-SHA256 и передаёт подпись
// в заголовке X-Api-Signature. Запросы с неверной подписью отклоняются
// до разбора тела. Обрабатываются только события жизненного цикла
// подписки; незнакомые события подтверждаются и игнорируются, чтобы
// провайдер не ретраил их бесконечно.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/access-gate/internal/lib/sl"
	"github.com/magabrotheeeer/access-gate/internal/services/subscription"
)

// Service описывает интерфейс бизнес-логики обработки событий биллинга.
type Service interface {
	ProcessBillingEvent(ctx context.Context, event subscription.BillingEvent) error
}

// Handler обрабатывает вебхуки биллинг-провайдера.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string // Секрет для проверки подписи
}

// New создает новый Handler с переданными логгером, сервисом и секретом.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

// Payload — тело события провайдера.
type Payload struct {
	Event  string `json:"event"`
	Object struct {
		ID               string            `json:"id"`     // идентификатор подписки у провайдера
		Status           string            `json:"status"` // статус подписки
		PlanID           string            `json:"plan_id"`
		CurrentPeriodEnd time.Time         `json:"current_period_end"`
		Metadata         map[string]string `json:"metadata"` // account_uid и др.
	} `json:"object"`
}

// Проверка подписи webhook (X-Api-Signature)
func (h *Handler) verifySignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expectedSig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expectedSig), []byte(signature))
}

// ServeHTTP godoc
// @Summary Вебхук биллинг-провайдера
// @Description Принимает подписанные события подписки и обновляет локальные записи.
// @Tags Billing
// @Accept  json
// @Success 200 "Событие принято"
// @Failure 400 "Некорректное тело"
// @Failure 401 "Неверная подпись"
// @Failure 500 "Внутренняя ошибка сервера"
// @Router /webhooks/billing [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.webhook"
	log := h.log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Api-Signature")
	if signature == "" || !h.verifySignature(h.webhookSecret, body, signature) {
		log.Error("invalid or missing webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	const (
		SubscriptionCreated  = "subscription.created"
		SubscriptionUpdated  = "subscription.updated"
		SubscriptionCanceled = "subscription.canceled"
	)

	switch strings.ToLower(payload.Event) {
	case SubscriptionCreated, SubscriptionUpdated, SubscriptionCanceled:
		event := subscription.BillingEvent{
			AccountUID:             payload.Object.Metadata["account_uid"],
			ProviderSubscriptionID: payload.Object.ID,
			PlanID:                 payload.Object.PlanID,
			Status:                 payload.Object.Status,
			CurrentPeriodEnd:       payload.Object.CurrentPeriodEnd,
		}
		if err := h.service.ProcessBillingEvent(r.Context(), event); err != nil {
			log.Error("failed to process billing event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	default:
		log.Info("ignored webhook event", slog.String("event", payload.Event))
	}

	log.Info("webhook processed successfully",
		slog.String("event", payload.Event),
		slog.String("provider_subscription_id", payload.Object.ID))
	w.WriteHeader(http.StatusOK)
}
