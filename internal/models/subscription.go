package models

import "time"

// Статусы записи подписки, приходящие от биллинг‑провайдера.
// Квалифицирующими считаются только active и trialing; прочие статусы
// (past_due, canceled и другие терминальные) хранятся как есть и
// доступа не дают.
const (
	SubscriptionActive   = "active"
	SubscriptionTrialing = "trialing"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// SubscriptionRecord — одна запись подписки аккаунта. Записей может быть
// несколько (история продлений); для отображения авторитетна последняя
// созданная, для гейта — существование любой квалифицирующей.
type SubscriptionRecord struct {
	ID                     int       // Идентификатор записи
	AccountUID             string    // Аккаунт-владелец
	PlanID                 string    // План подписки
	Status                 string    // Статус у провайдера
	CurrentPeriodEnd       time.Time // Конец текущего оплаченного периода
	ProviderSubscriptionID string    // Идентификатор подписки у провайдера
	CreatedAt              time.Time // Дата создания записи
}

// SubscriptionSnapshot — срез последней записи подписки для отображения.
type SubscriptionSnapshot struct {
	Status           string    `json:"status"`
	PlanID           string    `json:"plan_id"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
}

// Qualifies сообщает, даёт ли запись доступ на момент now.
// Запись со статусом active, но истёкшим периодом, не квалифицируется.
func (r *SubscriptionRecord) Qualifies(now time.Time) bool {
	if r.Status != SubscriptionActive && r.Status != SubscriptionTrialing {
		return false
	}
	return r.CurrentPeriodEnd.After(now)
}
