package models

import "time"

// Check — один из фактов, которые гейт может требовать от аккаунта.
type Check string

const (
	// CheckOnboarding — требование завершённого онбординга.
	CheckOnboarding Check = "onboarding"
	// CheckSubscription — требование квалифицирующей подписки.
	CheckSubscription Check = "subscription"
)

// CheckSet — набор требуемых проверок для конкретной точки вызова.
type CheckSet map[Check]struct{}

// NewCheckSet собирает набор проверок из перечисленных фактов.
func NewCheckSet(checks ...Check) CheckSet {
	set := make(CheckSet, len(checks))
	for _, c := range checks {
		set[c] = struct{}{}
	}
	return set
}

// Has сообщает, входит ли проверка в набор.
func (s CheckSet) Has(c Check) bool {
	_, ok := s[c]
	return ok
}

// Reason — машиночитаемый код результата гейта. Коды стабильны:
// клиент маршрутизируется по ним, не разбирая текст сообщения.
type Reason string

const (
	// ReasonUnauthenticated — запрос без верифицированного субъекта.
	ReasonUnauthenticated Reason = "UNAUTHENTICATED"
	// ReasonNotFound — субъект аутентифицирован, но аккаунта в хранилище нет.
	ReasonNotFound Reason = "NOT_FOUND"
	// ReasonOnboardingIncomplete — онбординг не завершён.
	ReasonOnboardingIncomplete Reason = "ONBOARDING_INCOMPLETE"
	// ReasonNoActiveSubscription — нет квалифицирующей подписки.
	ReasonNoActiveSubscription Reason = "NO_ACTIVE_SUBSCRIPTION"
)

// Decision — результат работы гейта: либо разрешение, либо отказ с кодом,
// человекочитаемым сообщением и подсказкой маршрута для восстановления.
// Отказ по бизнес‑правилу — ожидаемый результат, не ошибка.
type Decision struct {
	Allowed      bool   // Разрешён ли доступ
	Reason       Reason // Код причины отказа, пустой при разрешении
	Message      string // Человекочитаемое описание причины
	RedirectHint string // Маршрут восстановления на клиенте, пустой если его нет
}

// Allow возвращает разрешающее решение.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny возвращает отказ с заданной причиной. Подсказка маршрута задаётся
// здесь и только здесь, чтобы соответствие причина→маршрут не расползалось
// по точкам вызова.
func Deny(reason Reason) Decision {
	d := Decision{Allowed: false, Reason: reason}
	switch reason {
	case ReasonUnauthenticated:
		d.Message = "authentication required"
	case ReasonNotFound:
		d.Message = "account not found"
	case ReasonOnboardingIncomplete:
		d.Message = "onboarding is not completed"
		d.RedirectHint = "/onboarding"
	case ReasonNoActiveSubscription:
		d.Message = "no active subscription"
		d.RedirectHint = "/pricing"
	}
	return d
}

// StatusProjection — сводный статус доступа для отображения в интерфейсе.
// Проекция никогда не запрещает доступ, она только сообщает; поле HasAccess
// обязано считаться тем же правилом, что и комбинированный гейт.
type StatusProjection struct {
	Found                     bool                  `json:"found"`
	Role                      string                `json:"role,omitempty"`
	OnboardingCompleted       bool                  `json:"onboarding_completed"`
	HasQualifyingSubscription bool                  `json:"has_qualifying_subscription"`
	Subscription              *SubscriptionSnapshot `json:"subscription,omitempty"`
	PlanName                  string                `json:"plan_name,omitempty"`
	HasAccess                 bool                  `json:"has_access"`
}

// AccountOverview — строка административного списка аккаунтов с их
// фактами доступа (источник данных для комплаенс‑панели).
type AccountOverview struct {
	AccountUID                string    `json:"account_uid"`
	Username                  string    `json:"username"`
	Email                     string    `json:"email"`
	Role                      string    `json:"role"`
	OnboardingCompleted       bool      `json:"onboarding_completed"`
	HasQualifyingSubscription bool      `json:"has_qualifying_subscription"`
	CreatedAt                 time.Time `json:"created_at"`
}
