// Package models содержит доменные структуры сервиса: аккаунты, состояние
// онбординга, записи подписок, планы и результаты решения о доступе.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли аккаунтов. Роль неизменна в рамках сервиса, смена роли —
// привилегированная административная операция вне этого компонента.
const (
	RoleClient = "client"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
)

// RoleBypassesGate сообщает, обходит ли роль проверки онбординга и подписки.
// Единственная точка, где закреплён список привилегированных ролей:
// все вызовы гейта обязаны пользоваться этим предикатом, а не сравнивать
// строки на месте.
func RoleBypassesGate(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}

// Account представляет аутентифицированного субъекта системы.
type Account struct {
	UID               string    // Внутренний идентификатор (первичный ключ)
	ExternalSubjectID string    // Идентификатор субъекта у внешнего провайдера идентичности
	Username          string    // Имя пользователя (уникальное)
	Email             string    // Электронная почта
	PasswordHash      string    // Хэш пароля
	Role              string    // Роль: client, staff или admin
	CreatedAt         time.Time // Дата создания аккаунта
}

// AccountStatus — нормализованный кортеж фактов доступа, прочитанный
// одним согласованным снимком хранилища. Оба факта (онбординг и подписка)
// читаются одним запросом: порознь между чтениями онбординг мог бы
// успеть завершиться.
type AccountStatus struct {
	AccountUID                string                // Внутренний идентификатор аккаунта
	Role                      string                // Роль аккаунта
	OnboardingCompleted       bool                  // Завершён ли онбординг (отсутствие строки = false)
	HasQualifyingSubscription bool                  // Есть ли хоть одна квалифицирующая запись подписки
	Subscription              *SubscriptionSnapshot // Последняя по времени создания запись подписки, nil если записей нет
}
