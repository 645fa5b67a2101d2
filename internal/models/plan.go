package models

// Plan — метаданные тарифного плана. Используются только отображающим
// путём (имя плана в проекции статуса), на решение гейта не влияют.
type Plan struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
}
