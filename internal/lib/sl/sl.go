// Package sl содержит вспомогательные функции для структурированных полей
// логгера slog, чтобы ошибки и решения гейта логировались единообразно.
package sl

import (
	"log/slog"

	"github.com/magabrotheeeer/access-gate/internal/models"
)

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
// Пример:
//
//	log.Error("failed to resolve account status", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Reason возвращает slog.Attr с ключом "reason" и кодом отказа гейта.
// Используется при логировании бизнес‑отказов на уровне Info.
func Reason(r models.Reason) slog.Attr {
	return slog.Attr{
		Key:   "reason",
		Value: slog.StringValue(string(r)),
	}
}
