// Package sl дополняет log/slog атрибутами, общими для всех сервисов реестра.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут с ключом "error", чтобы все записи
// об ошибках в логе имели одинаковую форму.
//
//	log.Error("failed to apply payment", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
