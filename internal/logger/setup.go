package logger

import (
	"io"
	"log/slog"
	"os"

	"ilabattach/internal/config"
)

// SetupDefault настраивает slog.Default на вывод в stderr: stdout занят
// результатом команды. Возвращает уровень, который можно понизить флагом -v.
func SetupDefault(cfg config.Logger) *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(cfg.Level)
	slog.SetDefault(New(os.Stderr, cfg.Plaintext, level))
	return level
}

func New(w io.Writer, plaintext bool, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if plaintext {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
