package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Init() {
	log = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	log.Info("logger initialized")
}

func Info(msg string, fields map[string]any) {
	log.Info(msg, args(fields)...)
}

func Warn(msg string, fields map[string]any) {
	log.Warn(msg, args(fields)...)
}

func Error(msg string, fields map[string]any) {
	log.Error(msg, args(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	log.Error(msg, args(fields)...)
	os.Exit(1)
}

func args(fields map[string]any) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
