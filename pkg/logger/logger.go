package logger

import (
	"log"
)

// Logger описывает минимальный интерфейс структурированного логгера,
// достаточный для использования в usecase-слое, handler'ах и middleware.
// Передаётся явно через конструкторы — никаких глобальных синглтонов.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type stdLogger struct{}

// Default возвращает простой логгер на базе стандартного log.Printf.
// В будущем реализацию можно заменить на zap/logrus/zerolog без изменения интерфейса.
func Default() Logger {
	return &stdLogger{}
}

func (l *stdLogger) Info(msg string, fields map[string]any) {
	log.Printf("INFO: %s %v", msg, fields)
}

func (l *stdLogger) Warn(msg string, fields map[string]any) {
	log.Printf("WARN: %s %v", msg, fields)
}

func (l *stdLogger) Error(msg string, fields map[string]any) {
	log.Printf("ERROR: %s %v", msg, fields)
}

// Nop возвращает логгер, который ничего не пишет. Используется в тестах.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
