package service

import "errors"

// Ошибки, специфичные для сервисов
var (
	// ErrGradingDisabled означает, что ключ сервиса оценки ответов не настроен
	ErrGradingDisabled = errors.New("answer grading is not configured")
)
