package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда пользователь, категория рекорда или игровая сессия не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется при нарушении уникальности (имя игрока, ключ достижения).
	ErrConflict = errors.New("resource state conflict")

	// ErrUpstream используется, когда внешний сервис (оценка ответов) недоступен или вернул ошибку.
	ErrUpstream = errors.New("upstream service failure")
)
