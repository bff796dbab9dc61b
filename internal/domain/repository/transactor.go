package repository

import "context"

// Transactor выполняет fn в одной транзакции хранилища.
// Репозитории, вызванные с переданным в fn контекстом, работают внутри этой транзакции.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}
