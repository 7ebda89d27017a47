package repository

import (
	"context"
	"time"
)

// QuotaRepository хранит общий для всех реплик счётчик запросов к провайдеру
type QuotaRepository interface {
	// Acquire забирает один слот в текущем окне. Если лимит исчерпан,
	// возвращает false и время до начала следующего окна.
	Acquire(ctx context.Context, name string, limit int, window time.Duration) (bool, time.Duration, error)
}
