package services

import (
	"context"
	"time"
)

// TokenDenylist хранит идентификаторы отозванных токенов до истечения
// их естественного срока жизни. Это состояние сессий, а не кэш ресурсов:
// данные заметок и пользователей всегда читаются из базы.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
