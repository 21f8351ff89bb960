package session

import (
	"context"

	"Lambda-Link/internal/notation"
)

// Store 抽象了会话上下文状态的持久化接口。
type Store interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, state notation.State) error
	Delete(ctx context.Context, id string) error
	Close() error
}
