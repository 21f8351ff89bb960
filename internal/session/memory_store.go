package session

import (
	"context"
	"sync"
	"time"

	xerrors "Lambda-Link/internal/errors"
	"Lambda-Link/internal/notation"
)

// MemoryStore 以内存方式保存会话状态，主要用于测试和单机部署。
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore 创建 MemoryStore。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Create 实现 Store 接口。
func (m *MemoryStore) Create(_ context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return xerrors.New(xerrors.CodeInvalidArgument, "会话 ID 不能为空")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[session.ID]; ok {
		return ErrSessionConflict
	}
	now := time.Now().Unix()
	if session.CreatedAt == 0 {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	m.sessions[session.ID] = cloneSession(session)
	return nil
}

// Get 返回会话副本。
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// Save 覆盖会话的上下文状态。
func (m *MemoryStore) Save(_ context.Context, id string, state notation.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.State = cloneState(state)
	session.UpdatedAt = time.Now().Unix()
	return nil
}

// Delete 移除会话。删除不存在的会话是无操作。
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Close 对内存存储无需操作。
func (m *MemoryStore) Close() error {
	return nil
}

func cloneSession(session *Session) *Session {
	clone := *session
	clone.State = cloneState(session.State)
	return &clone
}

func cloneState(state notation.State) notation.State {
	clone := notation.State{}
	if len(state.Domains) > 0 {
		clone.Domains = make([]string, len(state.Domains))
		copy(clone.Domains, state.Domains)
	}
	if len(state.Definitions) > 0 {
		clone.Definitions = make(map[string]string, len(state.Definitions))
		for k, v := range state.Definitions {
			clone.Definitions[k] = v
		}
	}
	return clone
}

// ensure interface compliance at compile time
var _ Store = (*MemoryStore)(nil)
