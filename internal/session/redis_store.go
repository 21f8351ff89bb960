package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"Lambda-Link/internal/notation"
)

// RedisStoreConfig 描述 Redis 会话存储的连接参数。
type RedisStoreConfig struct {
	Address   string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// RedisStore 把会话状态序列化为 JSON 存入 Redis，供多实例部署共享。
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore 创建 Redis 会话存储实例。
func NewRedisStore(cfg RedisStoreConfig) (*RedisStore, error) {
	if cfg.Address == "" {
		return nil, errors.New("Redis address 不能为空")
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "lambdalink:sessions"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("连接 Redis 失败: %w", err)
	}
	return &RedisStore{client: client, prefix: prefix, ttl: cfg.TTL}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

// Create 实现 Store 接口。已存在的会话 ID 视为冲突。
func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return errors.New("会话 ID 不能为空")
	}
	now := time.Now().Unix()
	if session.CreatedAt == 0 {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("序列化会话失败: %w", err)
	}
	ok, err := s.client.SetNX(ctx, s.key(session.ID), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("写入 Redis 会话失败: %w", err)
	}
	if !ok {
		return ErrSessionConflict
	}
	return nil
}

// Get 返回会话。
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("读取 Redis 会话失败: %w", err)
	}
	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("解析 Redis 会话失败: %w", err)
	}
	return &session, nil
}

// Save 覆盖会话的上下文状态并刷新 TTL。
func (s *RedisStore) Save(ctx context.Context, id string, state notation.State) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	session.State = state
	session.UpdatedAt = time.Now().Unix()

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("序列化会话失败: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("写入 Redis 会话失败: %w", err)
	}
	return nil
}

// Delete 移除会话。
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("删除 Redis 会话失败: %w", err)
	}
	return nil
}

// Close 关闭 Redis 连接。
func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// ensure interface compliance at compile time
var _ Store = (*RedisStore)(nil)
