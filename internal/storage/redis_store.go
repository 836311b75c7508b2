package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/guandan/internal/ai"
	"github.com/palemoky/guandan/internal/game/session"
)

const (
	// Redis key 前缀
	sessionKeyPrefix = "guandan:session:"
	memoryKeyPrefix  = "guandan:aimem:"
	resultKeyPrefix  = "guandan:result:"

	// 会话快照过期时间
	sessionExpiration = 2 * time.Hour
	// AI 记忆导出的过期时间，与记忆库的 TTL 对齐
	memoryExpiration = 24 * time.Hour
	// 对局结果保留时间
	resultExpiration = 7 * 24 * time.Hour
)

// SessionSnapshot 会话快照（用于 Redis 序列化）
type SessionSnapshot struct {
	SessionID string        `json:"session_id"`
	View      *session.View `json:"view"`
	SavedAt   int64         `json:"saved_at"`
}

// GameResult 单局对局结果
type GameResult struct {
	SessionID   string         `json:"session_id"`
	WinnerTeam  string         `json:"winner_team"`
	TeamLevels  map[string]int `json:"team_levels"`
	RoundsTotal int            `json:"rounds_total"`
	FinishedAt  int64          `json:"finished_at"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// --- 会话快照 ---

// SaveSession 保存会话快照
func (rs *RedisStore) SaveSession(ctx context.Context, snap *SessionSnapshot) error {
	if snap == nil || snap.View == nil {
		return nil
	}
	snap.SavedAt = time.Now().Unix()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("序列化会话快照失败: %w", err)
	}

	key := sessionKeyPrefix + snap.SessionID
	return rs.client.Set(ctx, key, data, sessionExpiration).Err()
}

// LoadSession 加载会话快照，不存在时返回 nil
func (rs *RedisStore) LoadSession(ctx context.Context, sessionID string) (*SessionSnapshot, error) {
	key := sessionKeyPrefix + sessionID
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snap SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("反序列化会话快照失败: %w", err)
	}
	return &snap, nil
}

// DeleteSession 删除会话快照
func (rs *RedisStore) DeleteSession(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	return rs.client.Del(ctx, key).Err()
}

// AllSessionIDs 列出所有持久化的会话
func (rs *RedisStore) AllSessionIDs(ctx context.Context) ([]string, error) {
	keys, err := rs.client.Keys(ctx, sessionKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(keys))
	for i, key := range keys {
		ids[i] = key[len(sessionKeyPrefix):]
	}
	return ids, nil
}

// --- AI 记忆 ---

// SaveMemory 保存某个 AI 玩家的记忆导出
func (rs *RedisStore) SaveMemory(ctx context.Context, dump ai.MemoryDump) error {
	data, err := json.Marshal(dump)
	if err != nil {
		return fmt.Errorf("序列化 AI 记忆失败: %w", err)
	}

	key := memoryKeyPrefix + dump.PlayerID
	return rs.client.Set(ctx, key, data, memoryExpiration).Err()
}

// LoadMemory 加载某个 AI 玩家的记忆导出，不存在时返回 nil
func (rs *RedisStore) LoadMemory(ctx context.Context, playerID string) (*ai.MemoryDump, error) {
	key := memoryKeyPrefix + playerID
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var dump ai.MemoryDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("反序列化 AI 记忆失败: %w", err)
	}
	return &dump, nil
}

// DeleteMemory 删除记忆导出
func (rs *RedisStore) DeleteMemory(ctx context.Context, playerID string) error {
	key := memoryKeyPrefix + playerID
	return rs.client.Del(ctx, key).Err()
}

// --- 对局结果 ---

// SaveResult 记录一局结果，按会话追加到列表
func (rs *RedisStore) SaveResult(ctx context.Context, result *GameResult) error {
	if result == nil {
		return nil
	}
	result.FinishedAt = time.Now().Unix()

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化对局结果失败: %w", err)
	}

	key := resultKeyPrefix + result.SessionID
	pipe := rs.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, resultExpiration)
	_, err = pipe.Exec(ctx)
	return err
}

// Results 按时间顺序返回某个会话的全部对局结果
func (rs *RedisStore) Results(ctx context.Context, sessionID string) ([]*GameResult, error) {
	key := resultKeyPrefix + sessionID
	items, err := rs.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*GameResult, 0, len(items))
	for _, item := range items {
		var r GameResult
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("反序列化对局结果失败: %w", err)
		}
		results = append(results, &r)
	}
	return results, nil
}

// --- 辅助方法 ---

// SetSessionExpiration 调整会话快照的过期时间
func (rs *RedisStore) SetSessionExpiration(ctx context.Context, sessionID string, expiration time.Duration) error {
	key := sessionKeyPrefix + sessionID
	return rs.client.Expire(ctx, key, expiration).Err()
}
