package storage

import (
	"context"
	"errors"

	"Doudizhu/internal/game/engine"
)

var (
	ErrNotFound = errors.New("match not found")
	// ErrConflict 乐观并发：存储中的版本已不是调用方加载时的版本
	ErrConflict = errors.New("match version conflict")
)

// MatchRepo 对局存取的抽象操作
type MatchRepo interface {
	// Load 按 id 取完整对局，不存在返回 ErrNotFound
	Load(ctx context.Context, id string) (*engine.Match, error)
	// Store 带版本校验写入：仅当存储中的版本等于 expectedVersion 时成功
	// （新建传 0），否则返回 ErrConflict。调用方必须重新加载后重算，
	// 不允许盲目重放。
	Store(ctx context.Context, m *engine.Match, expectedVersion int64) error
}
