package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"Doudizhu/internal/game/card"
	"Doudizhu/internal/game/engine"
)

func sampleMatch(id string) *engine.Match {
	m := engine.NewMatch(id, "A")
	m.Players["A"].Hand = []card.Card{
		{Suit: card.Hearts, Rank: card.Rank3},
		{Suit: card.NoSuit, Rank: card.BigJoker},
	}
	return m
}

// ---------- 内存实现 ----------
func Test_MemoryRepo_LoadStore(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	_, err := repo.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	m := sampleMatch("m1")
	assert.NoError(t, repo.Store(ctx, m, 0))

	got, err := repo.Load(ctx, "m1")
	assert.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, m.Version, got.Version)
	assert.Equal(t, m.Players["A"].Hand, got.Players["A"].Hand)

	// Load 返回的是快照：改动它不影响存储
	got.Players["A"].Hand = nil
	again, _ := repo.Load(ctx, "m1")
	assert.Len(t, again.Players["A"].Hand, 2)
}

func Test_MemoryRepo_VersionConflict(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	m := sampleMatch("m1")
	assert.NoError(t, repo.Store(ctx, m, 0))

	// 重复创建
	assert.ErrorIs(t, repo.Store(ctx, m, 0), ErrConflict)

	// 正常推进
	loaded, _ := repo.Load(ctx, "m1")
	prev := loaded.Version
	loaded.Version++
	assert.NoError(t, repo.Store(ctx, loaded, prev))

	// 基于过期版本写入被拒绝
	stale := sampleMatch("m1")
	stale.Version = prev + 5
	assert.ErrorIs(t, repo.Store(ctx, stale, prev), ErrConflict)
}

// ---------- Redis 实现（miniredis）----------
func newTestRedisRepo(t *testing.T) MatchRepo {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisRepo(rdb)
}

func Test_RedisRepo_LoadStore(t *testing.T) {
	repo := newTestRedisRepo(t)
	ctx := context.Background()

	_, err := repo.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	m := sampleMatch("m2")
	assert.NoError(t, repo.Store(ctx, m, 0))

	got, err := repo.Load(ctx, "m2")
	assert.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, m.Version, got.Version)
	assert.Equal(t, m.Players["A"].Hand, got.Players["A"].Hand)
}

func Test_RedisRepo_VersionConflict(t *testing.T) {
	repo := newTestRedisRepo(t)
	ctx := context.Background()

	m := sampleMatch("m3")
	assert.NoError(t, repo.Store(ctx, m, 0))
	assert.ErrorIs(t, repo.Store(ctx, m, 0), ErrConflict)

	loaded, _ := repo.Load(ctx, "m3")
	prev := loaded.Version
	loaded.Version++
	assert.NoError(t, repo.Store(ctx, loaded, prev))
	assert.ErrorIs(t, repo.Store(ctx, loaded, prev), ErrConflict)
}
