package matchmaker

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

type memRepo struct {
	mu      sync.Mutex
	pools   map[string]map[string]struct{} // key -> set(playerID)
	players map[string]string              // playerID -> key
}

func NewMemoryRepo() Repo {
	return &memRepo{
		pools:   make(map[string]map[string]struct{}),
		players: make(map[string]string),
	}
}

func memKey(pool string) string {
	return fmt.Sprintf("mm:pool:%s", pool)
}

func (m *memRepo) Enqueue(ctx context.Context, pool string, playerID string, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memKey(pool)
	if _, ok := m.pools[key]; !ok {
		m.pools[key] = make(map[string]struct{})
	}
	m.pools[key][playerID] = struct{}{}
	m.players[playerID] = key
	// 内存版忽略 TTL，仅供测试与单机运行
	return nil
}

func (m *memRepo) PopNRandom(ctx context.Context, pool string, n int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memKey(pool)
	s, ok := m.pools[key]
	if !ok || len(s) < n {
		return []string{}, nil
	}

	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	chosen := ids[:n]
	for _, id := range chosen {
		delete(s, id)
		delete(m.players, id)
	}
	if len(s) == 0 {
		delete(m.pools, key)
	}
	return chosen, nil
}

func (m *memRepo) Remove(ctx context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, ok := m.players[playerID]
	if !ok {
		return nil
	}
	if s, ok := m.pools[key]; ok {
		delete(s, playerID)
	}
	delete(m.players, playerID)
	return nil
}

func (m *memRepo) Count(ctx context.Context, pool string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.pools[memKey(pool)])), nil
}
