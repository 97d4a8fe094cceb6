package storage

import (
	"context"
	"encoding/json"
	"sync"

	"Doudizhu/internal/game/engine"
)

// memRepo 内存实现，存 JSON 快照避免共享可变状态，仅供测试与单机运行
type memRepo struct {
	mu       sync.RWMutex
	matches  map[string][]byte
	versions map[string]int64
}

func NewMemoryRepo() MatchRepo {
	return &memRepo{
		matches:  make(map[string][]byte),
		versions: make(map[string]int64),
	}
}

func (r *memRepo) Load(ctx context.Context, id string) (*engine.Match, error) {
	r.mu.RLock()
	data, ok := r.matches[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var m engine.Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memRepo) Store(ctx context.Context, m *engine.Match, expectedVersion int64) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.versions[m.ID] != expectedVersion {
		return ErrConflict
	}
	r.matches[m.ID] = data
	r.versions[m.ID] = m.Version
	return nil
}
