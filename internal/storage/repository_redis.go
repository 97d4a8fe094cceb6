package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"Doudizhu/internal/game/engine"
)

// key 约定：
//
//	kv: ddz:match:{id}      -> JSON 对局快照
//	kv: ddz:match:{id}:ver  -> 版本号（CAS 用）
type redisRepo struct {
	rdb *redis.Client
}

func NewRedisRepo(rdb *redis.Client) MatchRepo {
	return &redisRepo{rdb: rdb}
}

func matchKey(id string) string {
	return fmt.Sprintf("ddz:match:%s", id)
}

func versionKey(id string) string {
	return fmt.Sprintf("ddz:match:%s:ver", id)
}

func (r *redisRepo) Load(ctx context.Context, id string) (*engine.Match, error) {
	data, err := r.rdb.Get(ctx, matchKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var m engine.Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Lua 脚本：版本匹配（或首次写入且期望 0）时才原子写入快照与新版本
// KEYS[1] = matchKey, KEYS[2] = versionKey
// ARGV[1] = snapshot, ARGV[2] = expected version, ARGV[3] = new version
const storeScript = `
    local v = redis.call("GET", KEYS[2])
    if (v == false and ARGV[2] == "0") or (v == ARGV[2]) then
        redis.call("SET", KEYS[1], ARGV[1])
        redis.call("SET", KEYS[2], ARGV[3])
        return 1
    end
    return 0
`

func (r *redisRepo) Store(ctx context.Context, m *engine.Match, expectedVersion int64) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	res, err := r.rdb.Eval(ctx, storeScript,
		[]string{matchKey(m.ID), versionKey(m.ID)},
		data, expectedVersion, m.Version,
	).Int64()
	if err != nil {
		return err
	}
	if res != 1 {
		return ErrConflict
	}
	return nil
}
