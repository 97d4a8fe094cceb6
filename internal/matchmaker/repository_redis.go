package matchmaker

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
}

func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

// key 约定：
//
//	set: mm:pool:{pool}      -> Set(playerID,...)
//	kv : mm:player:{id}      -> pool 名（便于取消时定位池），带 TTL 防遗留
func poolKey(pool string) string {
	return fmt.Sprintf("mm:pool:%s", pool)
}

func playerKey(id string) string {
	return fmt.Sprintf("mm:player:%s", id)
}

func (r *redisRepo) Enqueue(ctx context.Context, pool string, playerID string, ttlSeconds int) error {
	p := r.rdb.Pipeline()
	p.SAdd(ctx, poolKey(pool), playerID)
	p.Set(ctx, playerKey(playerID), pool, time.Duration(ttlSeconds)*time.Second)
	_, err := p.Exec(ctx)
	return err
}

func (r *redisRepo) PopNRandom(ctx context.Context, pool string, n int) ([]string, error) {
	// SPOP COUNT 一次随机弹出 n 个元素并从集合删除（原子）
	res, err := r.rdb.SPopN(ctx, poolKey(pool), int64(n)).Result()
	if err != nil {
		return nil, err
	}
	if len(res) > 0 {
		p := r.rdb.Pipeline()
		for _, id := range res {
			p.Del(ctx, playerKey(id))
		}
		_, _ = p.Exec(ctx)
	}
	return res, nil
}

// Lua 脚本：删除 playerKey、从集合中移除成员；若集合空则删除集合
// KEYS[1] = playerKey, KEYS[2] = poolKey, ARGV[1] = playerID
const removeScript = `
    redis.call("DEL", KEYS[1])
    redis.call("SREM", KEYS[2], ARGV[1])
    if redis.call("SCARD", KEYS[2]) == 0 then
        redis.call("DEL", KEYS[2])
    end
    return 1
`

func (r *redisRepo) Remove(ctx context.Context, playerID string) error {
	pool, err := r.rdb.Get(ctx, playerKey(playerID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	return r.rdb.Eval(ctx, removeScript, []string{playerKey(playerID), poolKey(pool)}, playerID).Err()
}

func (r *redisRepo) Count(ctx context.Context, pool string) (int64, error) {
	return r.rdb.SCard(ctx, poolKey(pool)).Result()
}
