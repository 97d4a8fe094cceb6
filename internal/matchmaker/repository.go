package matchmaker

import "context"

// Repo 定义对匹配池的抽象操作
type Repo interface {
	// Enqueue 将玩家加入指定池
	Enqueue(ctx context.Context, pool string, playerID string, ttlSeconds int) error
	// PopNRandom 当池内达到 n 人时，随机弹出 n 人（原子）
	PopNRandom(ctx context.Context, pool string, n int) ([]string, error)
	// Remove 将玩家从当前池移除（用于取消）
	Remove(ctx context.Context, playerID string) error
	// Count 返回池内人数
	Count(ctx context.Context, pool string) (int64, error)
}
