package matchmaker

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	ws "Doudizhu/internal/websocket"
)

// MockHub 记录每个玩家收到的消息
type MockHub struct {
	mu   sync.Mutex
	msgs map[string]ws.OutgoingMessage
}

func NewMockHub() *MockHub {
	return &MockHub{msgs: make(map[string]ws.OutgoingMessage)}
}

func (m *MockHub) BroadcastToPlayers(ids []string, msg ws.OutgoingMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.msgs[id] = msg
	}
}

func (m *MockHub) GetMsg(id string) (ws.OutgoingMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.msgs[id]
	return msg, ok
}

func newService(repo Repo) (*Service, *MockHub) {
	hub := NewMockHub()
	svc := NewService(repo, 60, hub)
	svc.OnTableReady = func(ctx context.Context, players []string) (string, error) {
		return uuid.NewString(), nil
	}
	return svc, hub
}

// ---------- 内存实现测试 ----------
func Test_MemoryRepo_MatchFlow(t *testing.T) {
	svc, hub := newService(NewMemoryRepo())
	pool := "casual"

	// 前两人入队，不应成桌
	for i := 0; i < 2; i++ {
		table, queued, err := svc.Join(context.Background(), JoinRequest{
			PlayerID: fmt.Sprintf("p%d", i), Pool: pool,
		})
		assert.NoError(t, err)
		assert.True(t, queued)
		assert.Nil(t, table)
	}

	// 第三人触发成桌
	table, queued, err := svc.Join(context.Background(), JoinRequest{
		PlayerID: "p2", Pool: pool,
	})
	assert.NoError(t, err)
	assert.False(t, queued)
	assert.NotNil(t, table)
	assert.Len(t, table.Players, Seats)
	assert.NotEmpty(t, table.GameID)

	// 三人都收到 matched 通知
	for _, id := range table.Players {
		msg, ok := hub.GetMsg(id)
		assert.True(t, ok)
		assert.Equal(t, "matched", msg.Event)
	}

	// 池子应已清空
	cnt, err := svc.repo.Count(context.Background(), pool)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), cnt)
}

func Test_MemoryRepo_Cancel(t *testing.T) {
	svc, _ := newService(NewMemoryRepo())
	pool := "casual"

	_, queued, err := svc.Join(context.Background(), JoinRequest{PlayerID: "p0", Pool: pool})
	assert.NoError(t, err)
	assert.True(t, queued)

	assert.NoError(t, svc.Cancel(context.Background(), "p0"))

	cnt, _ := svc.repo.Count(context.Background(), pool)
	assert.Equal(t, int64(0), cnt)

	// 取消不存在的玩家是 no-op
	assert.NoError(t, svc.Cancel(context.Background(), "ghost"))
}

// ---------- Redis 实现测试（miniredis）----------
func newRedisRepoForTest(t *testing.T) Repo {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisRepo(rdb)
}

func Test_RedisRepo_MatchFlow(t *testing.T) {
	svc, hub := newService(newRedisRepoForTest(t))
	pool := "ranked"

	for i := 0; i < 2; i++ {
		_, queued, err := svc.Join(context.Background(), JoinRequest{
			PlayerID: fmt.Sprintf("r%d", i), Pool: pool,
		})
		assert.NoError(t, err)
		assert.True(t, queued)
	}

	table, queued, err := svc.Join(context.Background(), JoinRequest{PlayerID: "r2", Pool: pool})
	assert.NoError(t, err)
	assert.False(t, queued)
	assert.NotNil(t, table)
	assert.Len(t, table.Players, Seats)

	for _, id := range table.Players {
		msg, ok := hub.GetMsg(id)
		assert.True(t, ok)
		assert.Equal(t, "matched", msg.Event)
	}

	cnt, err := svc.repo.Count(context.Background(), pool)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), cnt)
}

func Test_RedisRepo_Cancel(t *testing.T) {
	repo := newRedisRepoForTest(t)
	svc, _ := newService(repo)
	pool := "ranked"

	_, queued, err := svc.Join(context.Background(), JoinRequest{PlayerID: "r0", Pool: pool})
	assert.NoError(t, err)
	assert.True(t, queued)

	assert.NoError(t, svc.Cancel(context.Background(), "r0"))

	cnt, _ := repo.Count(context.Background(), pool)
	assert.Equal(t, int64(0), cnt)
}

// 不同池互不干扰
func Test_PoolsAreIsolated(t *testing.T) {
	svc, _ := newService(NewMemoryRepo())

	_, queued, _ := svc.Join(context.Background(), JoinRequest{PlayerID: "a", Pool: "casual"})
	assert.True(t, queued)
	_, queued, _ = svc.Join(context.Background(), JoinRequest{PlayerID: "b", Pool: "ranked"})
	assert.True(t, queued)
	_, queued, _ = svc.Join(context.Background(), JoinRequest{PlayerID: "c", Pool: "casual"})
	assert.True(t, queued)

	// casual 已有 2 人，ranked 1 人，均未成桌
	c1, _ := svc.repo.Count(context.Background(), "casual")
	c2, _ := svc.repo.Count(context.Background(), "ranked")
	assert.Equal(t, int64(2), c1)
	assert.Equal(t, int64(1), c2)
}
