package manager

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"Doudizhu/internal/game/card"
	"Doudizhu/internal/game/dealer"
	"Doudizhu/internal/game/engine"
	"Doudizhu/internal/storage"
	"Doudizhu/internal/utils"
	"Doudizhu/internal/websocket"
)

// Service 管理所有对局：组合发牌、规则引擎与存储，
// 对外暴露 transport 层消费的六个操作。
//
// 并发纪律：同一对局同一时刻至多一个在途变更（每局一把锁串行化），
// 存储层的版本 CAS 兜底多节点场景；读取走快照，随时并发。
type Service struct {
	repo storage.MatchRepo
	hub  websocket.HubInterface

	mu    sync.Mutex
	locks map[string]*sync.Mutex // matchID → 变更锁

	seed func() int64 // 可注入，测试用固定种子
}

func NewService(repo storage.MatchRepo, hub websocket.HubInterface) *Service {
	return &Service{
		repo:  repo,
		hub:   hub,
		locks: make(map[string]*sync.Mutex),
		seed:  func() int64 { return time.Now().UnixNano() },
	}
}

// CreateMatch 新建对局，创建者自动入座，返回对局 id
func (s *Service) CreateMatch(ctx context.Context, creatorID string) (string, error) {
	m := engine.NewMatch(uuid.NewString(), creatorID)
	if err := s.repo.Store(ctx, m, 0); err != nil {
		return "", err
	}
	s.notify(m)
	return m.ID, nil
}

// JoinMatch 加入对局；第 3 人加入时触发发牌并进入叫分阶段
func (s *Service) JoinMatch(ctx context.Context, matchID, playerID string) error {
	_, err := s.mutate(ctx, matchID, func(m *engine.Match) error {
		return m.Join(playerID, dealer.NewDealer(s.seed()))
	})
	return err
}

// Bid 叫分（0 = 不叫）
func (s *Service) Bid(ctx context.Context, matchID, playerID string, amount int) error {
	_, err := s.mutate(ctx, matchID, func(m *engine.Match) error {
		return m.Bid(playerID, amount)
	})
	return err
}

// Play 出牌
func (s *Service) Play(ctx context.Context, matchID, playerID string, cards []card.Card) error {
	_, err := s.mutate(ctx, matchID, func(m *engine.Match) error {
		return m.PlayCards(playerID, cards)
	})
	return err
}

// Pass 过牌
func (s *Service) Pass(ctx context.Context, matchID, playerID string) error {
	_, err := s.mutate(ctx, matchID, func(m *engine.Match) error {
		return m.Pass(playerID)
	})
	return err
}

// ViewFor 玩家视角的一致快照（存储层返回的是独立副本，读不加锁）
func (s *Service) ViewFor(ctx context.Context, matchID, playerID string) (*engine.View, error) {
	m, err := s.repo.Load(ctx, matchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, engine.ErrNotFound
		}
		return nil, err
	}
	return m.ViewFor(playerID)
}

// mutate 加载-应用-带版本写回。引擎拒绝的操作不落盘也不通知。
func (s *Service) mutate(ctx context.Context, matchID string, fn func(*engine.Match) error) (*engine.Match, error) {
	lock := s.lockFor(matchID)
	lock.Lock()
	defer lock.Unlock()

	m, err := s.repo.Load(ctx, matchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, engine.ErrNotFound
		}
		return nil, err
	}

	prev := m.Version
	if err := fn(m); err != nil {
		return nil, err
	}
	if m.Version == prev {
		return m, nil // 幂等操作（如重复加入），无需写回
	}

	if err := s.repo.Store(ctx, m, prev); err != nil {
		return nil, err
	}

	s.notify(m)

	if m.Status == engine.StatusFinished {
		if err := storage.ArchiveMatch(ctx, m); err != nil {
			utils.Error.Printf("archive match %s: %v", m.ID, err)
		}
	}
	return m, nil
}

func (s *Service) lockFor(matchID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[matchID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[matchID] = lock
	}
	return lock
}

// notify 推送轻量事件，客户端收到后自行拉取各自视角的状态
func (s *Service) notify(m *engine.Match) {
	if s.hub == nil {
		return
	}
	ids := make([]string, 0, len(m.Players))
	for id := range m.Players {
		ids = append(ids, id)
	}
	s.hub.BroadcastToPlayers(ids, websocket.OutgoingMessage{
		Event: "match_update",
		Data: map[string]any{
			"matchId": m.ID,
			"status":  m.Status,
			"version": m.Version,
		},
	})
}
