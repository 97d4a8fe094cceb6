package matchmaker

import (
	"context"
	"time"

	"Doudizhu/internal/utils"
	"Doudizhu/internal/websocket"
)

type HubBroadcaster interface {
	BroadcastToPlayers(ids []string, msg websocket.OutgoingMessage)
}

// Service 快速匹配：三人进池即成桌。
// OnTableReady 负责真正创建对局并让三人入座，返回新对局 id。
type Service struct {
	repo         Repo
	playerTTL    int // seconds，用于防止遗留队列
	hub          HubBroadcaster
	OnTableReady func(ctx context.Context, players []string) (string, error)
}

func NewService(repo Repo, playerTTL int, hub HubBroadcaster) *Service {
	return &Service{repo: repo, playerTTL: playerTTL, hub: hub}
}

// Join 入队并尝试立即成桌。若可成桌，返回桌信息；否则返回排队中。
func (s *Service) Join(ctx context.Context, req JoinRequest) (*Table, bool, error) {
	if err := s.repo.Enqueue(ctx, req.Pool, req.PlayerID, s.playerTTL); err != nil {
		return nil, false, err
	}

	cnt, err := s.repo.Count(ctx, req.Pool)
	if err != nil {
		return nil, false, err
	}
	if cnt < Seats {
		return nil, true, nil // queued
	}

	players, err := s.repo.PopNRandom(ctx, req.Pool, Seats)
	if err != nil {
		return nil, false, err
	}
	if len(players) < Seats {
		// 并发竞争导致人数不足：回退为排队状态
		return nil, true, nil
	}

	if s.OnTableReady == nil {
		return nil, false, nil
	}
	gameID, err := s.OnTableReady(ctx, players)
	if err != nil {
		utils.Error.Printf("table ready callback: %v", err)
		return nil, false, err
	}

	table := &Table{
		GameID:    gameID,
		Pool:      req.Pool,
		Players:   players,
		CreatedAt: time.Now(),
	}

	// 通知所有成桌玩家
	if s.hub != nil {
		s.hub.BroadcastToPlayers(players, websocket.OutgoingMessage{
			Event: "matched",
			Data: map[string]any{
				"gameId":  table.GameID,
				"pool":    table.Pool,
				"players": table.Players,
			},
		})
	}
	return table, false, nil
}

func (s *Service) Cancel(ctx context.Context, playerID string) error {
	return s.repo.Remove(ctx, playerID)
}
