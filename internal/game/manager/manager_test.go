package manager

import (
	"context"
	"sync"
	"testing"

	"Doudizhu/internal/game/dealer"
	"Doudizhu/internal/game/engine"
	"Doudizhu/internal/storage"
	"Doudizhu/internal/websocket"
)

// mockHub 实现 HubInterface，记录消息
type mockHub struct {
	mu         sync.Mutex
	broadcasts []websocket.OutgoingMessage
	sent       map[string][]websocket.OutgoingMessage
}

func newMockHub() *mockHub {
	return &mockHub{sent: make(map[string][]websocket.OutgoingMessage)}
}

func (h *mockHub) BroadcastToPlayers(ids []string, msg websocket.OutgoingMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcasts = append(h.broadcasts, msg)
	for _, id := range ids {
		h.sent[id] = append(h.sent[id], msg)
	}
}

func (h *mockHub) SendToPlayer(id string, msg websocket.OutgoingMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent[id] = append(h.sent[id], msg)
}

func (h *mockHub) Close() {}

func newTestService() (*Service, *mockHub) {
	hub := newMockHub()
	svc := NewService(storage.NewMemoryRepo(), hub)
	svc.seed = func() int64 { return 42 } // 发牌确定化
	return svc, hub
}

func TestCreateAndJoinFlow(t *testing.T) {
	svc, hub := newTestService()
	ctx := context.Background()

	matchID, err := svc.CreateMatch(ctx, "A")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.JoinMatch(ctx, matchID, "B"); err != nil {
		t.Fatalf("join B: %v", err)
	}
	v, err := svc.ViewFor(ctx, matchID, "A")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v.Status != engine.StatusLobby {
		t.Fatalf("two players should still be lobby, got %v", v.Status)
	}

	if err := svc.JoinMatch(ctx, matchID, "C"); err != nil {
		t.Fatalf("join C: %v", err)
	}
	v, _ = svc.ViewFor(ctx, matchID, "A")
	if v.Status != engine.StatusBidding {
		t.Fatalf("third join should start bidding, got %v", v.Status)
	}
	if len(v.MyHand) != dealer.HandSize {
		t.Fatalf("expected 17 cards, got %d", len(v.MyHand))
	}

	// 满员后陌生人不能再进
	if err := svc.JoinMatch(ctx, matchID, "D"); err != engine.ErrRoomFull {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
	// 已入座玩家重复 join 幂等
	if err := svc.JoinMatch(ctx, matchID, "B"); err != nil {
		t.Fatalf("rejoin should be idempotent: %v", err)
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	if len(hub.broadcasts) == 0 {
		t.Fatalf("mutations should push match_update events")
	}
	for _, msg := range hub.broadcasts {
		if msg.Event != "match_update" {
			t.Fatalf("unexpected event %q", msg.Event)
		}
	}
}

func TestBidThroughService(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	matchID, _ := svc.CreateMatch(ctx, "A")
	_ = svc.JoinMatch(ctx, matchID, "B")
	_ = svc.JoinMatch(ctx, matchID, "C")

	v, _ := svc.ViewFor(ctx, matchID, "A")
	first := v.CurrentTurn

	if err := svc.Bid(ctx, matchID, first, 2); err != nil {
		t.Fatalf("bid: %v", err)
	}
	v, _ = svc.ViewFor(ctx, matchID, first)
	second := v.CurrentTurn
	if err := svc.Bid(ctx, matchID, second, 0); err != nil {
		t.Fatalf("pass: %v", err)
	}
	v, _ = svc.ViewFor(ctx, matchID, first)
	third := v.CurrentTurn
	if err := svc.Bid(ctx, matchID, third, 0); err != nil {
		t.Fatalf("pass: %v", err)
	}

	v, _ = svc.ViewFor(ctx, matchID, first)
	if v.Status != engine.StatusPlaying {
		t.Fatalf("expected playing, got %v", v.Status)
	}
	if v.LandlordID != first {
		t.Fatalf("expected landlord %s, got %s", first, v.LandlordID)
	}
	if len(v.MyHand) != dealer.HandSize+dealer.ReserveSize {
		t.Fatalf("landlord should hold 20 cards, got %d", len(v.MyHand))
	}
	if v.CurrentTurn != first {
		t.Fatalf("landlord should lead")
	}
}

func TestAllPassDrawThroughService(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	matchID, _ := svc.CreateMatch(ctx, "A")
	_ = svc.JoinMatch(ctx, matchID, "B")
	_ = svc.JoinMatch(ctx, matchID, "C")

	for i := 0; i < 3; i++ {
		v, _ := svc.ViewFor(ctx, matchID, "A")
		if err := svc.Bid(ctx, matchID, v.CurrentTurn, 0); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}

	v, _ := svc.ViewFor(ctx, matchID, "A")
	if v.Status != engine.StatusFinished || v.Winner != engine.WinnerNoBidDraw {
		t.Fatalf("expected no-bid draw, got status=%v winner=%q", v.Status, v.Winner)
	}
}

func TestViewForErrors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.ViewFor(ctx, "missing", "A"); err != engine.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}

	matchID, _ := svc.CreateMatch(ctx, "A")
	if _, err := svc.ViewFor(ctx, matchID, "stranger"); err != engine.ErrNotFound {
		t.Fatalf("expected ErrNotFound for non-member, got %v", err)
	}
}

func TestRejectedMutationDoesNotPersist(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	matchID, _ := svc.CreateMatch(ctx, "A")
	_ = svc.JoinMatch(ctx, matchID, "B")
	_ = svc.JoinMatch(ctx, matchID, "C")

	before, _ := svc.ViewFor(ctx, matchID, "A")

	wrong := ""
	for id := range before.Players {
		if id != before.CurrentTurn {
			wrong = id
			break
		}
	}
	if err := svc.Bid(ctx, matchID, wrong, 1); err != engine.ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}

	after, _ := svc.ViewFor(ctx, matchID, "A")
	if after.Version != before.Version {
		t.Fatalf("rejected mutation must not advance the stored version")
	}
}
