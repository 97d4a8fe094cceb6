package engine

import (
	"errors"
	"time"

	"Doudizhu/internal/game/card"
	"Doudizhu/internal/game/dealer"
)

// Status 对局阶段，只能单向前进：Lobby → Bidding → Playing → Finished
// （全员不叫时 Bidding 直接 → Finished）
type Status string

const (
	StatusLobby    Status = "lobby"
	StatusBidding  Status = "bidding"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

type Role string

const (
	RoleNone     Role = ""
	RoleLandlord Role = "landlord"
	RoleFarmer   Role = "farmer"
)

// WinnerNoBidDraw 三家都不叫，流局
const WinnerNoBidDraw = "draw_no_bid"

// BidNone 表示还没叫过分
const BidNone = -1

var (
	ErrNotFound       = errors.New("match or player not found")
	ErrRoomFull       = errors.New("room is full")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrInvalidBid     = errors.New("invalid bid")
	ErrCardsNotInHand = errors.New("cards not in hand")
	ErrMustPlay       = errors.New("leader must play, cannot pass")
	ErrWrongPhase     = errors.New("action not allowed in current phase")
)

type Player struct {
	ID   string      `json:"id"`
	Hand []card.Card `json:"hand"`
	Bid  int         `json:"bid"` // BidNone | 0(不叫) | 1..3
	Role Role        `json:"role"`
}

type BidEntry struct {
	PlayerID string `json:"player_id"`
	Bid      int    `json:"bid"`
}

// LastPlay 桌面上最近一手牌。Cards 为空但 OwnerID 非空表示一轮被过完，
// 轮到 OwnerID 重新领出。
type LastPlay struct {
	Cards   []card.Card `json:"cards"`
	OwnerID string      `json:"owner_id"`
}

// Match 一局斗地主的完整状态。所有变更只通过状态机方法进行，
// 每次成功变更 Version 恰好 +1，被拒绝的操作不改变任何字段。
type Match struct {
	ID            string             `json:"id"`
	Status        Status             `json:"status"`
	TurnOrder     []string           `json:"turn_order"`
	Players       map[string]*Player `json:"players"`
	Reserve       []card.Card        `json:"reserve"` // 3 张底牌
	CurrentTurn   string             `json:"current_turn"`
	LastPlay      *LastPlay          `json:"last_play"`
	BidHistory    []BidEntry         `json:"bid_history"`
	HighestBid    int                `json:"highest_bid"`
	HighestBidder string             `json:"highest_bidder"`
	LandlordID    string             `json:"landlord_id"`
	Winner        string             `json:"winner"`
	Version       int64              `json:"version"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NewMatch 创建对局，创建者自动入座
func NewMatch(id, creatorID string) *Match {
	now := time.Now()
	return &Match{
		ID:     id,
		Status: StatusLobby,
		Players: map[string]*Player{
			creatorID: {ID: creatorID, Bid: BidNone},
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Join 加入对局。对已在局中的玩家幂等（不变更状态）；
// 第 3 人加入时发牌、随机定座次并进入叫分阶段。
func (m *Match) Join(playerID string, d *dealer.Dealer) error {
	if m.Status != StatusLobby {
		if _, ok := m.Players[playerID]; ok {
			return nil // rejoin
		}
		return ErrRoomFull // 开局后必然已满员
	}
	if _, ok := m.Players[playerID]; ok {
		return nil
	}
	if len(m.Players) >= dealer.Seats {
		return ErrRoomFull
	}

	m.Players[playerID] = &Player{ID: playerID, Bid: BidNone}

	if len(m.Players) == dealer.Seats {
		order := make([]string, 0, dealer.Seats)
		for id := range m.Players {
			order = append(order, id)
		}
		d.ShufflePlayers(order)
		m.TurnOrder = order

		d.NewDeck()
		hands, reserve := d.Deal(order)
		for id, hand := range hands {
			m.Players[id].Hand = hand
		}
		m.Reserve = reserve
		m.Status = StatusBidding
		m.CurrentTurn = order[0]
	}

	m.commit()
	return nil
}

// commit 记录一次被接受的变更
func (m *Match) commit() {
	m.Version++
	m.UpdatedAt = time.Now()
}

func (m *Match) player(playerID string) (*Player, error) {
	p, ok := m.Players[playerID]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// nextAfter 座次表中 playerID 的下一位（环形）
func (m *Match) nextAfter(playerID string) string {
	for i, id := range m.TurnOrder {
		if id == playerID {
			return m.TurnOrder[(i+1)%len(m.TurnOrder)]
		}
	}
	return ""
}
