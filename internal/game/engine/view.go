package engine

import "Doudizhu/internal/game/card"

// PlayerInfo 其他玩家的公开信息——绝不包含手牌内容
type PlayerInfo struct {
	ID         string `json:"id"`
	CardCount  int    `json:"card_count"`
	Role       Role   `json:"role"`
	Bid        int    `json:"bid"`
	IsLandlord bool   `json:"is_landlord"`
}

// View 按请求玩家过滤后的对局快照
type View struct {
	MatchID      string                `json:"match_id"`
	Status       Status                `json:"status"`
	MyID         string                `json:"my_id"`
	MyHand       []card.Card           `json:"my_hand"`
	MyRole       Role                  `json:"my_role"`
	LandlordID   string                `json:"landlord_id"`
	ReserveCount int                   `json:"reserve_count"`
	Reserve      []card.Card           `json:"reserve,omitempty"`
	CurrentTurn  string                `json:"current_turn"`
	LastPlayed   []card.Card           `json:"last_played"`
	LastPlayerID string                `json:"last_player_id"`
	HighestBid   int                   `json:"highest_bid"`
	BidHistory   []BidEntry            `json:"bid_history"`
	Winner       string                `json:"winner"`
	Players      map[string]PlayerInfo `json:"players"`
	Version      int64                 `json:"version"`
}

// ViewFor 生成玩家视角。底牌内容只在地主确定后可见：
// 先只给地主本人，开始出牌后对所有人公开；数量始终可见。
func (m *Match) ViewFor(playerID string) (*View, error) {
	p, ok := m.Players[playerID]
	if !ok {
		return nil, ErrNotFound
	}

	v := &View{
		MatchID:      m.ID,
		Status:       m.Status,
		MyID:         playerID,
		MyHand:       append([]card.Card(nil), p.Hand...),
		MyRole:       p.Role,
		LandlordID:   m.LandlordID,
		ReserveCount: len(m.Reserve),
		CurrentTurn:  m.CurrentTurn,
		HighestBid:   m.HighestBid,
		BidHistory:   append([]BidEntry(nil), m.BidHistory...),
		Winner:       m.Winner,
		Players:      make(map[string]PlayerInfo, len(m.Players)),
		Version:      m.Version,
	}

	if m.LandlordID != "" && (playerID == m.LandlordID || m.Status == StatusPlaying || m.Status == StatusFinished) {
		v.Reserve = append([]card.Card(nil), m.Reserve...)
	}

	if m.LastPlay != nil {
		v.LastPlayed = append([]card.Card(nil), m.LastPlay.Cards...)
		v.LastPlayerID = m.LastPlay.OwnerID
	}

	for id, pl := range m.Players {
		v.Players[id] = PlayerInfo{
			ID:         id,
			CardCount:  len(pl.Hand),
			Role:       pl.Role,
			Bid:        pl.Bid,
			IsLandlord: id == m.LandlordID,
		}
	}

	return v, nil
}
