package engine

// Bid 处理叫分。amount 为 0 表示不叫，否则必须在 1..3 内且严格高于当前最高分。
//
// 结束条件：
//  1. 有人叫满 3 分，立即成为地主；
//  2. 出现过非零叫分后，轮转回到当前最高叫分者（中间无人再抬价），该人成为地主；
//  3. 三家都不叫 → 流局，直接进入 Finished。
func (m *Match) Bid(playerID string, amount int) error {
	if m.Status != StatusBidding {
		return ErrWrongPhase
	}
	p, err := m.player(playerID)
	if err != nil {
		return err
	}
	if m.CurrentTurn != playerID {
		return ErrNotYourTurn
	}
	if amount != 0 && (amount < 1 || amount > 3 || amount <= m.HighestBid) {
		return ErrInvalidBid
	}

	p.Bid = amount
	m.BidHistory = append(m.BidHistory, BidEntry{PlayerID: playerID, Bid: amount})
	if amount > m.HighestBid {
		m.HighestBid = amount
		m.HighestBidder = playerID
	}

	switch {
	case amount == 3:
		// 叫满封顶，立即定地主
		m.assignLandlord(playerID)

	default:
		m.CurrentTurn = m.nextAfter(playerID)
		if m.HighestBid > 0 && m.CurrentTurn == m.HighestBidder {
			// 其余两家都放弃，最高叫分者成为地主
			m.assignLandlord(m.HighestBidder)
		} else if m.HighestBid == 0 && len(m.BidHistory) == len(m.TurnOrder) {
			// 流局：底牌不亮，手牌作废
			m.Status = StatusFinished
			m.Winner = WinnerNoBidDraw
		}
	}

	m.commit()
	return nil
}

// assignLandlord 底牌并入地主手牌，设定角色并转入出牌阶段，地主先出
func (m *Match) assignLandlord(landlordID string) {
	m.LandlordID = landlordID
	for id, p := range m.Players {
		if id == landlordID {
			p.Role = RoleLandlord
			p.Hand = append(p.Hand, m.Reserve...)
		} else {
			p.Role = RoleFarmer
		}
	}
	m.Status = StatusPlaying
	m.CurrentTurn = landlordID
	m.LastPlay = nil
}
