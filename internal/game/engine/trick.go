package engine

import (
	"Doudizhu/internal/game/card"
	"Doudizhu/internal/game/rules"
)

// PlayCards 处理出牌。cards 必须全部在玩家手中（同一张实体牌不能引用两次），
// 且能被识别为合法牌型；跟牌时还必须压过桌面上的最后一手。
// 出牌成功后立即检查胜利：手牌清空即终局，赢方记为该玩家角色。
func (m *Match) PlayCards(playerID string, cards []card.Card) error {
	if m.Status != StatusPlaying {
		return ErrWrongPhase
	}
	p, err := m.player(playerID)
	if err != nil {
		return err
	}
	if m.CurrentTurn != playerID {
		return ErrNotYourTurn
	}
	if !handContains(p.Hand, cards) {
		return ErrCardsNotInHand
	}

	combo, err := rules.Classify(cards)
	if err != nil {
		return err
	}

	// 跟牌必须压过上家；领出（桌面空或轮回到自己）任意合法牌型均可
	if m.LastPlay != nil && len(m.LastPlay.Cards) > 0 && m.LastPlay.OwnerID != playerID {
		ref, err := rules.Classify(m.LastPlay.Cards)
		if err != nil {
			return err
		}
		if err := rules.CanBeat(combo, ref); err != nil {
			return err
		}
	}

	p.Hand = removeCards(p.Hand, cards)
	m.LastPlay = &LastPlay{Cards: cards, OwnerID: playerID}

	if len(p.Hand) == 0 {
		m.Status = StatusFinished
		m.Winner = string(p.Role)
	} else {
		m.CurrentTurn = m.nextAfter(playerID)
	}

	m.commit()
	return nil
}

// Pass 处理过牌。领出者不能过；过牌只移动轮转指针。
// 若过牌后轮到最后出牌者本人，则这一轮由他赢下，桌面清空等待其重新领出。
func (m *Match) Pass(playerID string) error {
	if m.Status != StatusPlaying {
		return ErrWrongPhase
	}
	if _, err := m.player(playerID); err != nil {
		return err
	}
	if m.CurrentTurn != playerID {
		return ErrNotYourTurn
	}
	if m.LastPlay == nil || len(m.LastPlay.Cards) == 0 || m.LastPlay.OwnerID == playerID {
		return ErrMustPlay
	}

	m.CurrentTurn = m.nextAfter(playerID)
	if m.CurrentTurn == m.LastPlay.OwnerID {
		// 一轮结束，赢家重新领出
		m.LastPlay = &LastPlay{OwnerID: m.LastPlay.OwnerID}
	}

	m.commit()
	return nil
}

// handContains 检查所有 cards 都是手牌中互不相同的实体牌
func handContains(hand, cards []card.Card) bool {
	if len(cards) == 0 {
		return false
	}
	remaining := make(map[card.Card]int, len(hand))
	for _, c := range hand {
		remaining[c]++
	}
	for _, c := range cards {
		if remaining[c] == 0 {
			return false
		}
		remaining[c]--
	}
	return true
}

func removeCards(hand, cards []card.Card) []card.Card {
	toRemove := make(map[card.Card]int, len(cards))
	for _, c := range cards {
		toRemove[c]++
	}
	out := hand[:0]
	for _, c := range hand {
		if toRemove[c] > 0 {
			toRemove[c]--
			continue
		}
		out = append(out, c)
	}
	return out
}
