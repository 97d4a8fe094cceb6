package dealer

import (
	"math/rand"

	"Doudizhu/internal/game/card"
)

// 斗地主发牌：3 人各 17 张，留 3 张底牌
const (
	Seats       = 3
	HandSize    = 17
	ReserveSize = 3
)

// Dealer 只负责洗牌与发牌（无规则判断）
type Dealer struct {
	deck []card.Card
	rnd  *rand.Rand
}

func NewDealer(seed int64) *Dealer {
	return &Dealer{
		deck: make([]card.Card, 0, 54),
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

// NewDeck 初始化一副牌并洗牌
func (d *Dealer) NewDeck() {
	d.deck = card.NewDeck()
	d.shuffle()
}

// Fisher–Yates，均匀置换（公平性要求，不能用有偏洗牌）
func (d *Dealer) shuffle() {
	d.rnd.Shuffle(len(d.deck), func(i, j int) {
		d.deck[i], d.deck[j] = d.deck[j], d.deck[i]
	})
}

// Deal 按座位轮流发 17 张，剩 3 张作为底牌返回
func (d *Dealer) Deal(players []string) (map[string][]card.Card, []card.Card) {
	hands := make(map[string][]card.Card, len(players))
	for i := 0; i < HandSize; i++ {
		for _, id := range players {
			hands[id] = append(hands[id], d.draw())
		}
	}
	reserve := make([]card.Card, 0, ReserveSize)
	for len(d.deck) > 0 {
		reserve = append(reserve, d.draw())
	}
	return hands, reserve
}

// ShufflePlayers 随机打乱座位顺序（确定叫分起点）
func (d *Dealer) ShufflePlayers(ids []string) {
	d.rnd.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}

func (d *Dealer) draw() card.Card {
	c := d.deck[0]
	d.deck = d.deck[1:]
	return c
}
