package card

import "fmt"

// Rank 点数，按斗地主比牌顺序取值：3 最小，大王最大
type Rank int

const (
	Rank3  Rank = 3
	Rank4  Rank = 4
	Rank5  Rank = 5
	Rank6  Rank = 6
	Rank7  Rank = 7
	Rank8  Rank = 8
	Rank9  Rank = 9
	Rank10 Rank = 10
	RankJ  Rank = 11
	RankQ  Rank = 12
	RankK  Rank = 13
	RankA  Rank = 14
	Rank2  Rank = 15
	// 王没有花色
	SmallJoker Rank = 16
	BigJoker   Rank = 17
)

// Suit 花色，只影响展示，不影响牌力
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
	NoSuit // jokers
)

// Card 定义 (suit 0-3 / NoSuit, rank 3-17)
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewDeck 生成一副完整的 54 张牌（未洗）
func NewDeck() []Card {
	deck := make([]Card, 0, 54)
	for s := Hearts; s <= Spades; s++ {
		for r := Rank3; r <= Rank2; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	deck = append(deck, Card{Suit: NoSuit, Rank: SmallJoker})
	deck = append(deck, Card{Suit: NoSuit, Rank: BigJoker})
	return deck
}

// IsJoker 是否为大小王
func (c Card) IsJoker() bool {
	return c.Rank == SmallJoker || c.Rank == BigJoker
}

func (c Card) String() string {
	return fmtCard(c)
}

func (r Rank) String() string {
	switch r {
	case RankJ:
		return "J"
	case RankQ:
		return "Q"
	case RankK:
		return "K"
	case RankA:
		return "A"
	case Rank2:
		return "2"
	case SmallJoker:
		return "SJ"
	case BigJoker:
		return "BJ"
	}
	return fmt.Sprintf("%d", int(r))
}

func fmtCard(c Card) string {
	if c.IsJoker() {
		return c.Rank.String()
	}
	suits := []string{"♥", "♦", "♣", "♠"}
	suitStr := "?"
	if c.Suit >= Hearts && c.Suit <= Spades {
		suitStr = suits[c.Suit]
	}
	return suitStr + c.Rank.String()
}
