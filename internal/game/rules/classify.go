package rules

import (
	"errors"
	"sort"

	"Doudizhu/internal/game/card"
)

// HandType 斗地主牌型
type HandType int

const (
	Invalid HandType = iota
	Single
	Pair
	Triple
	TripleSingle // 三带一
	TriplePair   // 三带二
	Straight     // 顺子，≥5 张，3..A
	PairStraight // 连对，≥3 对，3..A
	Airplane     // 飞机，≥2 个连续三条，可带翅膀
	FourWithTwo  // 四带二（两张单 或 一对）
	Bomb
	Rocket // 王炸
)

func (t HandType) String() string {
	switch t {
	case Single:
		return "single"
	case Pair:
		return "pair"
	case Triple:
		return "triple"
	case TripleSingle:
		return "triple_single"
	case TriplePair:
		return "triple_pair"
	case Straight:
		return "straight"
	case PairStraight:
		return "pair_straight"
	case Airplane:
		return "airplane"
	case FourWithTwo:
		return "four_with_two"
	case Bomb:
		return "bomb"
	case Rocket:
		return "rocket"
	}
	return "invalid"
}

var (
	ErrInvalidCombination = errors.New("invalid combination")
	ErrDoesNotBeat        = errors.New("does not beat last play")
)

// Combination 识别结果：牌型 + 比较锚点 + 张数
type Combination struct {
	Type        HandType  `json:"type"`
	PrimaryRank card.Rank `json:"primary_rank"`
	Length      int       `json:"length"`
}

// Classify 识别一组牌的牌型。无法唯一对应任何牌型时返回 ErrInvalidCombination，
// 绝不猜测"想要的"读法。花色不参与判断。
func Classify(cards []card.Card) (Combination, error) {
	n := len(cards)
	if n == 0 {
		return Combination{}, ErrInvalidCombination
	}

	counts := rankCounts(cards)

	// 王炸：恰好小王+大王
	if n == 2 && counts[card.SmallJoker] == 1 && counts[card.BigJoker] == 1 {
		return Combination{Type: Rocket, PrimaryRank: card.BigJoker, Length: 2}, nil
	}

	// 同点数牌组：单、对、三条、炸弹
	if len(counts) == 1 {
		r := cards[0].Rank
		switch n {
		case 1:
			return Combination{Type: Single, PrimaryRank: r, Length: 1}, nil
		case 2:
			return Combination{Type: Pair, PrimaryRank: r, Length: 2}, nil
		case 3:
			return Combination{Type: Triple, PrimaryRank: r, Length: 3}, nil
		case 4:
			return Combination{Type: Bomb, PrimaryRank: r, Length: 4}, nil
		}
		return Combination{}, ErrInvalidCombination
	}

	// 三带一 / 三带二
	if n == 4 {
		if triple, ok := splitTriplePlus(counts, 1); ok {
			return Combination{Type: TripleSingle, PrimaryRank: triple, Length: 4}, nil
		}
	}
	if n == 5 {
		if triple, ok := splitTriplePlus(counts, 2); ok {
			return Combination{Type: TriplePair, PrimaryRank: triple, Length: 5}, nil
		}
	}

	// 顺子 / 连对
	if low, ok := consecutiveRun(counts, 1); ok && n >= 5 {
		return Combination{Type: Straight, PrimaryRank: low, Length: n}, nil
	}
	if low, ok := consecutiveRun(counts, 2); ok && len(counts) >= 3 {
		return Combination{Type: PairStraight, PrimaryRank: low, Length: n}, nil
	}

	// 四带二
	if n == 6 {
		if quad, ok := splitFourWithTwo(counts); ok {
			return Combination{Type: FourWithTwo, PrimaryRank: quad, Length: 6}, nil
		}
	}

	// 飞机
	if low, ok := airplane(counts, n); ok {
		return Combination{Type: Airplane, PrimaryRank: low, Length: n}, nil
	}

	return Combination{}, ErrInvalidCombination
}

func rankCounts(cards []card.Card) map[card.Rank]int {
	counts := make(map[card.Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

// splitTriplePlus：一个三条 + 一个 attach 张数的其他点数
func splitTriplePlus(counts map[card.Rank]int, attach int) (card.Rank, bool) {
	if len(counts) != 2 {
		return 0, false
	}
	var triple card.Rank
	ok := false
	for r, cnt := range counts {
		switch cnt {
		case 3:
			triple, ok = r, true
		case attach:
		default:
			return 0, false
		}
	}
	return triple, ok
}

// consecutiveRun：每个点数恰好 width 张，且点数连续并落在 3..A 内。
// 返回最低点数。
func consecutiveRun(counts map[card.Rank]int, width int) (card.Rank, bool) {
	ranks := make([]card.Rank, 0, len(counts))
	for r, cnt := range counts {
		if cnt != width {
			return 0, false
		}
		if r > card.RankA {
			return 0, false // 2 和王不能进顺
		}
		ranks = append(ranks, r)
	}
	if len(ranks) < 2 {
		return 0, false
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })
	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			return 0, false
		}
	}
	return ranks[0], true
}

// splitFourWithTwo：四条 + 两张不同单 或 一对
func splitFourWithTwo(counts map[card.Rank]int) (card.Rank, bool) {
	var quad card.Rank
	quadFound := false
	singles, pairs := 0, 0
	for r, cnt := range counts {
		switch cnt {
		case 4:
			if quadFound {
				return 0, false
			}
			quad, quadFound = r, true
		case 1:
			singles++
		case 2:
			pairs++
		default:
			return 0, false
		}
	}
	if !quadFound {
		return 0, false
	}
	// 两张单（点数必然不同，重复点数会计为对）或一对
	if (singles == 2 && pairs == 0) || (singles == 0 && pairs == 1) {
		return quad, true
	}
	return 0, false
}

// airplane：所有出现 3 次的点数构成一条 3..A 内的连续链（≥2），
// 余下的牌要么为空，要么恰好每个三条一张单，要么恰好每个三条一对。
// 其它拆法（含歧义拆分）一律拒绝。
func airplane(counts map[card.Rank]int, total int) (card.Rank, bool) {
	triples := make([]card.Rank, 0, 4)
	restCards := 0
	restPairs := 0
	restAllPairs := true
	for r, cnt := range counts {
		switch cnt {
		case 3:
			triples = append(triples, r)
		case 1:
			restCards++
			restAllPairs = false
		case 2:
			restCards += 2
			restPairs++
		default:
			return 0, false // 夹带四条无法唯一识别
		}
	}
	k := len(triples)
	if k < 2 {
		return 0, false
	}
	sort.Slice(triples, func(i, j int) bool { return triples[i] < triples[j] })
	if triples[k-1] > card.RankA {
		return 0, false // 三条链不能含 2
	}
	for i := 1; i < k; i++ {
		if triples[i] != triples[i-1]+1 {
			return 0, false
		}
	}
	switch {
	case restCards == 0:
		return triples[0], true
	case restCards == k: // 每个三条带一张单
		return triples[0], true
	case restAllPairs && restPairs == k: // 每个三条带一对
		return triples[0], true
	}
	return 0, false
}
