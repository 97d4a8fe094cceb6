package rules

// CanBeat 判断 candidate 是否压得过 reference。
// 返回 nil = 压得过；ErrDoesNotBeat = 同型但不够大；
// ErrInvalidCombination = 牌型/张数不匹配（非炸弹/王炸的跨型出牌不合法）。
//
// 领出（桌面为空）不在此判断：任何合法牌型都可领出。
func CanBeat(candidate, reference Combination) error {
	// 王炸压一切，没有什么能压王炸
	if reference.Type == Rocket {
		return ErrDoesNotBeat
	}
	if candidate.Type == Rocket {
		return nil
	}

	// 炸弹压任何非炸弹；炸弹对炸弹比点数
	if candidate.Type == Bomb {
		if reference.Type != Bomb {
			return nil
		}
		if candidate.PrimaryRank > reference.PrimaryRank {
			return nil
		}
		return ErrDoesNotBeat
	}

	// 其余必须同型同张数，再严格比较锚点
	if candidate.Type != reference.Type || candidate.Length != reference.Length {
		return ErrInvalidCombination
	}
	if candidate.PrimaryRank > reference.PrimaryRank {
		return nil
	}
	return ErrDoesNotBeat
}
