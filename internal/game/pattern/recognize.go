package pattern

import (
	"slices"

	"github.com/palemoky/guandan/internal/game/card"
)

// Recognize 识别一组牌构成的唯一牌型
// 牌必须恰好构成一种牌型，不允许有多余的牌；无法识别时返回 ok=false，
// 调用方把无效牌型当作正常结果处理，不会中断流程
func Recognize(cards []card.Card) (Pattern, bool) {
	if len(cards) == 0 || hasDuplicateIDs(cards) {
		return Pattern{}, false
	}

	if p, ok := recognizeRocket(cards); ok {
		return p, true
	}

	a := analyze(cards)

	checks := []func(analysis, []card.Card) (Pattern, bool){
		recognizeUniform, // 单张、对子、三张、炸弹
		recognizeStraight,
		recognizeTripleWithPair,
		recognizeConsecutivePairs,
		recognizePlane,
		recognizePlaneWithPairs,
	}
	for _, check := range checks {
		if p, ok := check(a, cards); ok {
			return p, true
		}
	}
	return Pattern{}, false
}

// hasDuplicateIDs 检查是否有重复的牌（相同的稳定 ID 出现两次）
func hasDuplicateIDs(cards []card.Card) bool {
	seen := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		if c.ID == "" {
			continue
		}
		if _, ok := seen[c.ID]; ok {
			return true
		}
		seen[c.ID] = struct{}{}
	}
	return false
}

// recognizeRocket 火箭：大小王各一张
func recognizeRocket(cards []card.Card) (Pattern, bool) {
	if len(cards) != 2 {
		return Pattern{}, false
	}
	var small, big bool
	for _, c := range cards {
		switch c.Rank {
		case card.RankSmallJoker:
			small = true
		case card.RankBigJoker:
			big = true
		}
	}
	if !small || !big {
		return Pattern{}, false
	}
	return newPattern(Rocket, card.RankBigJoker, cards), true
}

// recognizeUniform 同点数牌型：1张单、2张对、3张三、4张及以上炸弹
func recognizeUniform(a analysis, cards []card.Card) (Pattern, bool) {
	if len(a.counts) != 1 {
		return Pattern{}, false
	}
	rank := cards[0].Rank
	switch len(cards) {
	case 1:
		return newPattern(Single, rank, cards), true
	case 2:
		return newPattern(Pair, rank, cards), true
	case 3:
		return newPattern(Triple, rank, cards), true
	default:
		return newPattern(Bomb, rank, cards), true
	}
}

// recognizeStraight 顺子：恰好5张连续单张，不含2和王
func recognizeStraight(a analysis, cards []card.Card) (Pattern, bool) {
	if len(cards) != 5 || len(a.ones) != 5 {
		return Pattern{}, false
	}
	if !isConsecutiveNatural(a.ones) {
		return Pattern{}, false
	}
	return newPattern(Straight, a.ones[len(a.ones)-1], cards), true
}

// recognizeTripleWithPair 三带二：三张同点数加一个对子
func recognizeTripleWithPair(a analysis, cards []card.Card) (Pattern, bool) {
	if len(cards) != 5 || len(a.trios) != 1 || len(a.pairs) != 1 {
		return Pattern{}, false
	}
	return newPattern(TripleWithPair, a.trios[0], cards), true
}

// recognizeConsecutivePairs 连对：3对或以上，点数严格连续，每个点数恰好一对
func recognizeConsecutivePairs(a analysis, cards []card.Card) (Pattern, bool) {
	if len(a.pairs) < 3 || len(a.pairs)*2 != len(cards) {
		return Pattern{}, false
	}
	if !isConsecutiveNatural(a.pairs) {
		return Pattern{}, false
	}
	return newPattern(ConsecutivePairs, a.pairs[len(a.pairs)-1], cards), true
}

// recognizePlane 飞机：2个或以上连续三张，不带翅膀
func recognizePlane(a analysis, cards []card.Card) (Pattern, bool) {
	if len(a.trios) < 2 || len(a.trios)*3 != len(cards) {
		return Pattern{}, false
	}
	if !isConsecutiveNatural(a.trios) {
		return Pattern{}, false
	}
	return newPattern(Plane, a.trios[len(a.trios)-1], cards), true
}

// recognizePlaneWithPairs 飞机带对：每个三张配一个对子，张数必须严格匹配，
// 有剩余或缺少的牌都不构成牌型
func recognizePlaneWithPairs(a analysis, cards []card.Card) (Pattern, bool) {
	if len(a.trios) < 2 || len(a.trios) != len(a.pairs) {
		return Pattern{}, false
	}
	if len(a.trios)*5 != len(cards) {
		return Pattern{}, false
	}
	if !isConsecutiveNatural(a.trios) {
		return Pattern{}, false
	}
	return newPattern(PlaneWithPairs, a.trios[len(a.trios)-1], cards), true
}

// Compose 按指定牌型直接构造 Pattern，供万能牌替换搜索使用
// 调用方必须保证 cards 恰好构成该牌型
func Compose(kind Kind, mainRank card.Rank, cards []card.Card) Pattern {
	return newPattern(kind, mainRank, cards)
}

func newPattern(kind Kind, mainRank card.Rank, cards []card.Card) Pattern {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, func(a, b card.Card) int {
		if a.Rank != b.Rank {
			return int(b.Rank) - int(a.Rank)
		}
		return b.Suit.DisplayOrder() - a.Suit.DisplayOrder()
	})
	return Pattern{
		Kind:     kind,
		MainRank: mainRank,
		Cards:    sorted,
		Strength: strengthOf(kind, len(sorted), mainRank),
	}
}
