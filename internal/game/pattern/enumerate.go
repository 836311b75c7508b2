package pattern

import (
	"slices"
	"sort"

	"github.com/palemoky/guandan/internal/game/card"
)

// EnumerateAll 枚举手牌的子集能构成的所有牌型，供 AI 发现候选出牌
// 同点数的牌不区分花色逐张枚举，避免组合爆炸；
// 结果按使用张数多优先、主点数大优先排序，且每个牌型恰好消耗其声明的牌
func EnumerateAll(hand []card.Card) []Pattern {
	if len(hand) == 0 {
		return nil
	}

	a := analyze(hand)
	var patterns []Pattern

	patterns = append(patterns, enumerateUniform(a, hand)...)
	if p, ok := enumerateRocket(hand); ok {
		patterns = append(patterns, p)
	}
	patterns = append(patterns, enumerateTripleWithPair(a, hand)...)
	patterns = append(patterns, enumerateStraights(a, hand)...)
	patterns = append(patterns, enumerateConsecutivePairs(a, hand)...)
	patterns = append(patterns, enumeratePlanes(a, hand)...)

	sort.SliceStable(patterns, func(i, j int) bool {
		if len(patterns[i].Cards) != len(patterns[j].Cards) {
			return len(patterns[i].Cards) > len(patterns[j].Cards)
		}
		return patterns[i].MainRank > patterns[j].MainRank
	})
	return patterns
}

// enumerateUniform 枚举单张、对子、三张和各种张数的炸弹
func enumerateUniform(a analysis, hand []card.Card) []Pattern {
	var patterns []Pattern
	ranks := sortedRanks(a)
	for _, r := range ranks {
		count := a.counts[r]
		patterns = append(patterns, newPattern(Single, r, pickByRank(hand, r, 1)))
		if count >= 2 {
			// 两副牌里同种王也可以成对
			patterns = append(patterns, newPattern(Pair, r, pickByRank(hand, r, 2)))
		}
		if count >= 3 {
			patterns = append(patterns, newPattern(Triple, r, pickByRank(hand, r, 3)))
		}
		for size := 4; size <= count; size++ {
			patterns = append(patterns, newPattern(Bomb, r, pickByRank(hand, r, size)))
		}
	}
	return patterns
}

func enumerateRocket(hand []card.Card) (Pattern, bool) {
	var small, big *card.Card
	for i, c := range hand {
		switch {
		case c.Rank == card.RankSmallJoker && small == nil:
			small = &hand[i]
		case c.Rank == card.RankBigJoker && big == nil:
			big = &hand[i]
		}
	}
	if small == nil || big == nil {
		return Pattern{}, false
	}
	return newPattern(Rocket, card.RankBigJoker, []card.Card{*small, *big}), true
}

// enumerateTripleWithPair 枚举三带二：每个三张配每个可用对子
func enumerateTripleWithPair(a analysis, hand []card.Card) []Pattern {
	var patterns []Pattern
	for _, t := range tripleRanks(a) {
		for _, p := range pairRanks(a) {
			if p == t {
				continue
			}
			cards := append(pickByRank(hand, t, 3), pickByRank(hand, p, 2)...)
			patterns = append(patterns, newPattern(TripleWithPair, t, cards))
		}
	}
	return patterns
}

// enumerateStraights 枚举所有5张顺子（滑动窗口）
func enumerateStraights(a analysis, hand []card.Card) []Pattern {
	var patterns []Pattern
	for start := card.Rank3; start+4 <= card.RankA; start++ {
		ok := true
		for r := start; r <= start+4; r++ {
			if a.counts[r] == 0 {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		var cards []card.Card
		for r := start; r <= start+4; r++ {
			cards = append(cards, pickByRank(hand, r, 1)...)
		}
		patterns = append(patterns, newPattern(Straight, start+4, cards))
	}
	return patterns
}

// enumerateConsecutivePairs 枚举3对及以上的连对
func enumerateConsecutivePairs(a analysis, hand []card.Card) []Pattern {
	var patterns []Pattern
	for length := 3; length <= int(card.RankA-card.Rank3)+1; length++ {
		for start := card.Rank3; int(start)+length-1 <= int(card.RankA); start++ {
			end := start + card.Rank(length-1)
			ok := true
			for r := start; r <= end; r++ {
				if a.counts[r] < 2 {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			var cards []card.Card
			for r := start; r <= end; r++ {
				cards = append(cards, pickByRank(hand, r, 2)...)
			}
			patterns = append(patterns, newPattern(ConsecutivePairs, end, cards))
		}
	}
	return patterns
}

// enumeratePlanes 枚举飞机和飞机带对
// 飞机带对只为每个机身取点数最小的若干对子，避免翅膀组合爆炸
func enumeratePlanes(a analysis, hand []card.Card) []Pattern {
	var patterns []Pattern
	for length := 2; length <= 6; length++ {
		for start := card.Rank3; int(start)+length-1 <= int(card.RankA); start++ {
			end := start + card.Rank(length-1)
			ok := true
			for r := start; r <= end; r++ {
				if a.counts[r] < 3 {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			var body []card.Card
			for r := start; r <= end; r++ {
				body = append(body, pickByRank(hand, r, 3)...)
			}
			patterns = append(patterns, newPattern(Plane, end, body))

			// 机身外点数最小的 length 个对子作翅膀
			var wings []card.Card
			wingCount := 0
			for _, p := range pairRanks(a) {
				if p >= start && p <= end {
					continue
				}
				wings = append(wings, pickByRank(hand, p, 2)...)
				wingCount++
				if wingCount == length {
					break
				}
			}
			if wingCount == length {
				cards := append(slices.Clone(body), wings...)
				patterns = append(patterns, newPattern(PlaneWithPairs, end, cards))
			}
		}
	}
	return patterns
}

func sortedRanks(a analysis) []card.Rank {
	ranks := make([]card.Rank, 0, len(a.counts))
	for r := range a.counts {
		ranks = append(ranks, r)
	}
	slices.Sort(ranks)
	return ranks
}

// pairRanks 能凑出对子的点数（含三张和四张的点数），升序
func pairRanks(a analysis) []card.Rank {
	var ranks []card.Rank
	for r, count := range a.counts {
		if count >= 2 {
			ranks = append(ranks, r)
		}
	}
	slices.Sort(ranks)
	return ranks
}

// tripleRanks 能凑出三张的点数，升序
func tripleRanks(a analysis) []card.Rank {
	var ranks []card.Rank
	for r, count := range a.counts {
		if count >= 3 {
			ranks = append(ranks, r)
		}
	}
	slices.Sort(ranks)
	return ranks
}
