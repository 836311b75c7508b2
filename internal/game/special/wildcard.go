// Package special 实现特殊规则：级牌万能替换、春天/反春检测和炸弹加成条件。
package special

import (
	"github.com/palemoky/guandan/internal/game/card"
	"github.com/palemoky/guandan/internal/game/pattern"
)

// RecognizeWithWildcards 级牌生效时的牌型识别
// tribute 点数的牌可以代替任意点数/花色参与组牌；搜索在所有可行解中
// 优先选炸弹，其次选主点数更大的结果；没有可行替换时退回普通识别
func RecognizeWithWildcards(cards []card.Card, tribute card.Rank) (pattern.Pattern, bool) {
	if tribute == 0 {
		return pattern.Recognize(cards)
	}

	var wilds, normals []card.Card
	for _, c := range cards {
		if c.Rank == tribute {
			wilds = append(wilds, c)
		} else {
			normals = append(normals, c)
		}
	}
	// 没有万能牌，或全是万能牌（按本来点数打出），走普通识别
	if len(wilds) == 0 || len(normals) == 0 {
		return pattern.Recognize(cards)
	}

	candidates := searchSubstitutions(cards, normals, len(wilds))
	if len(candidates) == 0 {
		return pattern.Recognize(cards)
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if betterSubstitution(c, best) {
			best = c
		}
	}
	return best, true
}

// betterSubstitution 替换结果的偏好：炸弹优先，其次主点数大者优先
func betterSubstitution(a, b pattern.Pattern) bool {
	if (a.Kind == pattern.Bomb) != (b.Kind == pattern.Bomb) {
		return a.Kind == pattern.Bomb
	}
	return a.MainRank > b.MainRank
}

// searchSubstitutions 枚举万能牌的所有可行替换方案
// 每种目标形状按"普通牌点数统计 + 万能牌补缺"的方式检查，
// 要求恰好消耗全部牌
func searchSubstitutions(all, normals []card.Card, wildCount int) []pattern.Pattern {
	counts := make(map[card.Rank]int)
	for _, c := range normals {
		counts[c.Rank]++
	}

	var candidates []pattern.Pattern
	add := func(kind pattern.Kind, mainRank card.Rank) {
		candidates = append(candidates, pattern.Compose(kind, mainRank, all))
	}

	total := len(all)

	// 同点数牌型：普通牌只有一种点数时，万能牌补足张数
	if len(counts) == 1 {
		rank := normals[0].Rank
		switch {
		case total >= 4:
			add(pattern.Bomb, rank)
		case total == 3:
			add(pattern.Triple, rank)
		case total == 2:
			add(pattern.Pair, rank)
		}
	}

	// 三带二
	if total == 5 {
		if t, _, ok := fitTripleWithPair(counts, wildCount); ok {
			add(pattern.TripleWithPair, t)
		}
	}

	// 顺子
	if total == 5 {
		if end, ok := fitSequence(counts, wildCount, 5, 1); ok {
			add(pattern.Straight, end)
		}
	}

	// 连对
	if total >= 6 && total%2 == 0 {
		if end, ok := fitSequence(counts, wildCount, total/2, 2); ok && total/2 >= 3 {
			add(pattern.ConsecutivePairs, end)
		}
	}

	// 飞机
	if total >= 6 && total%3 == 0 {
		if end, ok := fitSequence(counts, wildCount, total/3, 3); ok && total/3 >= 2 {
			add(pattern.Plane, end)
		}
	}

	// 飞机带对
	if total >= 10 && total%5 == 0 {
		if end, ok := fitPlaneWithPairs(counts, wildCount, total/5); ok {
			add(pattern.PlaneWithPairs, end)
		}
	}

	return candidates
}

// fitSequence 检查普通牌加万能牌能否恰好构成 length 连、每点 width 张的序列
// 返回能构成的最大截止点数
func fitSequence(counts map[card.Rank]int, wildCount, length, width int) (card.Rank, bool) {
	var best card.Rank
	found := false
	for start := card.Rank3; int(start)+length-1 <= int(card.RankA); start++ {
		end := start + card.Rank(length-1)
		need := 0
		feasible := true
		for r := start; r <= end; r++ {
			c := counts[r]
			if c > width {
				feasible = false
				break
			}
			need += width - c
		}
		if !feasible || need != wildCount {
			continue
		}
		// 序列外不能有剩余的普通牌
		if hasOutsiders(counts, start, end) {
			continue
		}
		if !found || end > best {
			best = end
			found = true
		}
	}
	return best, found
}

// fitTripleWithPair 检查能否构成三带二，返回三张和对子的点数
func fitTripleWithPair(counts map[card.Rank]int, wildCount int) (card.Rank, card.Rank, bool) {
	var bestT, bestP card.Rank
	found := false
	for t := card.Rank3; t <= card.Rank2; t++ {
		for p := card.Rank3; p <= card.Rank2; p++ {
			if t == p {
				continue
			}
			ct, cp := counts[t], counts[p]
			if ct > 3 || cp > 2 {
				continue
			}
			need := (3 - ct) + (2 - cp)
			if need != wildCount {
				continue
			}
			extra := false
			for r, c := range counts {
				if r != t && r != p && c > 0 {
					extra = true
					break
				}
			}
			if extra {
				continue
			}
			if !found || t > bestT || (t == bestT && p > bestP) {
				bestT, bestP = t, p
				found = true
			}
		}
	}
	return bestT, bestP, found
}

// fitPlaneWithPairs 检查能否构成 k 组飞机带对
func fitPlaneWithPairs(counts map[card.Rank]int, wildCount, k int) (card.Rank, bool) {
	var best card.Rank
	found := false
	for start := card.Rank3; int(start)+k-1 <= int(card.RankA); start++ {
		end := start + card.Rank(k-1)
		need := 0
		feasible := true
		for r := start; r <= end; r++ {
			c := counts[r]
			if c > 3 {
				feasible = false
				break
			}
			need += 3 - c
		}
		if !feasible {
			continue
		}

		// 机身外的点数作翅膀对子，每点最多2张
		wingRanks := 0
		for r, c := range counts {
			if r >= start && r <= end {
				continue
			}
			if c == 0 {
				continue
			}
			if c > 2 {
				feasible = false
				break
			}
			wingRanks++
			need += 2 - c
		}
		if !feasible || wingRanks > k {
			continue
		}
		// 不足 k 对的翅膀全部用万能牌补
		need += 2 * (k - wingRanks)
		if need != wildCount {
			continue
		}
		if !found || end > best {
			best = end
			found = true
		}
	}
	return best, found
}

func hasOutsiders(counts map[card.Rank]int, start, end card.Rank) bool {
	for r, c := range counts {
		if c > 0 && (r < start || r > end) {
			return true
		}
	}
	return false
}
