package pattern

import (
	"slices"

	"github.com/palemoky/guandan/internal/game/card"
)

// Kind 定义牌型
type Kind int

const (
	Invalid          Kind = iota
	Single                // 单张
	Pair                  // 对子
	Triple                // 三张
	TripleWithPair        // 三带二
	Straight              // 顺子（恰好5张连续单张）
	ConsecutivePairs      // 连对（3对或以上）
	Plane                 // 飞机（2个或以上连续三张）
	PlaneWithPairs        // 飞机带对
	Bomb                  // 炸弹（4张或以上同点数）
	Rocket                // 火箭（大小王各一张）
)

// kindNames 牌型名称映射表
var kindNames = map[Kind]string{
	Single:           "单张",
	Pair:             "对子",
	Triple:           "三张",
	TripleWithPair:   "三带二",
	Straight:         "顺子",
	ConsecutivePairs: "连对",
	Plane:            "飞机",
	PlaneWithPairs:   "飞机带对",
	Bomb:             "炸弹",
	Rocket:           "火箭",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "无效"
}

// IsBombLike 炸弹类牌型（炸弹和火箭）可以压制任意普通牌型
func (k Kind) IsBombLike() bool {
	return k == Bomb || k == Rocket
}

// Pattern 识别后的牌型，用于比较和出牌记录
// Cards 必须恰好覆盖识别时输入的牌，不允许有剩余
type Pattern struct {
	Kind     Kind        `json:"kind"`
	MainRank card.Rank   `json:"main_rank"`
	Cards    []card.Card `json:"cards"`
	Strength int         `json:"strength"`
}

func (p Pattern) IsEmpty() bool {
	return p.Kind == Invalid
}

// Size 返回牌型的张数
func (p Pattern) Size() int {
	return len(p.Cards)
}

// strengthOf 计算牌型的综合强度，仅用于 AI 候选排序和强度评估，
// 压牌判定走 Compare，不使用该值
func strengthOf(kind Kind, size int, mainRank card.Rank) int {
	switch kind {
	case Rocket:
		return 9_000_000
	case Bomb:
		return 1_000_000 + size*10_000 + mainRank.Value()
	case Invalid:
		return 0
	default:
		return size*100 + mainRank.Value()
	}
}

// analysis 对一组牌进行预分析，统计各点数的张数并分组
type analysis struct {
	counts map[card.Rank]int
	fours  []card.Rank // 4张及以上
	trios  []card.Rank
	pairs  []card.Rank
	ones   []card.Rank
}

func analyze(cards []card.Card) analysis {
	a := analysis{counts: make(map[card.Rank]int)}
	for _, c := range cards {
		a.counts[c.Rank]++
	}
	for r, count := range a.counts {
		switch {
		case count >= 4:
			a.fours = append(a.fours, r)
		case count == 3:
			a.trios = append(a.trios, r)
		case count == 2:
			a.pairs = append(a.pairs, r)
		case count == 1:
			a.ones = append(a.ones, r)
		}
	}
	slices.Sort(a.fours)
	slices.Sort(a.trios)
	slices.Sort(a.pairs)
	slices.Sort(a.ones)
	return a
}

// isConsecutiveNatural 检查点数是否严格连续且都是自然点数（3..A）
// 顺子、连对、飞机不能包含 2 和大小王
func isConsecutiveNatural(ranks []card.Rank) bool {
	if len(ranks) == 0 {
		return false
	}
	for i, r := range ranks {
		if !r.IsNatural() {
			return false
		}
		if i > 0 && ranks[i-1]+1 != r {
			return false
		}
	}
	return true
}

// pickByRank 从牌组中取出指定点数的 count 张牌
func pickByRank(cards []card.Card, rank card.Rank, count int) []card.Card {
	var result []card.Card
	for _, c := range cards {
		if c.Rank == rank {
			result = append(result, c)
			if len(result) == count {
				return result
			}
		}
	}
	return result
}
