package ai

import (
	"github.com/palemoky/guandan/internal/game/card"
	"github.com/palemoky/guandan/internal/game/pattern"
	"github.com/palemoky/guandan/internal/game/session"
)

// Option 一个候选出牌；Pass 为真时表示合成的过牌选项
type Option struct {
	Pass    bool
	Pattern *pattern.Pattern
	Beats   bool // 是否压得过当前桌面
}

// Decision AI 的最终决策
type Decision struct {
	Choice     session.Choice `json:"choice"`
	Cards      []card.Card    `json:"cards,omitempty"`
	Confidence float64        `json:"confidence"`
	Reason     string         `json:"reason"`
}

// Strategy 决策策略
// 所有实现必须是纯同步计算，不做 I/O，评估分值域为 [0,100]
type Strategy interface {
	Name() string
	SelectBestPlay(options []Option, view *session.View, mem *Memory) Decision
	EvaluatePlay(p *pattern.Pattern, view *session.View, mem *Memory) float64
	EvaluatePass(view *session.View, mem *Memory) float64
	UpdateMemory(rec session.PlayRecord, view *session.View, mem *Memory)
}

// Difficulty 难度档位，决定共享评分的权重配比
type Difficulty string

const (
	DifficultyBeginner Difficulty = "beginner"
	DifficultyNormal   Difficulty = "normal"
	DifficultyExpert   Difficulty = "expert"
)

// Weights 共享评分的加权配比
type Weights struct {
	Strength float64 // 牌型强度
	HandOpt  float64 // 出牌后剩余手牌质量
	Risk     float64 // 风险规避
	Teamwork float64 // 配合队友
	Memory   float64 // 记忆影响
}

// WeightsFor 按难度取权重：新手偏保守，专家偏重记忆与配合
func WeightsFor(d Difficulty) Weights {
	switch d {
	case DifficultyBeginner:
		return Weights{Strength: 0.20, HandOpt: 0.20, Risk: 0.40, Teamwork: 0.10, Memory: 0.10}
	case DifficultyExpert:
		return Weights{Strength: 0.30, HandOpt: 0.20, Risk: 0.10, Teamwork: 0.15, Memory: 0.25}
	default:
		return Weights{Strength: 0.30, HandOpt: 0.25, Risk: 0.20, Teamwork: 0.15, Memory: 0.10}
	}
}

// scoreContext 一次评估用到的上下文
type scoreContext struct {
	hand     []card.Card
	playerID string
	view     *session.View
	mem      *Memory
	memInfl  func(p *pattern.Pattern) float64 // 记忆影响，无记忆库的策略传 nil
}

// baseScore 共享基础评分：各分量加权求和，结果钳制在 [0,100]
func baseScore(p *pattern.Pattern, ctx scoreContext, w Weights) float64 {
	strength := patternStrength(p)
	handOpt := handOptimization(ctx.hand, p)
	risk := riskScore(strength, ctx)
	teamwork := teamworkScore(p, ctx)

	memory := 50.0
	if ctx.memInfl != nil {
		memory = ctx.memInfl(p)
	}

	total := w.Strength + w.HandOpt + w.Risk + w.Teamwork + w.Memory
	if total <= 0 {
		return 50
	}
	sum := strength*w.Strength + handOpt*w.HandOpt + risk*w.Risk + teamwork*w.Teamwork + memory*w.Memory
	return clampScore(sum / total)
}

// patternStrength 牌型强度：形状、点数和长度的综合，0-100
func patternStrength(p *pattern.Pattern) float64 {
	if p == nil || p.IsEmpty() {
		return 0
	}
	switch p.Kind {
	case pattern.Rocket:
		return 100
	case pattern.Bomb:
		s := 70 + float64(p.Size()-4)*5 + rankNorm(p.MainRank)*10
		if s > 98 {
			s = 98
		}
		return s
	}

	s := rankNorm(p.MainRank) * 50
	s += float64(p.Size()) * 3
	switch p.Kind {
	case pattern.TripleWithPair, pattern.Plane, pattern.PlaneWithPairs:
		s += 10
	case pattern.Straight, pattern.ConsecutivePairs:
		s += 6
	}
	return clampScore(s)
}

// handOptimization 评估出掉这手牌之后剩余手牌的质量
// 看两个信号：剩余牌的点数均值（越高越好）和点数多样性（碎牌越少越好）
func handOptimization(hand []card.Card, p *pattern.Pattern) float64 {
	if p == nil || len(hand) == 0 {
		return 50
	}
	remaining := card.Deck(hand).Remove(p.Cards)
	if len(remaining) == 0 {
		return 100 // 出完即胜
	}

	ranks := make(map[card.Rank]int)
	sum := 0
	for _, c := range remaining {
		ranks[c.Rank]++
		sum += c.Rank.Value()
	}
	avg := float64(sum) / float64(len(remaining))
	avgPart := (avg - 3) / 14 * 50

	// 点数种类相对张数越少，说明剩牌越成型
	diversity := float64(len(ranks)) / float64(len(remaining))
	shapePart := (1 - diversity) * 50

	return clampScore(avgPart + shapePart)
}

// riskScore 风险分量：牌型越弱越"安全"，残局和手牌吃紧时放大
func riskScore(strength float64, ctx scoreContext) float64 {
	risk := 100 - strength
	factor := 1.0
	if ctx.view != nil && ctx.view.CurrentRound != nil && ctx.view.CurrentRound.RoundNumber > 8 {
		factor += 0.25
	}
	if len(ctx.hand) <= 5 {
		factor += 0.25
	}
	return clampScore(risk * factor)
}

// teamworkScore 配合分量：队友正掌控桌面时压低出牌意愿
func teamworkScore(p *pattern.Pattern, ctx scoreContext) float64 {
	if ctx.view == nil || p == nil {
		return 50
	}
	teammate, ok := ctx.view.TeammateOf(ctx.playerID)
	if !ok {
		return 50
	}
	plays := ctx.view.RoundPlays()
	for i := len(plays) - 1; i >= 0; i-- {
		if !plays[i].IsPlay() {
			continue
		}
		if plays[i].PlayerID == teammate {
			return 20 // 队友领先，别压自己人
		}
		return 70 // 对手领先，值得争夺
	}
	return 50
}

func rankNorm(r card.Rank) float64 {
	v := float64(r.Value()-3) / float64(card.RankBigJoker.Value()-3)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func handOf(mem *Memory) []card.Card {
	if mem == nil {
		return nil
	}
	return mem.CurrentHand()
}

// confidenceFromScore 把评估分映射为 [0,1] 的置信度
func confidenceFromScore(score float64) float64 {
	return clampScore(score) / 100
}
