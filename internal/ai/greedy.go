package ai

import (
	"fmt"

	"github.com/palemoky/guandan/internal/game/pattern"
	"github.com/palemoky/guandan/internal/game/session"
)

// 贪心倾向的自调节边界
const (
	greedyMin  = 0.3
	greedyMax  = 0.95
	greedyStep = 0.05
)

// GreedyStrategy 贪心策略
// 最大化共享评分，带一个随战绩自调节的"贪心倾向"：
// 成功上调、失败下调；能压过桌面的选项优先于压不过的，
// 哪怕要付出小幅分数折让
type GreedyStrategy struct {
	playerID string
	weights  Weights
	tendency float64
}

// NewGreedyStrategy 创建贪心策略
func NewGreedyStrategy(playerID string, difficulty Difficulty) *GreedyStrategy {
	return &GreedyStrategy{
		playerID: playerID,
		weights:  WeightsFor(difficulty),
		tendency: 0.6,
	}
}

func (s *GreedyStrategy) Name() string { return "greedy" }

// Tendency 当前贪心倾向
func (s *GreedyStrategy) Tendency() float64 { return s.tendency }

func (s *GreedyStrategy) SelectBestPlay(options []Option, view *session.View, mem *Memory) Decision {
	const beatDiscount = 8.0 // 压得过的选项可接受的折让

	var bestBeat, bestOther *Option
	var bestBeatScore, bestOtherScore float64
	passScore := 0.0

	for i := range options {
		opt := &options[i]
		if opt.Pass {
			passScore = s.EvaluatePass(view, mem)
			continue
		}
		score := s.EvaluatePlay(opt.Pattern, view, mem)
		if opt.Beats {
			if bestBeat == nil || score > bestBeatScore {
				bestBeat, bestBeatScore = opt, score
			}
		} else {
			if bestOther == nil || score > bestOtherScore {
				bestOther, bestOtherScore = opt, score
			}
		}
	}

	chosen := bestOther
	chosenScore := bestOtherScore
	// 能压过桌面的优先，允许小幅折让
	if bestBeat != nil && (chosen == nil || bestBeatScore >= chosenScore-beatDiscount) {
		chosen, chosenScore = bestBeat, bestBeatScore
	}

	// 贪心倾向越高越不愿过牌
	if chosen == nil || chosenScore < passScore*(1-s.tendency) {
		return Decision{Choice: session.ChoicePass, Confidence: confidenceFromScore(passScore), Reason: "贪心策略：过牌更优"}
	}
	return Decision{
		Choice:     session.ChoicePlay,
		Cards:      chosen.Pattern.Cards,
		Confidence: confidenceFromScore(chosenScore),
		Reason:     fmt.Sprintf("贪心策略：%s（倾向 %.2f）", chosen.Pattern.Kind, s.tendency),
	}
}

func (s *GreedyStrategy) EvaluatePlay(p *pattern.Pattern, view *session.View, mem *Memory) float64 {
	ctx := scoreContext{hand: handOf(mem), playerID: s.playerID, view: view, mem: mem}
	score := baseScore(p, ctx, s.weights)
	// 贪心倾向抬高强牌的吸引力
	return clampScore(score + patternStrength(p)*s.tendency*0.2)
}

func (s *GreedyStrategy) EvaluatePass(view *session.View, mem *Memory) float64 {
	return clampScore(45 * (1 - s.tendency/2))
}

// UpdateMemory 根据战绩回填自调节贪心倾向
func (s *GreedyStrategy) UpdateMemory(rec session.PlayRecord, view *session.View, mem *Memory) {
	if rec.WinsRound == nil {
		return
	}
	if *rec.WinsRound {
		s.tendency += greedyStep
	} else {
		s.tendency -= greedyStep
	}
	if s.tendency > greedyMax {
		s.tendency = greedyMax
	}
	if s.tendency < greedyMin {
		s.tendency = greedyMin
	}
}
