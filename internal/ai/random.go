package ai

import (
	"math/rand/v2"

	"github.com/palemoky/guandan/internal/game/pattern"
	"github.com/palemoky/guandan/internal/game/session"
)

// RandomStrategy 随机策略
// 忽略绝大多数信号，在基准分上叠加有界噪声；用于验证整条决策管线
// 在最差策略下也能正常运转
type RandomStrategy struct{}

// NewRandomStrategy 创建随机策略
func NewRandomStrategy() *RandomStrategy {
	return &RandomStrategy{}
}

func (s *RandomStrategy) Name() string { return "random" }

func (s *RandomStrategy) SelectBestPlay(options []Option, view *session.View, mem *Memory) Decision {
	best := Decision{Choice: session.ChoicePass, Confidence: 0.3, Reason: "随机策略：过牌"}
	bestScore := -1.0
	for _, opt := range options {
		var score float64
		if opt.Pass {
			score = s.EvaluatePass(view, mem)
		} else {
			score = s.EvaluatePlay(opt.Pattern, view, mem)
		}
		if score > bestScore {
			bestScore = score
			if opt.Pass {
				best = Decision{Choice: session.ChoicePass, Confidence: confidenceFromScore(score), Reason: "随机策略：过牌"}
			} else {
				best = Decision{
					Choice:     session.ChoicePlay,
					Cards:      opt.Pattern.Cards,
					Confidence: confidenceFromScore(score),
					Reason:     "随机策略：" + opt.Pattern.Kind.String(),
				}
			}
		}
	}
	return best
}

// EvaluatePlay 基准分取 [30,70]，再叠加 ±20 的有界噪声
func (s *RandomStrategy) EvaluatePlay(p *pattern.Pattern, view *session.View, mem *Memory) float64 {
	base := 30 + rand.Float64()*40
	noise := (rand.Float64() - 0.5) * 40
	return clampScore(base + noise)
}

func (s *RandomStrategy) EvaluatePass(view *session.View, mem *Memory) float64 {
	return clampScore(30 + rand.Float64()*40)
}

func (s *RandomStrategy) UpdateMemory(rec session.PlayRecord, view *session.View, mem *Memory) {
	// 随机策略不学习
}
