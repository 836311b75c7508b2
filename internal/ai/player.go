package ai

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/guandan/internal/game/card"
	"github.com/palemoky/guandan/internal/game/pattern"
	"github.com/palemoky/guandan/internal/game/rule"
	"github.com/palemoky/guandan/internal/game/session"
	"github.com/palemoky/guandan/internal/game/special"
)

// decisionBudget 软性决策预算，仅作提示；策略都是纯同步计算，天然满足
const decisionBudget = 3 * time.Second

// Player 驱动一个非人类座位
// 记忆归该实例独占，不同会话的多个 AI 可以并行决策而无共享状态
type Player struct {
	ID       string
	Hand     []card.Card
	strategy Strategy
	mem      *Memory
}

// NewPlayer 创建 AI 玩家
func NewPlayer(id string, strategy Strategy) *Player {
	if id == "" {
		id = uuid.New().String()
	}
	return &Player{
		ID:       id,
		strategy: strategy,
		mem:      NewMemory(),
	}
}

// SetHand 设置手牌
func (p *Player) SetHand(hand []card.Card) {
	p.Hand = hand
}

// RemoveFromHand 出牌后从手牌移除
func (p *Player) RemoveFromHand(cards []card.Card) {
	p.Hand = card.Deck(p.Hand).Remove(cards)
}

// Memory 返回该玩家的私有记忆
func (p *Player) Memory() *Memory {
	return p.mem
}

// Strategy 返回当前策略
func (p *Player) Strategy() Strategy {
	return p.strategy
}

// MakeDecision 做出一次出牌决策
// 任何策略内部的 panic 都会被捕获并降级为低置信度的过牌，
// 决策错误绝不会传播进调用方的回合循环
func (p *Player) MakeDecision(view *session.View) (decision Decision) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("player", p.ID).Any("panic", r).Msg("AI 决策异常，降级为过牌")
			decision = Decision{
				Choice:     session.ChoicePass,
				Confidence: 0.2,
				Reason:     "内部评估失败，保守过牌",
			}
		}
		if elapsed := time.Since(started); elapsed > decisionBudget {
			log.Warn().Str("player", p.ID).Dur("elapsed", elapsed).Msg("AI 决策超出软预算")
		}
	}()

	p.mem.SetHand(p.Hand)
	p.mem.AddSnapshot(p.snapshot(view))

	table := rule.TablePattern(view)
	options := p.legalOptions(view, table)
	decision = p.strategy.SelectBestPlay(options, view, p.mem)

	if decision.Choice == session.ChoicePlay {
		round := 0
		if view != nil && view.CurrentRound != nil {
			round = view.CurrentRound.RoundNumber
		}
		if recognized, ok := p.recognizePlay(decision.Cards, view); ok {
			rec := session.NewPlayRecord(p.ID, &recognized, round)
			p.mem.AddRecord(rec)
			p.strategy.UpdateMemory(rec, view, p.mem)
		}
	}
	return decision
}

// recognizePlay 识别本次出牌
// 级牌生效时走万能牌识别，否则万能牌升级出的牌型（如 777+级牌 的炸弹）会识别失败
func (p *Player) recognizePlay(cards []card.Card, view *session.View) (pattern.Pattern, bool) {
	if view != nil && view.CurrentRound != nil && view.CurrentRound.TributeRank != 0 {
		return special.RecognizeWithWildcards(cards, view.CurrentRound.TributeRank)
	}
	return pattern.Recognize(cards)
}

// legalOptions 枚举所有合法出牌并附加合成的过牌选项
// 级牌生效时对每个候选做一次万能牌升级识别，再经规则引擎过滤
func (p *Player) legalOptions(view *session.View, table *pattern.Pattern) []Option {
	var options []Option

	var tribute card.Rank
	if view != nil && view.CurrentRound != nil {
		tribute = view.CurrentRound.TributeRank
	}

	for _, cand := range pattern.EnumerateAll(p.Hand) {
		candidate := cand
		if tribute != 0 {
			if upgraded, ok := special.RecognizeWithWildcards(cand.Cards, tribute); ok {
				candidate = upgraded
			}
		}
		result := rule.ValidatePlay(p.ID, candidate.Cards, table, view)
		if !result.Valid {
			continue
		}
		beats := table == nil || pattern.CanBeat(*result.Pattern, *table)
		options = append(options, Option{Pattern: result.Pattern, Beats: beats})
	}

	// 永远保留过牌选项
	options = append(options, Option{Pass: true})
	return options
}

func (p *Player) snapshot(view *session.View) Snapshot {
	s := Snapshot{
		HandSize:  len(p.Hand),
		Timestamp: time.Now(),
	}
	if view != nil {
		s.Phase = view.Phase
		if view.CurrentRound != nil {
			s.RoundNumber = view.CurrentRound.RoundNumber
			s.CurrentPlayerID = view.CurrentRound.CurrentPlayerID
		}
		if table := rule.TablePattern(view); table != nil {
			s.TableKind = table.Kind
		}
	}
	return s
}
