// Package state 实现对局阶段状态机
// 阶段图：准备 → 发牌 → 叫牌 → 对局 → 结算 → {对局 | 结束}；结束 → 准备。
// 每条边都有守卫条件，迁移失败时会话保持原样，绝不产生半完成的迁移。
package state

import (
	"github.com/palemoky/guandan/internal/apperrors"
	"github.com/palemoky/guandan/internal/game/rule"
	"github.com/palemoky/guandan/internal/game/score"
	"github.com/palemoky/guandan/internal/game/session"
)

// Guard 迁移守卫，只读判断当前视图是否允许走这条边
type Guard func(*session.View) bool

// Action 迁移动作，在阶段写入后执行（如进入结算阶段触发计分）
type Action func(*session.View)

// Edge 状态图中的一条有向边
type Edge struct {
	From   session.Phase
	To     session.Phase
	Guard  Guard
	Action Action
}

// Hooks 外部挂载的迁移动作
type Hooks struct {
	OnDealing  Action // 进入发牌阶段（宿主在此发牌）
	OnRoundEnd Action // 进入结算阶段（宿主在此计分）
	OnGameEnd  Action
}

// Machine 阶段状态机，是唯一允许回写 View.Phase 的组件
type Machine struct {
	edges []Edge
}

// NewMachine 构建默认阶段图
func NewMachine(hooks Hooks) *Machine {
	return &Machine{
		edges: []Edge{
			{From: session.PhasePreparing, To: session.PhaseDealing, Guard: hasFullTable, Action: hooks.OnDealing},
			{From: session.PhaseDealing, To: session.PhaseBidding, Guard: always},
			{From: session.PhaseBidding, To: session.PhasePlaying, Guard: hasCurrentPlayer},
			{From: session.PhasePlaying, To: session.PhaseRoundEnd, Guard: roundEnded, Action: hooks.OnRoundEnd},
			{From: session.PhaseRoundEnd, To: session.PhasePlaying, Guard: gameContinues},
			{From: session.PhaseRoundEnd, To: session.PhaseGameEnd, Guard: gameOver, Action: hooks.OnGameEnd},
			{From: session.PhaseGameEnd, To: session.PhasePreparing, Guard: always},
		},
	}
}

// TransitionTo 尝试把会话迁移到目标阶段
// 没有对应的边或守卫不通过时返回错误且不修改会话（fail closed）
func (m *Machine) TransitionTo(view *session.View, target session.Phase) error {
	if view == nil {
		return apperrors.ErrInvalidGameState
	}
	for _, edge := range m.edges {
		if edge.From != view.Phase || edge.To != target {
			continue
		}
		if edge.Guard != nil && !edge.Guard(view) {
			return apperrors.ErrInvalidGameState
		}
		view.Phase = target
		if edge.Action != nil {
			edge.Action(view)
		}
		return nil
	}
	return apperrors.ErrInvalidGameState
}

// ValidTransitions 枚举当前所有守卫通过的出边，供 UI/驱动层使用
func (m *Machine) ValidTransitions(view *session.View) []session.Phase {
	if view == nil {
		return nil
	}
	var targets []session.Phase
	for _, edge := range m.edges {
		if edge.From != view.Phase {
			continue
		}
		if edge.Guard == nil || edge.Guard(view) {
			targets = append(targets, edge.To)
		}
	}
	return targets
}

// StateInfo 对外暴露的状态摘要
type StateInfo struct {
	Phase        session.Phase   `json:"phase"`
	PhaseName    string          `json:"phase_name"`
	ValidTargets []session.Phase `json:"valid_targets"`
}

// Info 汇总当前阶段和可达阶段
func (m *Machine) Info(view *session.View) StateInfo {
	info := StateInfo{ValidTargets: m.ValidTransitions(view)}
	if view != nil {
		info.Phase = view.Phase
		info.PhaseName = view.Phase.String()
	}
	return info
}

func always(*session.View) bool { return true }

func hasFullTable(view *session.View) bool {
	return len(view.Players) == 4
}

func hasCurrentPlayer(view *session.View) bool {
	return view.CurrentRound != nil && view.CurrentRound.CurrentPlayerID != ""
}

func roundEnded(view *session.View) bool {
	return rule.IsRoundEnd(view.Players, rule.PassedSinceLastPlay(view))
}

// gameOver 任意一队打过A（等级到顶）则整场结束
func gameOver(view *session.View) bool {
	for _, level := range view.TeamLevels {
		if level >= score.MaxLevel {
			return true
		}
	}
	return false
}

func gameContinues(view *session.View) bool {
	return !gameOver(view)
}
