// Package rule 是外部调用方使用核心的唯一校验入口
// 它组合识别器、比较器、阶段与轮次状态完成单次出牌的合法性判定。
package rule

import (
	"fmt"

	"github.com/palemoky/guandan/internal/apperrors"
	"github.com/palemoky/guandan/internal/game/card"
	"github.com/palemoky/guandan/internal/game/pattern"
	"github.com/palemoky/guandan/internal/game/session"
	"github.com/palemoky/guandan/internal/game/special"
)

// Result 校验结果
// 预期内的规则违例通过 Err 报告分类和可读信息，调用方负责向终端用户呈现
type Result struct {
	Valid   bool                 `json:"valid"`
	Message string               `json:"message"`
	Pattern *pattern.Pattern     `json:"pattern,omitempty"`
	Err     *apperrors.GameError `json:"-"`
}

func failure(err *apperrors.GameError) Result {
	return Result{Valid: false, Message: err.Message, Err: err}
}

// ValidatePlay 校验一次出牌
// current 为当前桌面牌型（新一轮为 nil）；view 为 nil 时跳过阶段和轮次检查，
// 按首个失败短路返回
func ValidatePlay(playerID string, cards []card.Card, current *pattern.Pattern, view *session.View) Result {
	if len(cards) == 0 {
		return failure(apperrors.ErrInsufficientCards)
	}

	recognized, ok := recognize(cards, view)
	if !ok {
		return failure(apperrors.ErrInvalidPattern)
	}

	if current != nil && !current.IsEmpty() {
		if !pattern.CanBeat(recognized, *current) {
			return failure(apperrors.ErrPatternTooSmall)
		}
	}

	if view != nil {
		if view.Phase != session.PhasePlaying {
			return failure(apperrors.ErrGameNotStarted)
		}
		if view.CurrentRound == nil || view.CurrentRound.CurrentPlayerID != playerID {
			return failure(apperrors.ErrNotYourTurn)
		}
		if hasPassedThisRound(view, playerID) {
			return failure(apperrors.ErrPlayerAlreadyPassed)
		}
	}

	return Result{
		Valid:   true,
		Message: fmt.Sprintf("出牌有效: %s", recognized.Kind),
		Pattern: &recognized,
	}
}

// recognize 识别牌型，级牌生效时走万能牌识别
func recognize(cards []card.Card, view *session.View) (pattern.Pattern, bool) {
	if view != nil && view.CurrentRound != nil && view.CurrentRound.TributeRank != 0 {
		return special.RecognizeWithWildcards(cards, view.CurrentRound.TributeRank)
	}
	return pattern.Recognize(cards)
}

// hasPassedThisRound 玩家本局是否已经过牌
func hasPassedThisRound(view *session.View, playerID string) bool {
	for _, rec := range view.RoundPlays() {
		if rec.PlayerID == playerID && rec.Choice == session.ChoicePass {
			return true
		}
	}
	return false
}

// TablePattern 返回当前一局桌面上待压制的牌型，桌面为空返回 nil
func TablePattern(view *session.View) *pattern.Pattern {
	if view == nil {
		return nil
	}
	plays := view.RoundPlays()
	for i := len(plays) - 1; i >= 0; i-- {
		if plays[i].IsPlay() && plays[i].Pattern != nil {
			return plays[i].Pattern
		}
	}
	return nil
}

// CanStartGame 开局检查：房间等待中、恰好4人、全部准备、配置非空
func CanStartGame(room *session.RoomView) bool {
	if room == nil || room.Status != session.RoomWaiting {
		return false
	}
	if len(room.Players) != 4 {
		return false
	}
	for _, p := range room.Players {
		if !p.Ready {
			return false
		}
	}
	return len(room.Config) > 0
}

// IsRoundEnd 本局是否结束：自最后一次有效出牌起，4人中已有3人过牌
func IsRoundEnd(players []session.PlayerSeat, passedPlayerIDs []string) bool {
	if len(players) == 0 {
		return false
	}
	passed := make(map[string]struct{}, len(passedPlayerIDs))
	for _, id := range passedPlayerIDs {
		for _, p := range players {
			if p.ID == id {
				passed[id] = struct{}{}
				break
			}
		}
	}
	return len(passed) >= len(players)-1
}

// PassedSinceLastPlay 统计当前一局自最后一次有效出牌以来过牌的玩家
func PassedSinceLastPlay(view *session.View) []string {
	if view == nil {
		return nil
	}
	plays := view.RoundPlays()
	var passed []string
	for i := len(plays) - 1; i >= 0; i-- {
		if plays[i].IsPlay() {
			break
		}
		passed = append(passed, plays[i].PlayerID)
	}
	return passed
}
