package apperrors

// Kind 规则违例的分类，调用方据此分流处理，而不是依赖异常类型
type Kind string

const (
	KindInvalidPattern       Kind = "invalid_pattern"
	KindPatternTooSmall      Kind = "pattern_too_small"
	KindNotYourTurn          Kind = "not_your_turn"
	KindPlayerAlreadyPassed  Kind = "player_already_passed"
	KindGameNotStarted       Kind = "game_not_started"
	KindInvalidGameState     Kind = "invalid_game_state"
	KindInsufficientCards    Kind = "insufficient_cards"
	KindSpecialRuleViolation Kind = "special_rule_violation"
	KindUnknown              Kind = "unknown_error"
)

// GameError 游戏错误（校验和状态机共享）
// 预期内的规则违例一律以错误值返回，不会 panic
type GameError struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrInvalidPattern       = &GameError{Kind: KindInvalidPattern, Code: 1001, Message: "无效的牌型"}
	ErrPatternTooSmall      = &GameError{Kind: KindPatternTooSmall, Code: 1002, Message: "您的牌大不过上家"}
	ErrNotYourTurn          = &GameError{Kind: KindNotYourTurn, Code: 1003, Message: "还没轮到您出牌"}
	ErrPlayerAlreadyPassed  = &GameError{Kind: KindPlayerAlreadyPassed, Code: 1004, Message: "您本轮已经过牌"}
	ErrGameNotStarted       = &GameError{Kind: KindGameNotStarted, Code: 1005, Message: "游戏尚未开始"}
	ErrInvalidGameState     = &GameError{Kind: KindInvalidGameState, Code: 1006, Message: "非法的阶段迁移"}
	ErrInsufficientCards    = &GameError{Kind: KindInsufficientCards, Code: 1007, Message: "出牌不能为空"}
	ErrSpecialRuleViolation = &GameError{Kind: KindSpecialRuleViolation, Code: 1008, Message: "违反特殊规则"}
	ErrUnknown              = &GameError{Kind: KindUnknown, Code: 1999, Message: "未知错误"}
)
