// Package session 定义核心只读的对局视图
// 视图由外部会话层持有和修改，核心只读取；唯一的例外是状态机，
// 它通过显式的迁移入口回写 Phase。
package session

import (
	"github.com/palemoky/guandan/internal/game/card"
)

// Phase 对局阶段
type Phase int

const (
	PhasePreparing Phase = iota // 准备中
	PhaseDealing                // 发牌中
	PhaseBidding                // 叫牌中
	PhasePlaying                // 对局中
	PhaseRoundEnd               // 本局结算
	PhaseGameEnd                // 整场结束
)

// phaseNames 阶段名称映射表
var phaseNames = map[Phase]string{
	PhasePreparing: "preparing",
	PhaseDealing:   "dealing",
	PhaseBidding:   "bidding",
	PhasePlaying:   "playing",
	PhaseRoundEnd:  "round_end",
	PhaseGameEnd:   "game_end",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// RoundInfo 当前一局的回合信息
type RoundInfo struct {
	RoundNumber     int       `json:"round_number"`
	DealerID        string    `json:"dealer_id"`
	CurrentPlayerID string    `json:"current_player_id"`
	NextPlayerID    string    `json:"next_player_id"`
	Direction       int       `json:"direction"` // 1 顺时针 -1 逆时针
	TributeRank     card.Rank `json:"tribute_rank,omitempty"`
}

// PlayerSeat 座位上的玩家
type PlayerSeat struct {
	ID     string `json:"id"`
	TeamID string `json:"team_id"`
}

// View 核心所需的最小对局读模型
// 所有权属于外部会话层，核心按调用借用；并发场景下一个视图同一时刻
// 只允许一个写入方（单写者约束），不可变快照可以并发读取
type View struct {
	Phase        Phase          `json:"phase"`
	CurrentRound *RoundInfo     `json:"current_round,omitempty"`
	Players      []PlayerSeat   `json:"players"`
	Plays        []PlayRecord   `json:"plays"`
	TeamLevels   map[string]int `json:"team_levels,omitempty"`
}

// PlayerByID 按 ID 查找座位
func (v *View) PlayerByID(id string) (PlayerSeat, bool) {
	for _, p := range v.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerSeat{}, false
}

// TeammateOf 返回指定玩家的队友 ID
func (v *View) TeammateOf(id string) (string, bool) {
	seat, ok := v.PlayerByID(id)
	if !ok {
		return "", false
	}
	for _, p := range v.Players {
		if p.ID != id && p.TeamID == seat.TeamID {
			return p.ID, true
		}
	}
	return "", false
}

// RoundPlays 返回当前一局的出牌记录
func (v *View) RoundPlays() []PlayRecord {
	if v.CurrentRound == nil {
		return v.Plays
	}
	var records []PlayRecord
	for _, r := range v.Plays {
		if r.RoundNumber == v.CurrentRound.RoundNumber {
			records = append(records, r)
		}
	}
	return records
}

// RoomStatus 房间状态
type RoomStatus int

const (
	RoomWaiting RoomStatus = iota
	RoomPlaying
	RoomClosed
)

// RoomPlayer 房间中的玩家
type RoomPlayer struct {
	ID    string `json:"id"`
	Ready bool   `json:"ready"`
}

// RoomView 开局检查所需的房间读模型
type RoomView struct {
	Status  RoomStatus        `json:"status"`
	Players []RoomPlayer      `json:"players"`
	Config  map[string]string `json:"config"`
}
