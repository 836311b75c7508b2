package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/guandan/internal/game/card"
	"github.com/palemoky/guandan/internal/game/pattern"
)

// Choice 出牌选择
type Choice string

const (
	ChoicePlay Choice = "play"
	ChoicePass Choice = "pass"
)

// PlayRecord 一次出牌（或过牌）的记录，只追加不修改
// 结算服务和 AI 记忆都从这份日志消费；WinsRound 在本局结束后回填
type PlayRecord struct {
	ID          string           `json:"id"`
	PlayerID    string           `json:"player_id"`
	Cards       []card.Card      `json:"cards,omitempty"`
	Pattern     *pattern.Pattern `json:"pattern,omitempty"`
	Choice      Choice           `json:"choice"`
	RoundNumber int              `json:"round_number"`
	Timestamp   time.Time        `json:"timestamp"`
	IsValid     bool             `json:"is_valid"`
	WinsRound   *bool            `json:"wins_round,omitempty"`
}

// NewPlayRecord 创建一条出牌记录
func NewPlayRecord(playerID string, p *pattern.Pattern, roundNumber int) PlayRecord {
	rec := PlayRecord{
		ID:          uuid.New().String(),
		PlayerID:    playerID,
		Choice:      ChoicePass,
		RoundNumber: roundNumber,
		Timestamp:   time.Now(),
		IsValid:     true,
	}
	if p != nil && !p.IsEmpty() {
		rec.Choice = ChoicePlay
		rec.Cards = p.Cards
		rec.Pattern = p
	}
	return rec
}

// IsPlay 是否为有效出牌（非过牌）
func (r PlayRecord) IsPlay() bool {
	return r.Choice == ChoicePlay
}
