//go:build !production

package testutil

import (
	"fmt"

	"github.com/palemoky/guandan/internal/game/card"
	"github.com/palemoky/guandan/internal/game/session"
)

// MustCards 按点数字符串构造一手牌，如 "334455"、"TJQKA"、"wW"
// 花色在四色间轮转；同点数出现第五次起会重复花色（两副牌场景合法）
func MustCards(ranks string) []card.Card {
	suits := []card.Suit{card.Spade, card.Heart, card.Club, card.Diamond}
	seen := make(map[card.Rank]int)

	cards := make([]card.Card, 0, len(ranks))
	for _, ch := range ranks {
		rank, err := card.RankFromChar(ch)
		if err != nil {
			panic(fmt.Sprintf("非法点数字符 %c: %v", ch, err))
		}
		suit := suits[seen[rank]%len(suits)]
		if rank == card.RankSmallJoker || rank == card.RankBigJoker {
			suit = card.Joker
		}
		seen[rank]++
		cards = append(cards, card.New(suit, rank))
	}
	return cards
}

// MustCardsOf 构造指定花色的一组同花色牌
func MustCardsOf(suit card.Suit, ranks string) []card.Card {
	cards := make([]card.Card, 0, len(ranks))
	for _, ch := range ranks {
		rank, err := card.RankFromChar(ch)
		if err != nil {
			panic(fmt.Sprintf("非法点数字符 %c: %v", ch, err))
		}
		cards = append(cards, card.New(suit, rank))
	}
	return cards
}

// ViewBuilder 逐步构造测试用对局视图
type ViewBuilder struct {
	view session.View
}

// NewView 默认四人两队、对局中、第 1 局、p1 行动
func NewView() *ViewBuilder {
	return &ViewBuilder{
		view: session.View{
			Phase: session.PhasePlaying,
			CurrentRound: &session.RoundInfo{
				RoundNumber:     1,
				CurrentPlayerID: "p1",
				NextPlayerID:    "p2",
				Direction:       1,
			},
			Players: []session.PlayerSeat{
				{ID: "p1", TeamID: "A"},
				{ID: "p2", TeamID: "B"},
				{ID: "p3", TeamID: "A"},
				{ID: "p4", TeamID: "B"},
			},
			TeamLevels: map[string]int{"A": 2, "B": 2},
		},
	}
}

// Phase 设置阶段
func (b *ViewBuilder) Phase(p session.Phase) *ViewBuilder {
	b.view.Phase = p
	return b
}

// Turn 设置当前行动玩家
func (b *ViewBuilder) Turn(playerID string) *ViewBuilder {
	b.view.CurrentRound.CurrentPlayerID = playerID
	return b
}

// Round 设置局号
func (b *ViewBuilder) Round(n int) *ViewBuilder {
	b.view.CurrentRound.RoundNumber = n
	return b
}

// Tribute 设置级牌点数
func (b *ViewBuilder) Tribute(r card.Rank) *ViewBuilder {
	b.view.CurrentRound.TributeRank = r
	return b
}

// Levels 设置队伍级数
func (b *ViewBuilder) Levels(a, bLevel int) *ViewBuilder {
	b.view.TeamLevels = map[string]int{"A": a, "B": bLevel}
	return b
}

// WithPlay 追加一条出牌记录（cards 为空表示过牌）
func (b *ViewBuilder) WithPlay(rec session.PlayRecord) *ViewBuilder {
	b.view.Plays = append(b.view.Plays, rec)
	return b
}

// Build 返回构造好的视图
func (b *ViewBuilder) Build() *session.View {
	v := b.view
	return &v
}
