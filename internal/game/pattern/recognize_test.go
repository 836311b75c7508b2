package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/guandan/internal/game/card"
)

// mk 按点数字符串构造一组牌，花色轮转以避免误判为同花
func mk(ranks string) []card.Card {
	suits := []card.Suit{card.Spade, card.Heart, card.Club, card.Diamond}
	seen := make(map[card.Rank]int)

	var cards []card.Card
	for _, ch := range ranks {
		rank, err := card.RankFromChar(ch)
		if err != nil {
			panic(err)
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

func TestRecognize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		kind     Kind
		mainRank card.Rank
	}{
		{"Single 3", "3", Single, card.Rank3},
		{"Single big joker", "W", Single, card.RankBigJoker},
		{"Pair of kings", "KK", Pair, card.RankK},
		{"Pair of small jokers", "ww", Pair, card.RankSmallJoker},
		{"Triple of sevens", "777", Triple, card.Rank7},
		{"Four card bomb", "7777", Bomb, card.Rank7},
		{"Five card bomb", "55555", Bomb, card.Rank5},
		{"Eight card bomb", "22222222", Bomb, card.Rank2},
		{"Rocket", "wW", Rocket, card.RankBigJoker},
		{"Straight 3 to 7", "34567", Straight, card.Rank7},
		{"Straight 10 to A", "TJQKA", Straight, card.RankA},
		{"Triple with pair", "777KK", TripleWithPair, card.Rank7},
		{"Consecutive pairs 334455", "334455", ConsecutivePairs, card.Rank5},
		{"Consecutive pairs four long", "33445566", ConsecutivePairs, card.Rank6},
		{"Plane two triples", "888999", Plane, card.Rank9},
		{"Plane with pairs", "888999QQKK", PlaneWithPairs, card.Rank9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, ok := Recognize(mk(tt.cards))
			require.True(t, ok)
			assert.Equal(t, tt.kind, p.Kind)
			assert.Equal(t, tt.mainRank, p.MainRank)
			assert.Len(t, p.Cards, len(tt.cards))
		})
	}
}

func TestRecognizeInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards string
	}{
		{"Empty", ""},
		{"Mismatched pair", "34"},
		{"Straight too short", "3456"},
		{"Straight too long", "345678"},
		{"Straight across 2", "A2345"},
		{"Straight with joker", "JQKAw"},
		{"Two pairs only", "3344"},
		{"Consecutive pairs with gap", "334466"},
		{"Consecutive pairs over 2", "AA2233"},
		{"Triple with single leftover", "7778"},
		{"Triple with two singles", "77789"},
		{"Plane with leftover card", "8889993"},
		{"Plane with mismatched wings", "888999KK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, ok := Recognize(mk(tt.cards))
			assert.False(t, ok)
			assert.True(t, p.IsEmpty())
		})
	}
}

func TestRecognizeRejectsDuplicateCards(t *testing.T) {
	t.Parallel()

	c := card.New(card.Spade, card.Rank9)
	_, ok := Recognize([]card.Card{c, c})
	assert.False(t, ok)
}

func TestRecognizeRoundTrip(t *testing.T) {
	t.Parallel()

	// 识别结果的 Cards 再识别一次必须得到同样的牌型
	for _, ranks := range []string{"9", "QQ", "34567", "777KK", "334455", "888999QQKK", "6666", "wW"} {
		p, ok := Recognize(mk(ranks))
		require.True(t, ok, ranks)

		again, ok := Recognize(p.Cards)
		require.True(t, ok, ranks)
		assert.Equal(t, p.Kind, again.Kind, ranks)
		assert.Equal(t, p.MainRank, again.MainRank, ranks)
	}
}

func TestRecognizeSortsCardsDescending(t *testing.T) {
	t.Parallel()

	p, ok := Recognize(mk("34567"))
	require.True(t, ok)
	for i := 1; i < len(p.Cards); i++ {
		assert.GreaterOrEqual(t, p.Cards[i-1].Rank, p.Cards[i].Rank)
	}
}

func TestStrengthOrdering(t *testing.T) {
	t.Parallel()

	rocket, _ := Recognize(mk("wW"))
	bigBomb, _ := Recognize(mk("33333"))
	smallBomb, _ := Recognize(mk("AAAA"))
	straight, _ := Recognize(mk("TJQKA"))
	single, _ := Recognize(mk("2"))

	// 火箭 > 大炸弹(张数优先) > 小炸弹 > 普通牌型
	assert.Greater(t, rocket.Strength, bigBomb.Strength)
	assert.Greater(t, bigBomb.Strength, smallBomb.Strength)
	assert.Greater(t, smallBomb.Strength, straight.Strength)
	assert.Greater(t, smallBomb.Strength, single.Strength)
}
