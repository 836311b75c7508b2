package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   RoundResult
		expected int
	}{
		{"Plain win", RoundResult{}, 2},
		{"Spring", RoundResult{IsSpring: true}, 4},
		{"Counter-spring", RoundResult{IsCounterSpring: true}, 6},
		{"Counter-spring takes precedence", RoundResult{IsSpring: true, IsCounterSpring: true}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, BaseScore(tt.result))
		})
	}
}

func TestApplyBombBonus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		bombCount int
		base      int
		expected  int
	}{
		{"No bomb", 0, 2, 2},
		{"Below table domain", 3, 2, 2},
		{"Four card bomb", 4, 2, 4},
		{"Five card bomb", 5, 2, 6},
		{"Six card bomb", 6, 2, 8},
		{"Seven card bomb", 7, 2, 10},
		{"Eight card bomb", 8, 2, 12},
		{"Above domain clamps to eight", 9, 2, 12},
		{"Spring base with bomb", 5, 4, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ApplyBombBonus(tt.bombCount, tt.base))
		})
	}
}

func TestRoundScore(t *testing.T) {
	t.Parallel()

	// 反春 + 8张炸弹：(2+4) × (1+5)
	assert.Equal(t, 36, RoundScore(RoundResult{IsCounterSpring: true, BombCount: 8}))
	assert.Equal(t, 2, RoundScore(RoundResult{}))
}

func TestLevelUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		delta    int
		current  int
		expected int
	}{
		{"No change below ten points", 8, 5, 5},
		{"One level per ten points", 10, 5, 6},
		{"Two levels", 25, 5, 7},
		{"Negative delta drops level", -10, 5, 4},
		{"Clamped at max", 40, 12, 13},
		{"Clamped at min", -30, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, LevelUp(tt.delta, tt.current))
		})
	}
}

func TestTeamScores(t *testing.T) {
	t.Parallel()

	result := TeamScores([]PlayerScore{
		{PlayerID: "p1", TeamID: "A", TotalScore: 12},
		{PlayerID: "p2", TeamID: "B", TotalScore: 4},
		{PlayerID: "p3", TeamID: "A", TotalScore: 10},
		{PlayerID: "p4", TeamID: "B", TotalScore: 6},
	})

	assert.Equal(t, "A", result.WinningTeam)
	assert.Equal(t, 22, result.TeamTotals["A"])
	assert.Equal(t, 10, result.TeamTotals["B"])
	// 胜方平均 11 分，升 1 级
	assert.Equal(t, 1, result.LevelChange)
}

func TestTeamScoresTieIsDeterministic(t *testing.T) {
	t.Parallel()

	scores := []PlayerScore{
		{PlayerID: "p1", TeamID: "A", TotalScore: 10},
		{PlayerID: "p2", TeamID: "B", TotalScore: 10},
	}
	for range 10 {
		assert.Equal(t, "A", TeamScores(scores).WinningTeam)
	}
}

func TestTeamScoresEmpty(t *testing.T) {
	t.Parallel()

	result := TeamScores(nil)
	assert.Empty(t, result.WinningTeam)
	assert.Zero(t, result.LevelChange)
}
