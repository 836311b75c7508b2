package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/guandan/internal/ai"
	"github.com/palemoky/guandan/internal/game/pattern"
	"github.com/palemoky/guandan/internal/game/session"
	"github.com/palemoky/guandan/internal/testutil"
)

func option(t *testing.T, ranks string, beats bool) ai.Option {
	t.Helper()
	p, ok := pattern.Recognize(testutil.MustCards(ranks))
	require.True(t, ok, ranks)
	return ai.Option{Pattern: &p, Beats: beats}
}

func TestWeightsFor(t *testing.T) {
	t.Parallel()

	beginner := ai.WeightsFor(ai.DifficultyBeginner)
	normal := ai.WeightsFor(ai.DifficultyNormal)
	expert := ai.WeightsFor(ai.DifficultyExpert)

	// 新手最重视风险规避，专家最重视记忆
	assert.Greater(t, beginner.Risk, normal.Risk)
	assert.Greater(t, expert.Memory, normal.Memory)
	assert.Greater(t, expert.Teamwork, beginner.Teamwork)

	// 未知难度落回普通档
	assert.Equal(t, normal, ai.WeightsFor(ai.Difficulty("unheard-of")))
}

func TestRandomStrategyScoreRange(t *testing.T) {
	t.Parallel()

	s := ai.NewRandomStrategy()
	view := testutil.NewView().Build()
	mem := ai.NewMemory()
	p, ok := pattern.Recognize(testutil.MustCards("QQ"))
	require.True(t, ok)

	for range 200 {
		score := s.EvaluatePlay(&p, view, mem)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestRandomStrategyDecision(t *testing.T) {
	t.Parallel()

	s := ai.NewRandomStrategy()
	view := testutil.NewView().Build()
	mem := ai.NewMemory()
	options := []ai.Option{
		option(t, "55", true),
		option(t, "99", true),
		{Pass: true},
	}

	for range 50 {
		d := s.SelectBestPlay(options, view, mem)
		assert.Contains(t, []session.Choice{session.ChoicePlay, session.ChoicePass}, d.Choice)
		assert.GreaterOrEqual(t, d.Confidence, 0.0)
		assert.LessOrEqual(t, d.Confidence, 1.0)
		if d.Choice == session.ChoicePlay {
			assert.NotEmpty(t, d.Cards)
		}
	}
}

func TestGreedyStrategyPlaysBomb(t *testing.T) {
	t.Parallel()

	s := ai.NewGreedyStrategy("p1", ai.DifficultyNormal)
	view := testutil.NewView().Build()
	mem := ai.NewMemory()
	mem.SetHand(testutil.MustCards("8888345"))

	bomb := option(t, "8888", true)
	weak := option(t, "3", false)
	d := s.SelectBestPlay([]ai.Option{weak, bomb, {Pass: true}}, view, mem)

	require.Equal(t, session.ChoicePlay, d.Choice)
	// 能压过桌面的炸弹优先于压不过的单张
	assert.Equal(t, bomb.Pattern.Cards, d.Cards)
}

func TestGreedyStrategyTendency(t *testing.T) {
	t.Parallel()

	s := ai.NewGreedyStrategy("p1", ai.DifficultyNormal)
	assert.InDelta(t, 0.6, s.Tendency(), 1e-9)

	win, lose := true, false
	winRec := playRecord(t, "p1", "KK")
	winRec.WinsRound = &win
	loseRec := playRecord(t, "p1", "55")
	loseRec.WinsRound = &lose

	s.UpdateMemory(winRec, nil, nil)
	assert.InDelta(t, 0.65, s.Tendency(), 1e-9)

	s.UpdateMemory(loseRec, nil, nil)
	assert.InDelta(t, 0.6, s.Tendency(), 1e-9)

	// 连胜/连败不越过边界
	for range 20 {
		s.UpdateMemory(winRec, nil, nil)
	}
	assert.InDelta(t, 0.95, s.Tendency(), 1e-9)
	for range 30 {
		s.UpdateMemory(loseRec, nil, nil)
	}
	assert.InDelta(t, 0.3, s.Tendency(), 1e-9)

	// 没有胜负信息的记录不调节
	s.UpdateMemory(playRecord(t, "p1", "77"), nil, nil)
	assert.InDelta(t, 0.3, s.Tendency(), 1e-9)
}

func TestMemoryStrategyBuildsOpponentProfile(t *testing.T) {
	t.Parallel()

	s := ai.NewMemoryStrategy("p1", ai.DifficultyExpert)
	view := testutil.NewView().Build()
	mem := ai.NewMemory()

	assert.Nil(t, s.OpponentProfile("p2"))

	s.UpdateMemory(playRecord(t, "p2", "7777"), view, mem)
	profile := s.OpponentProfile("p2")
	require.NotNil(t, profile)
	assert.Greater(t, profile.PatternPreferences[pattern.Bomb], 0.0)

	// 自己的出牌不进对手画像
	s.UpdateMemory(playRecord(t, "p1", "KK"), view, mem)
	assert.Nil(t, s.OpponentProfile("p1"))

	s.Reset()
	assert.Nil(t, s.OpponentProfile("p2"))
}

func TestMemoryStrategyTracksOwnPatternStats(t *testing.T) {
	t.Parallel()

	s := ai.NewMemoryStrategy("p1", ai.DifficultyExpert)
	view := testutil.NewView().Build()
	mem := ai.NewMemory()

	win, lose := true, false
	winRec := playRecord(t, "p1", "KK")
	winRec.WinsRound = &win
	loseRec := playRecord(t, "p1", "QQ")
	loseRec.WinsRound = &lose

	s.UpdateMemory(winRec, view, mem)
	s.UpdateMemory(winRec, view, mem)
	s.UpdateMemory(loseRec, view, mem)

	dump := s.Export()
	require.Contains(t, dump.Patterns, pattern.Pair)
	assert.Equal(t, 3, dump.Patterns[pattern.Pair].Plays)
	assert.Equal(t, 2, dump.Patterns[pattern.Pair].Wins)
}

func TestMemoryStrategyExportImport(t *testing.T) {
	t.Parallel()

	src := ai.NewMemoryStrategy("p1", ai.DifficultyNormal)
	view := testutil.NewView().Build()
	mem := ai.NewMemory()
	src.UpdateMemory(playRecord(t, "p2", "34567"), view, mem)

	dump := src.Export()
	assert.Equal(t, "p1", dump.PlayerID)
	assert.False(t, dump.DumpedAt.IsZero())

	dst := ai.NewMemoryStrategy("p1", ai.DifficultyNormal)
	dst.Import(dump)
	profile := dst.OpponentProfile("p2")
	require.NotNil(t, profile)
	assert.Greater(t, profile.PatternPreferences[pattern.Straight], 0.0)
}

func TestMemoryStrategyEvaluateScoreRange(t *testing.T) {
	t.Parallel()

	s := ai.NewMemoryStrategy("p1", ai.DifficultyExpert)
	view := testutil.NewView().Build()
	mem := ai.NewMemory()
	mem.SetHand(testutil.MustCards("34455677TT"))

	for _, ranks := range []string{"3", "44", "TT", "34567", "wW"} {
		p, ok := pattern.Recognize(testutil.MustCards(ranks))
		require.True(t, ok)
		score := s.EvaluatePlay(&p, view, mem)
		assert.GreaterOrEqual(t, score, 0.0, ranks)
		assert.LessOrEqual(t, score, 100.0, ranks)
	}
	pass := s.EvaluatePass(view, mem)
	assert.GreaterOrEqual(t, pass, 0.0)
	assert.LessOrEqual(t, pass, 100.0)
}
