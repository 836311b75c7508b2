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

func playRecord(t *testing.T, playerID, ranks string) session.PlayRecord {
	t.Helper()
	p, ok := pattern.Recognize(testutil.MustCards(ranks))
	require.True(t, ok, ranks)
	return session.NewPlayRecord(playerID, &p, 1)
}

func passRecord(playerID string) session.PlayRecord {
	return session.NewPlayRecord(playerID, nil, 1)
}

func TestMemorySnapshotRingBuffer(t *testing.T) {
	t.Parallel()

	mem := ai.NewMemory()
	for i := range 60 {
		mem.AddSnapshot(ai.Snapshot{RoundNumber: i})
	}

	snapshots := mem.Snapshots()
	// 只保留最近 50 条，且按时间顺序
	require.Len(t, snapshots, 50)
	assert.Equal(t, 10, snapshots[0].RoundNumber)
	assert.Equal(t, 59, snapshots[len(snapshots)-1].RoundNumber)
}

func TestMemoryRecordsCapped(t *testing.T) {
	t.Parallel()

	mem := ai.NewMemory()
	for range 30 {
		mem.AddRecord(passRecord("p2"))
	}
	assert.Len(t, mem.Records(), 20)
}

func TestMemoryHandView(t *testing.T) {
	t.Parallel()

	mem := ai.NewMemory()
	assert.Empty(t, mem.CurrentHand())

	hand := testutil.MustCards("345")
	mem.SetHand(hand)
	assert.Equal(t, hand, mem.CurrentHand())
}

func TestPlayerMemoryEntryObserve(t *testing.T) {
	t.Parallel()

	entry := ai.NewPlayerMemoryEntry()
	assert.InDelta(t, 0.1, entry.Confidence, 1e-9)

	entry.Observe(playRecord(t, "p2", "KK"))
	assert.InDelta(t, 0.2, entry.PatternPreferences[pattern.Pair], 1e-9)
	assert.InDelta(t, 0.15, entry.Confidence, 1e-9)
	// K 及以上算大牌
	assert.Greater(t, entry.PlayHabits.PlayBigCardsProb, 0.5)
	assert.False(t, entry.LastUpdated.IsZero())

	// 再次观察同牌型，偏好按指数滑动继续上升
	entry.Observe(playRecord(t, "p2", "QQ"))
	assert.InDelta(t, 0.36, entry.PatternPreferences[pattern.Pair], 1e-9)
}

func TestPlayerMemoryEntryObserveBombAndPass(t *testing.T) {
	t.Parallel()

	entry := ai.NewPlayerMemoryEntry()

	entry.Observe(playRecord(t, "p2", "8888"))
	// 打出过炸弹说明不藏炸
	assert.Less(t, entry.PlayHabits.KeepBombsProb, 0.5)

	before := entry.PlayHabits.TakeRisksProb
	entry.Observe(passRecord("p2"))
	assert.Less(t, entry.PlayHabits.TakeRisksProb, before)
}

func TestPlayerMemoryEntryConfidenceCapped(t *testing.T) {
	t.Parallel()

	entry := ai.NewPlayerMemoryEntry()
	for range 40 {
		entry.Observe(passRecord("p2"))
	}
	assert.LessOrEqual(t, entry.Confidence, 1.0)
	assert.GreaterOrEqual(t, entry.PlayHabits.TakeRisksProb, 0.0)
}

func TestPatternStatSuccessRate(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.5, ai.PatternStat{}.SuccessRate(), 1e-9)
	assert.InDelta(t, 0.75, ai.PatternStat{Plays: 4, Wins: 3}.SuccessRate(), 1e-9)
	assert.InDelta(t, 0.0, ai.PatternStat{Plays: 5}.SuccessRate(), 1e-9)
}
