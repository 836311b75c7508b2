package ai

import (
	"time"

	"github.com/palemoky/guandan/internal/game/card"
	"github.com/palemoky/guandan/internal/game/pattern"
	"github.com/palemoky/guandan/internal/game/session"
)

const (
	snapshotCap = 50 // 状态快照环形缓冲容量
	recordCap   = 20 // 决策上下文保留的最近出牌记录数
)

// Snapshot 决策前记录的对局快照
type Snapshot struct {
	Phase           session.Phase `json:"phase"`
	RoundNumber     int           `json:"round_number"`
	CurrentPlayerID string        `json:"current_player_id"`
	HandSize        int           `json:"hand_size"`
	TableKind       pattern.Kind  `json:"table_kind"`
	Timestamp       time.Time     `json:"timestamp"`
}

// Memory 单个 AI 玩家的私有记忆，不跨玩家共享
// 快照用固定容量的环形缓冲，出牌记录只保留最近 recordCap 条，
// 这些上限是正确性约束，防止长对局下的无界增长
type Memory struct {
	snapshots [snapshotCap]Snapshot
	head      int
	size      int

	records []session.PlayRecord
	hand    []card.Card // 决策时的手牌视图，由 Player 在每次决策前刷新
}

// SetHand 刷新决策用的手牌视图
func (m *Memory) SetHand(hand []card.Card) {
	m.hand = hand
}

// CurrentHand 返回最近一次决策时的手牌
func (m *Memory) CurrentHand() []card.Card {
	return m.hand
}

// NewMemory 创建空记忆
func NewMemory() *Memory {
	return &Memory{}
}

// AddSnapshot 追加一条快照，写满后覆盖最旧的
func (m *Memory) AddSnapshot(s Snapshot) {
	m.snapshots[m.head] = s
	m.head = (m.head + 1) % snapshotCap
	if m.size < snapshotCap {
		m.size++
	}
}

// Snapshots 按时间顺序返回当前保留的快照
func (m *Memory) Snapshots() []Snapshot {
	result := make([]Snapshot, 0, m.size)
	start := (m.head - m.size + snapshotCap) % snapshotCap
	for i := range m.size {
		result = append(result, m.snapshots[(start+i)%snapshotCap])
	}
	return result
}

// AddRecord 追加一条出牌记录，超出上限时丢弃最旧的
func (m *Memory) AddRecord(rec session.PlayRecord) {
	m.records = append(m.records, rec)
	if len(m.records) > recordCap {
		m.records = m.records[len(m.records)-recordCap:]
	}
}

// Records 返回最近的出牌记录
func (m *Memory) Records() []session.PlayRecord {
	return m.records
}

// PlayHabits 对手的出牌习惯画像
type PlayHabits struct {
	PlayBigCardsProb float64 `json:"play_big_cards_prob"`
	KeepBombsProb    float64 `json:"keep_bombs_prob"`
	TakeRisksProb    float64 `json:"take_risks_prob"`
	TeamworkTendency float64 `json:"teamwork_tendency"`
}

// PlayerMemoryEntry 针对单个对手学习到的状态
// 在首次观察到该对手出牌时惰性创建，此后每条相关记录都会更新；
// 只被 24 小时 TTL 清扫或显式重置删除
type PlayerMemoryEntry struct {
	PatternPreferences map[pattern.Kind]float64 `json:"pattern_preferences"`
	PlayHabits         PlayHabits               `json:"play_habits"`
	Confidence         float64                  `json:"confidence"`
	LastUpdated        time.Time                `json:"last_updated"`
}

// NewPlayerMemoryEntry 初始画像
func NewPlayerMemoryEntry() *PlayerMemoryEntry {
	return &PlayerMemoryEntry{
		PatternPreferences: make(map[pattern.Kind]float64),
		PlayHabits: PlayHabits{
			PlayBigCardsProb: 0.5,
			KeepBombsProb:    0.5,
			TakeRisksProb:    0.5,
			TeamworkTendency: 0.5,
		},
		Confidence: 0.1,
	}
}

// Observe 根据一条出牌记录更新画像
func (e *PlayerMemoryEntry) Observe(rec session.PlayRecord) {
	e.LastUpdated = time.Now()
	if e.Confidence < 1.0 {
		e.Confidence += 0.05
		if e.Confidence > 1.0 {
			e.Confidence = 1.0
		}
	}
	if rec.Pattern == nil {
		// 过牌：冒险倾向下调
		e.PlayHabits.TakeRisksProb = decay(e.PlayHabits.TakeRisksProb, 0.05)
		return
	}

	// 指数滑动更新该牌型的偏好
	pref := e.PatternPreferences[rec.Pattern.Kind]
	e.PatternPreferences[rec.Pattern.Kind] = pref*0.8 + 0.2

	if rec.Pattern.MainRank.Value() >= 13 { // K 及以上视为大牌
		e.PlayHabits.PlayBigCardsProb = grow(e.PlayHabits.PlayBigCardsProb, 0.05)
	}
	if rec.Pattern.Kind.IsBombLike() {
		e.PlayHabits.KeepBombsProb = decay(e.PlayHabits.KeepBombsProb, 0.1)
	}
}

// PatternStat 某种牌型的历史战绩
type PatternStat struct {
	Kind  pattern.Kind `json:"kind"`
	Plays int          `json:"plays"`
	Wins  int          `json:"wins"`
}

// SuccessRate 历史成功率，没有样本时返回 0.5
func (s PatternStat) SuccessRate() float64 {
	if s.Plays == 0 {
		return 0.5
	}
	return float64(s.Wins) / float64(s.Plays)
}

func grow(v, step float64) float64 {
	v += step
	if v > 1.0 {
		return 1.0
	}
	return v
}

func decay(v, step float64) float64 {
	v -= step
	if v < 0.0 {
		return 0.0
	}
	return v
}
