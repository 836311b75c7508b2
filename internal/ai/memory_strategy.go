package ai

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/palemoky/guandan/internal/game/pattern"
	"github.com/palemoky/guandan/internal/game/session"
)

const (
	memoryTTL     = 24 * time.Hour // 对手画像和牌型战绩的存活时间
	memoryDBSize  = 64             // 对手画像库容量
	patternDBSize = 16             // 牌型战绩库容量
)

// MemoryStrategy 记忆策略
// 在共享评分之上叠加三类历史信号：各牌型的历史成功率、
// 对手的牌型偏好、以及队伍配合倾向；两个记忆库都带 24 小时 TTL 清扫
type MemoryStrategy struct {
	playerID string
	weights  Weights

	players  *expirable.LRU[string, *PlayerMemoryEntry]
	patterns *expirable.LRU[pattern.Kind, *PatternStat]
}

// NewMemoryStrategy 创建记忆策略
func NewMemoryStrategy(playerID string, difficulty Difficulty) *MemoryStrategy {
	return &MemoryStrategy{
		playerID: playerID,
		weights:  WeightsFor(difficulty),
		players:  expirable.NewLRU[string, *PlayerMemoryEntry](memoryDBSize, nil, memoryTTL),
		patterns: expirable.NewLRU[pattern.Kind, *PatternStat](patternDBSize, nil, memoryTTL),
	}
}

func (s *MemoryStrategy) Name() string { return "memory" }

func (s *MemoryStrategy) SelectBestPlay(options []Option, view *session.View, mem *Memory) Decision {
	best := Decision{Choice: session.ChoicePass, Confidence: 0.3, Reason: "记忆策略：过牌"}
	bestScore := s.EvaluatePass(view, mem)

	for _, opt := range options {
		if opt.Pass {
			continue
		}
		score := s.EvaluatePlay(opt.Pattern, view, mem)
		if score > bestScore {
			bestScore = score
			best = Decision{
				Choice:     session.ChoicePlay,
				Cards:      opt.Pattern.Cards,
				Confidence: confidenceFromScore(score),
				Reason:     fmt.Sprintf("记忆策略：%s（历史成功率 %.2f）", opt.Pattern.Kind, s.successRate(opt.Pattern.Kind)),
			}
		}
	}
	return best
}

func (s *MemoryStrategy) EvaluatePlay(p *pattern.Pattern, view *session.View, mem *Memory) float64 {
	ctx := scoreContext{
		hand:     handOf(mem),
		playerID: s.playerID,
		view:     view,
		mem:      mem,
		memInfl:  func(p *pattern.Pattern) float64 { return s.memoryInfluence(p, view) },
	}
	return baseScore(p, ctx, s.weights)
}

func (s *MemoryStrategy) EvaluatePass(view *session.View, mem *Memory) float64 {
	// 对手偏好压制类牌型时，过牌保留实力更划算
	pass := 40.0
	if view != nil {
		for _, seat := range view.Players {
			if seat.ID == s.playerID {
				continue
			}
			if entry, ok := s.players.Get(seat.ID); ok {
				pass += entry.PlayHabits.PlayBigCardsProb * 5 * entry.Confidence
			}
		}
	}
	return clampScore(pass)
}

// memoryInfluence 记忆分量：牌型历史成功率占大头，
// 对手对该牌型的偏好（他们更可能压得住）作扣减
func (s *MemoryStrategy) memoryInfluence(p *pattern.Pattern, view *session.View) float64 {
	if p == nil {
		return 50
	}
	score := s.successRate(p.Kind) * 70

	if view != nil {
		for _, seat := range view.Players {
			if seat.ID == s.playerID {
				continue
			}
			entry, ok := s.players.Get(seat.ID)
			if !ok {
				continue
			}
			if pref, ok := entry.PatternPreferences[p.Kind]; ok {
				score -= pref * 15 * entry.Confidence
			}
		}
	}
	return clampScore(score + 15)
}

func (s *MemoryStrategy) successRate(kind pattern.Kind) float64 {
	if stat, ok := s.patterns.Get(kind); ok {
		return stat.SuccessRate()
	}
	return 0.5
}

// UpdateMemory 消费一条出牌记录，更新对手画像和牌型战绩
// 对手画像在首次观察到该对手时惰性创建
func (s *MemoryStrategy) UpdateMemory(rec session.PlayRecord, view *session.View, mem *Memory) {
	if rec.PlayerID != s.playerID {
		entry, ok := s.players.Get(rec.PlayerID)
		if !ok {
			entry = NewPlayerMemoryEntry()
		}
		entry.Observe(rec)
		s.players.Add(rec.PlayerID, entry)
	}

	if rec.PlayerID == s.playerID && rec.Pattern != nil {
		stat, ok := s.patterns.Get(rec.Pattern.Kind)
		if !ok {
			stat = &PatternStat{Kind: rec.Pattern.Kind}
		}
		stat.Plays++
		if rec.WinsRound != nil && *rec.WinsRound {
			stat.Wins++
		}
		s.patterns.Add(rec.Pattern.Kind, stat)
	}
}

// OpponentProfile 查询某个对手的画像，没有观察记录时返回 nil
func (s *MemoryStrategy) OpponentProfile(playerID string) *PlayerMemoryEntry {
	if entry, ok := s.players.Get(playerID); ok {
		return entry
	}
	return nil
}

// Reset 显式清空两个记忆库
func (s *MemoryStrategy) Reset() {
	s.players.Purge()
	s.patterns.Purge()
}

// MemoryDump 可序列化的记忆导出，用于会话恢复
type MemoryDump struct {
	PlayerID string                        `json:"player_id"`
	Players  map[string]*PlayerMemoryEntry `json:"players"`
	Patterns map[pattern.Kind]*PatternStat `json:"patterns"`
	DumpedAt time.Time                     `json:"dumped_at"`
}

// Export 导出记忆库快照
func (s *MemoryStrategy) Export() MemoryDump {
	dump := MemoryDump{
		PlayerID: s.playerID,
		Players:  make(map[string]*PlayerMemoryEntry),
		Patterns: make(map[pattern.Kind]*PatternStat),
		DumpedAt: time.Now(),
	}
	for _, id := range s.players.Keys() {
		if entry, ok := s.players.Get(id); ok {
			dump.Players[id] = entry
		}
	}
	for _, kind := range s.patterns.Keys() {
		if stat, ok := s.patterns.Get(kind); ok {
			dump.Patterns[kind] = stat
		}
	}
	return dump
}

// Import 从导出的快照恢复记忆库
func (s *MemoryStrategy) Import(dump MemoryDump) {
	for id, entry := range dump.Players {
		s.players.Add(id, entry)
	}
	for kind, stat := range dump.Patterns {
		s.patterns.Add(kind, stat)
	}
}
