// Package score 实现结算：基础分、炸弹加成、升降级和队伍汇总
// 所有计算都是整数运算，不产生浮点分值。
package score

import "slices"

// 升降级与等级边界：每得/失10分升/降一级，等级范围 2..13（对应打2到打A）
const (
	pointsPerLevel = 10
	MinLevel       = 2
	MaxLevel       = 13

	baseWinScore       = 2
	springBonus        = 2
	counterSpringBonus = 4
)

// bombMultipliers 炸弹加成倍率表，键为本局观察到的最大炸弹张数
var bombMultipliers = map[int]int{
	4: 1,
	5: 2,
	6: 3,
	7: 4,
	8: 5,
}

// RoundResult 单局结果，结算的唯一输入
type RoundResult struct {
	IsSpring        bool `json:"is_spring"`
	IsCounterSpring bool `json:"is_counter_spring"`
	BombCount       int  `json:"bomb_count"` // 本局最大炸弹张数，无炸弹为0
}

// BaseScore 计算基础分：胜方 +2；春天再 +2；反春再 +4（反春优先，两者互斥）
func BaseScore(result RoundResult) int {
	score := baseWinScore
	switch {
	case result.IsCounterSpring:
		score += counterSpringBonus
	case result.IsSpring:
		score += springBonus
	}
	return score
}

// ApplyBombBonus 计算炸弹加成后的总分
// bombCount 为本局最大炸弹张数：小于4张没有加成，超过8张按8张封顶，
// 加成 = 基础分 × 倍率，结果 = 基础分 + 加成
func ApplyBombBonus(bombCount, baseScore int) int {
	if bombCount < 4 {
		return baseScore
	}
	if bombCount > 8 {
		bombCount = 8
	}
	multiplier, ok := bombMultipliers[bombCount]
	if !ok {
		multiplier = 1
	}
	return baseScore + baseScore*multiplier
}

// RoundScore 单局总分
func RoundScore(result RoundResult) int {
	return ApplyBombBonus(result.BombCount, BaseScore(result))
}

// LevelUp 按得分变化升降级：每10分一级，负分降级，结果钳制在 [2, 13]
func LevelUp(scoreDelta, currentLevel int) int {
	level := currentLevel + scoreDelta/pointsPerLevel
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// PlayerScore 玩家累计得分
type PlayerScore struct {
	PlayerID   string `json:"player_id"`
	TeamID     string `json:"team_id"`
	TotalScore int    `json:"total_score"`
}

// TeamScoreResult 队伍结算结果
type TeamScoreResult struct {
	WinningTeam string         `json:"winning_team"`
	TeamTotals  map[string]int `json:"team_totals"`
	LevelChange int            `json:"level_change"`
}

// TeamScores 按队伍汇总得分并判定胜方
// 胜方为总分更高的队伍；升降级由胜方队伍的平均分按每10分一级换算
func TeamScores(scores []PlayerScore) TeamScoreResult {
	totals := make(map[string]int)
	sizes := make(map[string]int)
	for _, s := range scores {
		totals[s.TeamID] += s.TotalScore
		sizes[s.TeamID]++
	}

	teams := make([]string, 0, len(totals))
	for team := range totals {
		teams = append(teams, team)
	}
	slices.Sort(teams)

	result := TeamScoreResult{TeamTotals: totals}
	best := 0
	for _, team := range teams {
		if result.WinningTeam == "" || totals[team] > best {
			result.WinningTeam = team
			best = totals[team]
		}
	}
	if result.WinningTeam != "" && sizes[result.WinningTeam] > 0 {
		average := totals[result.WinningTeam] / sizes[result.WinningTeam]
		result.LevelChange = average / pointsPerLevel
	}
	return result
}
