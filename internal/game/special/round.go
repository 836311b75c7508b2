package special

import (
	"github.com/palemoky/guandan/internal/game/session"
)

// IsSpring 春天：整局中败方队伍没有打出过任何一手牌（全部过牌）
func IsSpring(records []session.PlayRecord, losingTeamIDs []string) bool {
	if len(records) == 0 || len(losingTeamIDs) == 0 {
		return false
	}
	losers := toSet(losingTeamIDs)
	for _, rec := range records {
		if _, ok := losers[rec.PlayerID]; ok && rec.IsPlay() {
			return false
		}
	}
	return true
}

// IsCounterSpring 反春：头游打出最后一手牌之后，对方队伍再也没有出过牌
func IsCounterSpring(records []session.PlayRecord, firstOutPlayerID string, opponentTeamIDs []string) bool {
	if len(records) == 0 || firstOutPlayerID == "" {
		return false
	}

	lastPlayIdx := -1
	for i, rec := range records {
		if rec.PlayerID == firstOutPlayerID && rec.IsPlay() {
			lastPlayIdx = i
		}
	}
	if lastPlayIdx < 0 {
		return false
	}

	opponents := toSet(opponentTeamIDs)
	for _, rec := range records[lastPlayIdx+1:] {
		if _, ok := opponents[rec.PlayerID]; ok && rec.IsPlay() {
			return false
		}
	}
	return true
}

// HasBombBonus 本局是否出现过炸弹或火箭
func HasBombBonus(records []session.PlayRecord) bool {
	for _, rec := range records {
		if rec.Pattern != nil && rec.Pattern.Kind.IsBombLike() {
			return true
		}
	}
	return false
}

// MaxBombSize 本局观察到的最大炸弹张数，没有炸弹返回 0
func MaxBombSize(records []session.PlayRecord) int {
	max := 0
	for _, rec := range records {
		if rec.Pattern == nil || !rec.Pattern.Kind.IsBombLike() {
			continue
		}
		if size := rec.Pattern.Size(); size > max {
			max = size
		}
	}
	return max
}

// RocketMax 火箭恒为最大牌型，仅作信息性断言，不参与门控
func RocketMax() bool {
	return true
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
