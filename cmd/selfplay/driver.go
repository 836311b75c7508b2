package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/guandan/internal/ai"
	"github.com/palemoky/guandan/internal/config"
	"github.com/palemoky/guandan/internal/game/card"
	"github.com/palemoky/guandan/internal/game/pattern"
	"github.com/palemoky/guandan/internal/game/rule"
	"github.com/palemoky/guandan/internal/game/score"
	"github.com/palemoky/guandan/internal/game/session"
	"github.com/palemoky/guandan/internal/game/special"
	"github.com/palemoky/guandan/internal/game/state"
	"github.com/palemoky/guandan/internal/storage"
)

// 死循环保护：自对弈中单局和单回合的硬上限
const (
	maxRoundsPerGame = 500
	maxTurnsPerRound = 64
)

// seat 一个 AI 座位
type seat struct {
	player *ai.Player
	teamID string
}

// Driver 自对弈驱动器
// 持有会话视图并独占写入，顺序驱动四个 AI 座位走完整场对局
type Driver struct {
	cfg       *config.Config
	sessionID string
	seats     []*seat
	view      *session.View
	machine   *state.Machine
	store     *storage.RedisStore // 可为 nil，表示不持久化

	teamTotals map[string]int
	rounds     int

	// 本副牌的头游追踪：firstOutID 为最先出完手牌的玩家，
	// dealStart 是发牌时 Plays 的长度，春天/反春按整副牌的记录判定且只结算一次
	firstOutID   string
	dealStart    int
	springScored bool
}

// NewDriver 创建驱动器并落座四个 AI 玩家
// 两队对坐：A 队记忆+随机，B 队贪心+记忆，难度来自配置
func NewDriver(cfg *config.Config, store *storage.RedisStore) *Driver {
	difficulty := ai.Difficulty(cfg.Game.Difficulty)
	seats := []*seat{
		{player: ai.NewPlayer("p1", ai.NewMemoryStrategy("p1", difficulty)), teamID: "A"},
		{player: ai.NewPlayer("p2", ai.NewGreedyStrategy("p2", difficulty)), teamID: "B"},
		{player: ai.NewPlayer("p3", ai.NewRandomStrategy()), teamID: "A"},
		{player: ai.NewPlayer("p4", ai.NewMemoryStrategy("p4", difficulty)), teamID: "B"},
	}

	players := make([]session.PlayerSeat, len(seats))
	for i, s := range seats {
		players[i] = session.PlayerSeat{ID: s.player.ID, TeamID: s.teamID}
	}

	d := &Driver{
		cfg:       cfg,
		sessionID: uuid.New().String(),
		seats:     seats,
		view: &session.View{
			Phase:   session.PhasePreparing,
			Players: players,
			TeamLevels: map[string]int{
				"A": cfg.Game.StartingLevel,
				"B": cfg.Game.StartingLevel,
			},
		},
		store:      store,
		teamTotals: make(map[string]int),
	}
	d.machine = state.NewMachine(state.Hooks{
		OnDealing:  d.deal,
		OnRoundEnd: d.scoreRound,
		OnGameEnd:  d.logGameEnd,
	})
	return d
}

// Run 打完一整场（任意一队升到顶级），返回最终结算
func (d *Driver) Run(ctx context.Context) (*storage.GameResult, error) {
	if err := d.machine.TransitionTo(d.view, session.PhaseDealing); err != nil {
		return nil, fmt.Errorf("进入发牌阶段失败: %w", err)
	}
	if err := d.machine.TransitionTo(d.view, session.PhaseBidding); err != nil {
		return nil, err
	}
	if err := d.machine.TransitionTo(d.view, session.PhasePlaying); err != nil {
		return nil, err
	}

	for d.view.Phase == session.PhasePlaying && d.rounds < maxRoundsPerGame {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.playRound()

		if err := d.machine.TransitionTo(d.view, session.PhaseRoundEnd); err != nil {
			return nil, fmt.Errorf("第 %d 局结算迁移失败: %w", d.roundNumber(), err)
		}

		if err := d.machine.TransitionTo(d.view, session.PhaseGameEnd); err == nil {
			break
		}
		if err := d.machine.TransitionTo(d.view, session.PhasePlaying); err != nil {
			return nil, err
		}
		d.nextRound()
	}

	result := d.finalResult()
	if d.store != nil {
		d.persist(ctx, result)
	}
	return result, nil
}

// playRound 驱动一个回合：领出者先出，随后依次行动，直到其余三家都过牌
func (d *Driver) playRound() {
	for turns := 0; turns < maxTurnsPerRound; turns++ {
		if rule.IsRoundEnd(d.view.Players, rule.PassedSinceLastPlay(d.view)) {
			return
		}

		s := d.currentSeat()
		if s == nil {
			return
		}
		if len(s.player.Hand) == 0 {
			d.record(s.player.ID, nil)
			d.advanceTurn()
			continue
		}

		decision := s.player.MakeDecision(d.view)
		table := rule.TablePattern(d.view)

		if decision.Choice == session.ChoicePass && table == nil {
			// 领出者不允许过牌，强制打出最小的合法单张
			decision = d.forcedLead(s)
		}

		if decision.Choice == session.ChoicePlay {
			result := rule.ValidatePlay(s.player.ID, decision.Cards, table, d.view)
			if !result.Valid {
				log.Warn().Str("player", s.player.ID).Str("reason", result.Message).
					Msg("AI 给出非法出牌，降级为过牌")
				d.record(s.player.ID, nil)
			} else {
				d.record(s.player.ID, result.Pattern)
				s.player.RemoveFromHand(result.Pattern.Cards)
				if len(s.player.Hand) == 0 && d.firstOutID == "" {
					d.firstOutID = s.player.ID
				}
				log.Debug().Str("player", s.player.ID).
					Stringer("kind", result.Pattern.Kind).
					Int("hand_left", len(s.player.Hand)).
					Float64("confidence", decision.Confidence).
					Msg(decision.Reason)
			}
		} else {
			d.record(s.player.ID, nil)
		}

		d.advanceTurn()
	}
	log.Warn().Int("round", d.roundNumber()).Msg("回合轮次达到上限，强制结束")
}

// forcedLead 领出兜底：从手牌挑最小的单张
func (d *Driver) forcedLead(s *seat) ai.Decision {
	hand := card.Deck(s.player.Hand)
	hand.Sort()
	lowest := hand[len(hand)-1]
	if p, ok := pattern.Recognize([]card.Card{lowest}); ok {
		return ai.Decision{
			Choice:     session.ChoicePlay,
			Cards:      p.Cards,
			Confidence: 0.5,
			Reason:     "领出兜底：最小单张",
		}
	}
	return ai.Decision{Choice: session.ChoicePass, Confidence: 0.2, Reason: "领出兜底失败"}
}

// record 追加一条出牌记录
func (d *Driver) record(playerID string, p *pattern.Pattern) {
	d.view.Plays = append(d.view.Plays, session.NewPlayRecord(playerID, p, d.roundNumber()))
}

// scoreRound 结算一个回合：判定胜方、春天/反春、炸弹加成，并给胜方升级
// 作为 RoundEnd 迁移动作挂载，保证计分恰好发生一次
func (d *Driver) scoreRound(view *session.View) {
	d.rounds++
	records := view.RoundPlays()

	winnerID := lastPlayerToPlay(records)
	if winnerID == "" {
		return
	}
	winnerTeam := d.teamOf(winnerID)

	result := score.RoundResult{
		BombCount: special.MaxBombSize(records),
	}
	// 春天/反春以头游为基准、按整副牌的记录判定，只在头游产生后结算一次
	if d.firstOutID != "" && !d.springScored {
		dealRecords := view.Plays[d.dealStart:]
		opponentIDs := d.opponentsOf(d.teamOf(d.firstOutID))
		result.IsSpring = special.IsSpring(dealRecords, opponentIDs)
		result.IsCounterSpring = special.IsCounterSpring(dealRecords, d.firstOutID, opponentIDs)
		d.springScored = true
	}
	points := score.RoundScore(result)
	d.teamTotals[winnerTeam] += points
	view.TeamLevels[winnerTeam] = score.LevelUp(points, view.TeamLevels[winnerTeam])

	d.backfillWins(winnerTeam)

	log.Info().Int("round", d.roundNumber()).
		Str("winner_team", winnerTeam).
		Int("points", points).
		Bool("spring", result.IsSpring).
		Bool("counter_spring", result.IsCounterSpring).
		Int("bomb_count", result.BombCount).
		Int("level", view.TeamLevels[winnerTeam]).
		Msg("回合结算")
}

// backfillWins 回填本回合记录的胜负，并让各策略消费带胜负的记录
func (d *Driver) backfillWins(winnerTeam string) {
	for i := range d.view.Plays {
		rec := &d.view.Plays[i]
		if rec.RoundNumber != d.roundNumber() || !rec.IsPlay() {
			continue
		}
		wins := d.teamOf(rec.PlayerID) == winnerTeam
		rec.WinsRound = &wins

		if s := d.seatByID(rec.PlayerID); s != nil {
			s.player.Strategy().UpdateMemory(*rec, d.view, s.player.Memory())
		}
	}
}

// nextRound 开启下一回合：上回合胜者领出，手牌耗尽时重新发牌
func (d *Driver) nextRound() {
	winnerID := lastPlayerToPlay(d.view.RoundPlays())
	d.view.CurrentRound.RoundNumber++

	holders := 0
	for _, s := range d.seats {
		if len(s.player.Hand) > 0 {
			holders++
		}
	}
	if holders < 2 {
		d.deal(d.view)
		return
	}

	if winnerID != "" {
		if s := d.seatByID(winnerID); s != nil && len(s.player.Hand) > 0 {
			d.view.CurrentRound.CurrentPlayerID = winnerID
			d.view.CurrentRound.NextPlayerID = d.playerAfter(winnerID)
			return
		}
	}
	d.advanceTurn()
}

// deal 洗两副牌并平分给四个座位，同时刷新回合信息和级牌
func (d *Driver) deal(view *session.View) {
	deck := card.NewDecks(d.cfg.Game.Decks)
	deck.Shuffle()
	hands := deck.Deal(len(d.seats))
	for i, s := range d.seats {
		hand := hands[i]
		hand.Sort()
		s.player.SetHand(hand)
	}

	roundNumber := 1
	if view.CurrentRound != nil {
		roundNumber = view.CurrentRound.RoundNumber
	}
	d.firstOutID = ""
	d.dealStart = len(view.Plays)
	d.springScored = false

	dealer := d.seats[0].player.ID
	view.CurrentRound = &session.RoundInfo{
		RoundNumber:     roundNumber,
		DealerID:        dealer,
		CurrentPlayerID: dealer,
		NextPlayerID:    d.playerAfter(dealer),
		Direction:       1,
		TributeRank:     tributeRankFor(view.TeamLevels[d.teamOf(dealer)]),
	}

	log.Info().Int("decks", d.cfg.Game.Decks).
		Stringer("tribute", view.CurrentRound.TributeRank).
		Msg("发牌完成")
}

func (d *Driver) logGameEnd(view *session.View) {
	log.Info().Any("team_levels", view.TeamLevels).Int("rounds", d.rounds).Msg("整场结束")
}

// finalResult 汇总整场结果
func (d *Driver) finalResult() *storage.GameResult {
	scores := make([]score.PlayerScore, 0, len(d.seats))
	for _, s := range d.seats {
		scores = append(scores, score.PlayerScore{
			PlayerID:   s.player.ID,
			TeamID:     s.teamID,
			TotalScore: d.teamTotals[s.teamID] / 2,
		})
	}
	team := score.TeamScores(scores)

	return &storage.GameResult{
		SessionID:   d.sessionID,
		WinnerTeam:  team.WinningTeam,
		TeamLevels:  d.view.TeamLevels,
		RoundsTotal: d.rounds,
	}
}

// persist 把会话快照、对局结果和 AI 记忆写入 Redis
func (d *Driver) persist(ctx context.Context, result *storage.GameResult) {
	snap := &storage.SessionSnapshot{SessionID: d.sessionID, View: d.view}
	if err := d.store.SaveSession(ctx, snap); err != nil {
		log.Error().Err(err).Msg("保存会话快照失败")
	}
	if err := d.store.SaveResult(ctx, result); err != nil {
		log.Error().Err(err).Msg("保存对局结果失败")
	}
	for _, s := range d.seats {
		ms, ok := s.player.Strategy().(*ai.MemoryStrategy)
		if !ok {
			continue
		}
		if err := d.store.SaveMemory(ctx, ms.Export()); err != nil {
			log.Error().Err(err).Str("player", s.player.ID).Msg("保存 AI 记忆失败")
		}
	}
}

// --- 座位与回合辅助 ---

func (d *Driver) roundNumber() int {
	if d.view.CurrentRound == nil {
		return 0
	}
	return d.view.CurrentRound.RoundNumber
}

func (d *Driver) currentSeat() *seat {
	if d.view.CurrentRound == nil {
		return nil
	}
	return d.seatByID(d.view.CurrentRound.CurrentPlayerID)
}

func (d *Driver) seatByID(id string) *seat {
	for _, s := range d.seats {
		if s.player.ID == id {
			return s
		}
	}
	return nil
}

func (d *Driver) teamOf(playerID string) string {
	if s := d.seatByID(playerID); s != nil {
		return s.teamID
	}
	return ""
}

// opponentsOf 返回指定队伍的对手玩家 ID 列表
func (d *Driver) opponentsOf(teamID string) []string {
	var ids []string
	for _, s := range d.seats {
		if s.teamID != teamID {
			ids = append(ids, s.player.ID)
		}
	}
	return ids
}

// playerAfter 座位顺序中的下一位（考虑方向）
func (d *Driver) playerAfter(id string) string {
	direction := 1
	if d.view.CurrentRound != nil && d.view.CurrentRound.Direction != 0 {
		direction = d.view.CurrentRound.Direction
	}
	for i, s := range d.seats {
		if s.player.ID == id {
			next := (i + direction + len(d.seats)) % len(d.seats)
			return d.seats[next].player.ID
		}
	}
	return ""
}

// advanceTurn 行动权移交给下一位
func (d *Driver) advanceTurn() {
	if d.view.CurrentRound == nil {
		return
	}
	current := d.view.CurrentRound.CurrentPlayerID
	next := d.playerAfter(current)
	d.view.CurrentRound.CurrentPlayerID = next
	d.view.CurrentRound.NextPlayerID = d.playerAfter(next)
}

// lastPlayerToPlay 回合中最后一次有效出牌的玩家，即回合胜者
func lastPlayerToPlay(records []session.PlayRecord) string {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].IsPlay() {
			return records[i].PlayerID
		}
	}
	return ""
}

// tributeRankFor 当前级数对应的级牌点数
// 级数 2 对应打2，中间级数直接映射同名点数（11→J、12→Q），顶级 13 直接打A
// 级数区间只有 12 档而点数有 13 个，K 被有意跳过
func tributeRankFor(level int) card.Rank {
	switch {
	case level <= 2:
		return card.Rank2
	case level >= score.MaxLevel:
		return card.RankA
	default:
		return card.Rank(level)
	}
}
