package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/guandan/internal/config"
	"github.com/palemoky/guandan/internal/logger"
	"github.com/palemoky/guandan/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	games := flag.Int("games", 0, "连打场数，0 表示使用配置值")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		log.Warn().Err(err).Msg("加载配置文件失败，使用默认配置")
	}

	total := cfg.Game.MaxGames
	if *games > 0 {
		total = *games
	}
	if total <= 0 {
		total = 1
	}

	// 可选的 Redis 持久化
	var store *storage.RedisStore
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = storage.NewRedisStore(client)
	}

	// Ctrl-C 时取消当前对局
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info().Int("games", total).Str("difficulty", cfg.Game.Difficulty).Msg("自对弈开始")

	for i := 1; i <= total; i++ {
		driver := NewDriver(cfg, store)
		result, err := driver.Run(ctx)
		if err != nil {
			log.Error().Err(err).Int("game", i).Msg("对局中断")
			os.Exit(1)
		}
		log.Info().Int("game", i).
			Str("winner_team", result.WinnerTeam).
			Any("team_levels", result.TeamLevels).
			Int("rounds", result.RoundsTotal).
			Msg("对局结束")
	}
}
