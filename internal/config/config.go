package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 引擎配置
type Config struct {
	Game  GameConfig  `yaml:"game"`
	Redis RedisConfig `yaml:"redis"`
	Log   LogConfig   `yaml:"log"`
}

// GameConfig 对局配置
type GameConfig struct {
	Decks         int    `yaml:"decks"`          // 使用的牌副数
	StartingLevel int    `yaml:"starting_level"` // 双方队伍的起始级数
	Difficulty    string `yaml:"difficulty"`     // AI 难度：beginner / normal / expert
	TurnTimeout   int    `yaml:"turn_timeout"`   // 出牌超时（秒）
	MaxGames      int    `yaml:"max_games"`      // 一次会话最多打几局，0 表示打到封顶
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`  // debug / info / warn / error
	Pretty bool   `yaml:"pretty"` // 控制台友好输出
}

// TurnTimeoutDuration 返回出牌超时时长
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Game.Decks == 0 {
		cfg.Game.Decks = 2
	}
	if cfg.Game.StartingLevel == 0 {
		cfg.Game.StartingLevel = 2
	}
	if cfg.Game.Difficulty == "" {
		cfg.Game.Difficulty = "normal"
	}
	if cfg.Game.TurnTimeout == 0 {
		cfg.Game.TurnTimeout = 30
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Decks:         2,
			StartingLevel: 2,
			Difficulty:    "normal",
			TurnTimeout:   30,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
