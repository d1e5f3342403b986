package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "MULTIAGENT"

type Config struct {
	Depth     float64       `mapstructure:"depth"`
	Variant   string        `mapstructure:"variant"`
	TieBreak  string        `mapstructure:"tie_break"`
	Heuristic string        `mapstructure:"heuristic"`
	Seed      uint64        `mapstructure:"seed"` // 0 seeds random tie-breaking from the clock
	Timeout   time.Duration `mapstructure:"timeout"`
	LogLevel  string        `mapstructure:"log_level"`
	Weights   game.Weights  `mapstructure:"weights"`
}

func Default() *Config {
	return &Config{
		Depth:     2,
		Variant:   searcher.AlphaBeta.String(),
		TieBreak:  searcher.TieBreakFirst.String(),
		Heuristic: string(game.HeuristicScore),
		LogLevel:  zerolog.InfoLevel.String(),
		Weights:   game.DefaultWeights(),
	}
}

// Setup reads the file at cfgPath over the defaults. Keys can be overridden by
// MULTIAGENT_ environment variables, e.g. MULTIAGENT_WEIGHTS_SCORE.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		err := v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("depth", cfg.Depth)
	v.SetDefault("variant", cfg.Variant)
	v.SetDefault("tie_break", cfg.TieBreak)
	v.SetDefault("heuristic", cfg.Heuristic)
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("weights.score", cfg.Weights.Score)
	v.SetDefault("weights.remaining_objectives", cfg.Weights.RemainingObjectives)
	v.SetDefault("weights.nearest_objective", cfg.Weights.NearestObjective)
	v.SetDefault("weights.objective_spread", cfg.Weights.ObjectiveSpread)
	v.SetDefault("weights.remaining_bonuses", cfg.Weights.RemainingBonuses)
	v.SetDefault("weights.nearest_bonus", cfg.Weights.NearestBonus)
	v.SetDefault("weights.nearest_scared", cfg.Weights.NearestScared)
}

func (c *Config) Validate() error {
	if _, err := c.DepthBudget(); err != nil {
		return err
	}
	if _, err := c.Options(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// DepthBudget rejects budgets that are negative or not whole numbers
func (c *Config) DepthBudget() (int, error) {
	if math.IsNaN(c.Depth) || c.Depth < 0 || c.Depth != math.Trunc(c.Depth) || c.Depth > math.MaxInt32 {
		return 0, fmt.Errorf("%w: depth must be a non-negative integer, got %v", searcher.ErrInvalidConfiguration, c.Depth)
	}
	return int(c.Depth), nil
}

func (c *Config) Options() ([]searcher.Option, error) {
	variant, err := searcher.ParseVariant(c.Variant)
	if err != nil {
		return nil, err
	}
	tieBreak, err := searcher.ParseTieBreak(c.TieBreak)
	if err != nil {
		return nil, err
	}
	heuristic, err := game.ParseHeuristic(c.Heuristic)
	if err != nil {
		return nil, err
	}

	options := []searcher.Option{
		searcher.WithVariant(variant),
		searcher.WithTieBreak(tieBreak),
		searcher.WithEvaluationFn(heuristic.Evaluate(c.Weights)),
		searcher.WithTimeout(c.Timeout),
	}
	if c.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Seed))
	}
	return options, nil
}

func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %w", searcher.ErrInvalidConfiguration, err)
	}
	return level, nil
}

// AgentConfig describes the configured searcher for experiment records
func (c *Config) AgentConfig(name string) (metrics.AgentConfig, error) {
	depth, err := c.DepthBudget()
	if err != nil {
		return metrics.AgentConfig{}, err
	}
	return metrics.AgentConfig{
		Name:      name,
		Variant:   c.Variant,
		Depth:     depth,
		TieBreak:  c.TieBreak,
		Heuristic: c.Heuristic,
		Seed:      c.Seed,
		Timeout:   c.Timeout,
	}, nil
}
