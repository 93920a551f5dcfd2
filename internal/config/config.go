package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/policy"
)

const (
	DefaultServerHost    = "127.0.0.1"
	DefaultServerPort    = "8080"
	DefaultSessionTTL    = time.Hour
	DefaultPolicy        = "greedy"
	DefaultComputerDelay = 500 * time.Millisecond
)

// ServerConfig holds all configuration values of the game server.
type ServerConfig struct {
	ServerHost string
	ServerPort string
	Prefork    bool
	SessionTTL time.Duration
	Game       *GameConfig
}

// GameConfig holds the settings of new games.
type GameConfig struct {
	BoardSize     int
	HumanSide     othello.Side
	EndRule       game.EndRule
	Policy        string
	PolicySeed    int64
	ComputerDelay time.Duration
}

// LoadDotEnv loads a .env file from the working directory if there is one.
func LoadDotEnv() {
	err := godotenv.Load()
	if err == nil {
		slog.Debug("Loaded .env file")
		return
	}

	if !errors.Is(err, os.ErrNotExist) {
		slog.Error("Failed to load .env file", "error", err)
		os.Exit(1)
	}
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	cfg := &ServerConfig{
		ServerHost: getEnvDefault("REVERSI_SERVER_HOST", DefaultServerHost),
		ServerPort: getEnvDefault("REVERSI_SERVER_PORT", DefaultServerPort),
		Prefork:    getEnvMustBool("REVERSI_SERVER_PREFORK", false),
		SessionTTL: getEnvMustDuration("REVERSI_SESSION_TTL", DefaultSessionTTL),
		Game:       LoadGameConfig(),
	}

	if cfg.SessionTTL <= 0 {
		slog.Error("Session TTL must be positive", "key", "REVERSI_SESSION_TTL", "value", cfg.SessionTTL)
		os.Exit(1)
	}

	return cfg
}

// LoadGameConfig loads the game settings from environment variables.
func LoadGameConfig() *GameConfig {
	cfg := &GameConfig{
		BoardSize:     getEnvMustInt("REVERSI_BOARD_SIZE", othello.DefaultBoardSize),
		HumanSide:     othello.First,
		EndRule:       game.EndWhenEitherBlocked,
		Policy:        getEnvDefault("REVERSI_POLICY", DefaultPolicy),
		PolicySeed:    int64(getEnvMustInt("REVERSI_POLICY_SEED", int(time.Now().UnixNano()%(1<<31)))),
		ComputerDelay: getEnvMustDuration("REVERSI_COMPUTER_DELAY", DefaultComputerDelay),
	}

	if value := os.Getenv("REVERSI_HUMAN_SIDE"); value != "" {
		side, err := othello.ParseSide(value)
		if err != nil {
			slog.Error("Cannot load environment variable", "key", "REVERSI_HUMAN_SIDE", "error", err)
			os.Exit(1)
		}
		cfg.HumanSide = side
	}

	if value := os.Getenv("REVERSI_END_RULE"); value != "" {
		rule, err := game.ParseEndRule(value)
		if err != nil {
			slog.Error("Cannot load environment variable", "key", "REVERSI_END_RULE", "error", err)
			os.Exit(1)
		}
		cfg.EndRule = rule
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid game configuration", "error", err)
		os.Exit(1)
	}

	return cfg
}

// Validate checks the game settings.
func (c *GameConfig) Validate() error {
	if err := othello.ValidateSize(c.BoardSize); err != nil {
		return err
	}

	if _, err := policy.ByName(c.Policy, c.PolicySeed); err != nil {
		return err
	}

	if c.ComputerDelay < 0 {
		return fmt.Errorf("computer delay cannot be negative: %s", c.ComputerDelay)
	}

	return nil
}

// Options returns the options for a new game. The greedy policy covers for invalid computer moves.
func (c *GameConfig) Options() game.Options {
	return game.Options{
		Size:      c.BoardSize,
		HumanSide: c.HumanSide,
		EndRule:   c.EndRule,
		Fallback:  policy.Greedy{},
	}
}

// NewPolicy creates the configured computer policy.
func (c *GameConfig) NewPolicy() (game.Policy, error) {
	return policy.ByName(c.Policy, c.PolicySeed)
}

func getEnvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvMustBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

func getEnvMustInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be an integer", "key", key, "value", value)
		os.Exit(1)
	}

	return parsed
}

func getEnvMustDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be a duration", "key", key, "value", value)
		os.Exit(1)
	}

	return parsed
}
