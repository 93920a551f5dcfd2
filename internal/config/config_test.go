package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/policy"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"REVERSI_SERVER_HOST", "REVERSI_SERVER_PORT", "REVERSI_SERVER_PREFORK", "REVERSI_SESSION_TTL",
		"REVERSI_BOARD_SIZE", "REVERSI_HUMAN_SIDE", "REVERSI_END_RULE", "REVERSI_POLICY",
		"REVERSI_COMPUTER_DELAY",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadServerConfig()
	require.Equal(t, DefaultServerHost, cfg.ServerHost)
	require.Equal(t, DefaultServerPort, cfg.ServerPort)
	require.False(t, cfg.Prefork)
	require.Equal(t, DefaultSessionTTL, cfg.SessionTTL)

	require.Equal(t, othello.DefaultBoardSize, cfg.Game.BoardSize)
	require.Equal(t, othello.First, cfg.Game.HumanSide)
	require.Equal(t, game.EndWhenEitherBlocked, cfg.Game.EndRule)
	require.Equal(t, DefaultPolicy, cfg.Game.Policy)
	require.Equal(t, DefaultComputerDelay, cfg.Game.ComputerDelay)
}

func TestLoadGameConfig(t *testing.T) {
	t.Setenv("REVERSI_BOARD_SIZE", "10")
	t.Setenv("REVERSI_HUMAN_SIDE", "white")
	t.Setenv("REVERSI_END_RULE", "both")
	t.Setenv("REVERSI_POLICY", "random")
	t.Setenv("REVERSI_POLICY_SEED", "7")
	t.Setenv("REVERSI_COMPUTER_DELAY", "1s")

	cfg := LoadGameConfig()
	require.Equal(t, 10, cfg.BoardSize)
	require.Equal(t, othello.Second, cfg.HumanSide)
	require.Equal(t, game.EndWhenBothBlocked, cfg.EndRule)
	require.Equal(t, "random", cfg.Policy)
	require.Equal(t, int64(7), cfg.PolicySeed)
	require.Equal(t, time.Second, cfg.ComputerDelay)

	options := cfg.Options()
	require.Equal(t, 10, options.Size)
	require.Equal(t, othello.Second, options.HumanSide)
	require.Equal(t, game.EndWhenBothBlocked, options.EndRule)
	require.IsType(t, policy.Greedy{}, options.Fallback)

	p, err := cfg.NewPolicy()
	require.NoError(t, err)
	require.IsType(t, &policy.Random{}, p)
}

func TestGameConfig_Validate(t *testing.T) {
	valid := GameConfig{
		BoardSize: 8,
		Policy:    "greedy",
	}
	require.NoError(t, valid.Validate())

	invalidSize := valid
	invalidSize.BoardSize = 9
	require.ErrorIs(t, invalidSize.Validate(), othello.ErrInvalidBoardSize)

	invalidPolicy := valid
	invalidPolicy.Policy = "alphabeta"
	require.ErrorIs(t, invalidPolicy.Validate(), policy.ErrUnknownPolicy)

	invalidDelay := valid
	invalidDelay.ComputerDelay = -time.Second
	require.Error(t, invalidDelay.Validate())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		value   string
		want    slog.Level
		wantErr bool
	}{
		{value: "", want: slog.LevelInfo},
		{value: "debug", want: slog.LevelDebug},
		{value: "INFO", want: slog.LevelInfo},
		{value: "Warn", want: slog.LevelWarn},
		{value: "ERROR", want: slog.LevelError},
		{value: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			level, err := parseLogLevel(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, level)
		})
	}
}
