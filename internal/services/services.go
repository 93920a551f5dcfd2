package services

import (
	"fmt"
	"sync/atomic"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
)

// Services contains the state shared by all requests.
type Services struct {
	Config   *config.ServerConfig
	Sessions *Sessions

	games atomic.Int64
}

func InitServices(cfg *config.ServerConfig) (*Services, error) {
	if cfg.Game == nil {
		return nil, fmt.Errorf("missing game config")
	}

	if err := cfg.Game.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return &Services{
		Config:   cfg,
		Sessions: NewSessions(),
	}, nil
}

// NewGame starts a game with gameCfg and plays the computer's opening move if it has one.
// Every game gets its own policy seed so random games differ.
func (s *Services) NewGame(gameCfg *config.GameConfig) (*game.Controller, error) {
	seeded := *gameCfg
	seeded.PolicySeed += s.games.Add(1)

	policy, err := seeded.NewPolicy()
	if err != nil {
		return nil, err
	}

	controller, err := game.NewController(seeded.Options(), policy)
	if err != nil {
		return nil, err
	}

	if err = controller.Advance(); err != nil {
		return nil, err
	}

	return controller, nil
}
