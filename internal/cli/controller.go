// Package cli runs the interactive terminal game.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"example.com/mastermind/internal/game"
	"example.com/mastermind/internal/secret"
)

type Config struct {
	// Difficulty skips the difficulty menu when set.
	Difficulty *game.Difficulty
	// DefaultDifficulty is what an empty menu answer selects.
	DefaultDifficulty game.Difficulty
	MaxAttempts       int
	Hints             int
}

// Controller drives games between the UI and the game core. Each round gets a
// fresh Session.
type Controller struct {
	cfg     Config
	ui      *UI
	secrets secret.Generator
	rng     game.Source
	log     *slog.Logger
}

func NewController(cfg Config, ui *UI, secrets secret.Generator, rng game.Source, log *slog.Logger) *Controller {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = game.DefaultMaxAttempts
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{cfg: cfg, ui: ui, secrets: secrets, rng: rng, log: log}
}

// Run plays until the player declines a rematch or input ends.
func (c *Controller) Run(ctx context.Context) error {
	c.ui.Welcome(c.cfg.MaxAttempts)

	for {
		if err := c.playOne(ctx); err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.ui.Error("Failed to create game: " + err.Error())
		}

		again, err := c.ui.PromptPlayAgain()
		if errors.Is(err, ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			c.ui.Message("Goodbye!")
			return nil
		}
	}
}

func (c *Controller) playOne(ctx context.Context) error {
	d, err := c.difficulty()
	if err != nil {
		return err
	}
	name, err := c.ui.PromptName()
	if err != nil {
		return err
	}

	answer, err := c.secrets.Generate(ctx, d.Shape)
	if err != nil {
		return fmt.Errorf("generate secret: %w", err)
	}
	s, err := game.NewSession(answer,
		game.WithMaxAttempts(c.cfg.MaxAttempts),
		game.WithHints(c.cfg.Hints),
		game.WithRand(c.rng),
	)
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}
	c.log.Debug("game started", "player", name, "difficulty", d.Name)

	return c.loop(s, name)
}

func (c *Controller) difficulty() (game.Difficulty, error) {
	if c.cfg.Difficulty != nil {
		return *c.cfg.Difficulty, nil
	}
	return c.ui.PromptDifficulty(c.cfg.DefaultDifficulty)
}

func (c *Controller) loop(s *game.Session, name string) error {
	for s.State() == game.StateInProgress {
		choice, err := c.ui.PromptMenu(name, s.RemainingAttempts())
		if err != nil {
			return err
		}

		switch choice {
		case MakeGuess:
			if err := c.guess(s, name); err != nil {
				return err
			}
		case ShowHistory:
			c.ui.History(s.History())
		case GetHint:
			v, ok := s.Hint()
			c.ui.Hint(v, ok, s.HintsRemaining())
		case ExitGame:
			c.ui.Message("Game ended by player.")
			return nil
		}
	}
	return nil
}

func (c *Controller) guess(s *game.Session, name string) error {
	guess, err := c.ui.PromptGuess(s.RemainingAttempts(), s.Shape())
	if err != nil {
		return err
	}
	score, err := s.SubmitGuess(guess)
	if err != nil {
		c.ui.Error(err.Error())
		return nil
	}
	c.ui.Feedback(guess, score)

	if !s.State().Terminal() {
		c.ui.RemainingWarning(s.RemainingAttempts())
		return nil
	}
	answer, err := s.Secret()
	if err != nil {
		return err
	}
	c.ui.Results(s.State(), answer, name)
	c.log.Debug("game finished", "player", name, "state", s.State(), "turns", len(s.History()))
	return nil
}
