// Package engine runs a Ship Hunters match from setup to the final shot.
// It talks to players only through the Input and Display interfaces, so the
// same controller drives the console, the full-screen TUI, SSH sessions and
// headless simulations.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shiphunters/internal/battle"
)

// PlacementPrompt asks a human side where to put its next vessel.
type PlacementPrompt struct {
	Side     int
	Name     string
	Vessel   string
	Length   int
	Snapshot battle.Snapshot
}

// PlacementRequest is the raw answer to a PlacementPrompt.
type PlacementRequest struct {
	Start       string // Coordinate label, e.g. "B3"
	Orientation string // "H" or "V"
}

// TargetPrompt asks a human side for its next target.
type TargetPrompt struct {
	Side     int
	Name     string
	Snapshot battle.Snapshot
}

// Input supplies decisions for human sides. Implementations block until the
// player answers or ctx is done.
type Input interface {
	Placement(ctx context.Context, p PlacementPrompt) (PlacementRequest, error)
	Target(ctx context.Context, p TargetPrompt) (string, error)
}

// Display receives match events. Show must not block for long.
type Display interface {
	Show(evt Event)
}

// JournalSaver persists the record of a finished match.
type JournalSaver interface {
	SaveJournal(j battle.Journal) error
}

// Options tunes the controller.
type Options struct {
	PlacementAttempts int           // Random placement bound per vessel
	ThinkDelay        time.Duration // Pause before each automated turn
	BoardPause        time.Duration // Pause after a human fleet is deployed
	Logger            *log.Logger   // Optional
	Journal           JournalSaver  // Optional
}

// ErrNoInput is returned when a human side has no Input to ask.
var ErrNoInput = errors.New("engine: no input for human side")

// Controller owns one match and plays it to the end.
type Controller struct {
	match   *battle.Match
	input   Input
	display Display
	opts    Options
	log     *log.Logger
}

// New creates a controller. input may be nil when both sides are automated;
// display may be nil to run silently.
func New(m *battle.Match, input Input, display Display, opts Options) *Controller {
	if display == nil {
		display = nopDisplay{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.PlacementAttempts <= 0 {
		opts.PlacementAttempts = battle.DefaultPlacementAttempts
	}
	return &Controller{
		match:   m,
		input:   input,
		display: display,
		opts:    opts,
		log:     logger.With("match", m.ID()),
	}
}

// Match returns the controlled match.
func (c *Controller) Match() *battle.Match {
	return c.match
}

// Run plays the match through setup and battle and returns the result.
// It only fails when input is exhausted or ctx is cancelled.
func (c *Controller) Run(ctx context.Context) (battle.Result, error) {
	c.log.Info("match started",
		"seed", c.match.Seed(),
		"first", c.match.Side(0).Name(),
		"second", c.match.Side(1).Name())

	if err := c.setup(ctx); err != nil {
		return battle.Result{}, err
	}
	if err := c.battle(ctx); err != nil {
		return battle.Result{}, err
	}
	return c.finish()
}

func (c *Controller) setup(ctx context.Context) error {
	for side := range 2 {
		combatant := c.match.Side(side)
		c.display.Show(SetupStarted{Side: side, Name: combatant.Name(), Automated: combatant.Automated()})

		if combatant.Automated() {
			if err := c.match.AutoPlace(side, c.opts.PlacementAttempts); err != nil {
				return fmt.Errorf("engine: place fleet of %s: %w", combatant.Name(), err)
			}
		} else if err := c.placeHuman(ctx, side); err != nil {
			return err
		}

		c.display.Show(FleetDeployed{
			Side:      side,
			Name:      combatant.Name(),
			Automated: combatant.Automated(),
			Snapshot:  c.match.Snapshot(),
		})
		if !combatant.Automated() {
			if err := sleep(ctx, c.opts.BoardPause); err != nil {
				return err
			}
		}
	}

	if err := c.match.Begin(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	c.display.Show(BattleStarted{Snapshot: c.match.Snapshot()})
	return nil
}

// placeHuman asks for every vessel in turn until each placement is legal.
func (c *Controller) placeHuman(ctx context.Context, side int) error {
	if c.input == nil {
		return ErrNoInput
	}
	combatant := c.match.Side(side)

	for v := combatant.NextUnplaced(); v != nil; v = combatant.NextUnplaced() {
		req, err := c.input.Placement(ctx, PlacementPrompt{
			Side:     side,
			Name:     combatant.Name(),
			Vessel:   v.Name(),
			Length:   v.Length(),
			Snapshot: c.match.Snapshot(),
		})
		if err != nil {
			return fmt.Errorf("engine: read placement: %w", err)
		}

		o, err := battle.ParseOrientation(req.Orientation)
		if err == nil {
			err = c.match.PlaceVessel(side, v.Name(), req.Start, o)
		}
		if err != nil {
			c.log.Debug("placement rejected", "side", combatant.Name(), "vessel", v.Name(), "start", req.Start, "err", err)
			c.display.Show(PlacementRejected{Side: side, Vessel: v.Name(), Err: err})
		}
	}
	return nil
}

func (c *Controller) battle(ctx context.Context) error {
	for c.match.Phase() == battle.PhaseBattle {
		side := c.match.ActiveSide()
		active := c.match.Active()

		c.display.Show(TurnStarted{
			Turn:      c.match.Turns() + 1,
			Side:      side,
			Name:      active.Name(),
			Automated: active.Automated(),
			Snapshot:  c.match.Snapshot(),
		})

		var err error
		if active.Automated() {
			err = c.automatedTurn(ctx)
		} else {
			err = c.humanTurn(ctx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// humanTurn re-prompts until the side fires a shot that consumes the turn.
func (c *Controller) humanTurn(ctx context.Context) error {
	if c.input == nil {
		return ErrNoInput
	}
	side := c.match.ActiveSide()
	active := c.match.Active()

	for {
		label, err := c.input.Target(ctx, TargetPrompt{
			Side:     side,
			Name:     active.Name(),
			Snapshot: c.match.Snapshot(),
		})
		if err != nil {
			return fmt.Errorf("engine: read target: %w", err)
		}

		report, err := c.match.Fire(label)
		if err != nil {
			return fmt.Errorf("engine: %w", err)
		}
		if !report.Consumed() {
			c.display.Show(ShotRejected{Side: side, Label: label, Outcome: report.Outcome})
			continue
		}

		c.display.Show(ShotResolved{Shooter: active.Name(), Report: report, Snapshot: c.match.Snapshot()})
		return nil
	}
}

func (c *Controller) automatedTurn(ctx context.Context) error {
	if err := sleep(ctx, c.opts.ThinkDelay); err != nil {
		return err
	}
	active := c.match.Active()

	report, err := c.match.AutoFire()
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if report.Skipped {
		c.log.Debug("no target left, turn passed", "side", active.Name())
	} else {
		c.log.Debug("automated shot",
			"side", active.Name(),
			"mode", report.Mode,
			"target", report.Label,
			"outcome", report.Outcome,
			"sunk", report.Sunk)
	}

	c.display.Show(ShotResolved{Shooter: active.Name(), Automated: true, Report: report, Snapshot: c.match.Snapshot()})
	return nil
}

func (c *Controller) finish() (battle.Result, error) {
	res, err := c.match.Result()
	if err != nil {
		return battle.Result{}, fmt.Errorf("engine: %w", err)
	}

	c.log.Info("match finished",
		"winner", res.Winner.Name,
		"turns", res.Turns,
		"accuracy", fmt.Sprintf("%.2f", res.Winner.Accuracy))

	if c.opts.Journal != nil {
		if err := c.opts.Journal.SaveJournal(c.match.Journal()); err != nil {
			c.log.Warn("failed to save match journal", "err", err)
		}
	}

	c.display.Show(MatchFinished{Result: res, Snapshot: c.match.Snapshot()})
	return res, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type nopDisplay struct{}

func (nopDisplay) Show(Event) {}
