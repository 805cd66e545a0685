package engine

import "github.com/vovakirdan/shiphunters/internal/battle"

// Event is sent from the controller to a Display as the match progresses.
type Event interface {
	matchEvent()
}

// SetupStarted is sent before a side deploys its fleet.
type SetupStarted struct {
	Side      int
	Name      string
	Automated bool
}

func (SetupStarted) matchEvent() {}

// PlacementRequested is sent by a Bridge when the controller waits for a
// placement from its side.
type PlacementRequested struct {
	Prompt PlacementPrompt
}

func (PlacementRequested) matchEvent() {}

// PlacementRejected is sent when a requested placement cannot be applied.
type PlacementRejected struct {
	Side   int
	Vessel string
	Err    error
}

func (PlacementRejected) matchEvent() {}

// FleetDeployed is sent once a side has placed every vessel.
type FleetDeployed struct {
	Side      int
	Name      string
	Automated bool
	Snapshot  battle.Snapshot
}

func (FleetDeployed) matchEvent() {}

// BattleStarted is sent when both fleets are on the water.
type BattleStarted struct {
	Snapshot battle.Snapshot
}

func (BattleStarted) matchEvent() {}

// TurnStarted is sent at the start of every turn.
type TurnStarted struct {
	Turn      int // 1-based number of the turn about to be played
	Side      int
	Name      string
	Automated bool
	Snapshot  battle.Snapshot
}

func (TurnStarted) matchEvent() {}

// TargetRequested is sent by a Bridge when the controller waits for a target.
type TargetRequested struct {
	Prompt TargetPrompt
}

func (TargetRequested) matchEvent() {}

// ShotRejected is sent when a target label is invalid or already shot.
// The side keeps its turn.
type ShotRejected struct {
	Side    int
	Label   string
	Outcome battle.ShotOutcome
}

func (ShotRejected) matchEvent() {}

// ShotResolved is sent after every shot that consumed a turn.
type ShotResolved struct {
	Shooter   string
	Automated bool
	Report    battle.ShotReport
	Snapshot  battle.Snapshot
}

func (ShotResolved) matchEvent() {}

// MatchFinished is sent once, when the last vessel of a side is sunk.
type MatchFinished struct {
	Result   battle.Result
	Snapshot battle.Snapshot
}

func (MatchFinished) matchEvent() {}
