package console

import (
	"fmt"
	"io"

	"github.com/vovakirdan/shiphunters/internal/battle"
	"github.com/vovakirdan/shiphunters/internal/engine"
	"github.com/vovakirdan/shiphunters/internal/platform/render"
)

const clearSequence = "\033[H\033[2J"

// Display prints match events as text for one viewer.
type Display struct {
	w           io.Writer
	theme       render.Theme
	viewer      int  // Side whose ships are revealed
	clearScreen bool // Clear the terminal at the start of each turn
}

// NewDisplay creates a display writing to w from the point of view of side
// viewer. clearScreen enables terminal clearing between turns.
func NewDisplay(w io.Writer, theme render.Theme, viewer int, clearScreen bool) *Display {
	return &Display{w: w, theme: theme, viewer: viewer, clearScreen: clearScreen}
}

// Show prints one event.
func (d *Display) Show(evt engine.Event) {
	switch evt := evt.(type) {
	case engine.SetupStarted:
		if evt.Side == 0 {
			d.println("\n" + d.theme.Divider("setup phase"))
		}
		if evt.Automated {
			d.printf("\n%s, place your ships!\n", evt.Name)
		} else {
			d.printf("\n%s, deploy your fleet!\n", evt.Name)
		}

	case engine.PlacementRejected:
		d.println("\n" + d.theme.Alert.Render("Invalid placement! Try again."))
		d.println(d.theme.Muted.Render(evt.Err.Error()))

	case engine.FleetDeployed:
		if evt.Automated {
			return
		}
		side := evt.Snapshot.Sides[evt.Side]
		d.println("\n" + d.theme.Board(side.Name+"'s final board:", side.Board, true, render.Overlay{}))

	case engine.BattleStarted:
		d.println("\nAll ships placed!")
		d.println("\n" + d.theme.Divider("battle phase"))

	case engine.TurnStarted:
		if d.clearScreen {
			fmt.Fprint(d.w, clearSequence)
		}
		d.println("\n" + d.theme.Divider(fmt.Sprintf("turn %d", evt.Turn)))
		d.printf("         %s's turn\n", evt.Name)
		if evt.Automated {
			d.printf("\n%s is thinking...\n", evt.Name)
			return
		}
		d.println("\n" + d.theme.Boards(evt.Snapshot, d.viewer, render.Overlay{}, render.Overlay{}))

	case engine.ShotRejected:
		if evt.Outcome == battle.ShotAlreadyShot {
			d.println(d.theme.Alert.Render("You already shot there! Try again."))
		} else {
			d.println(d.theme.Alert.Render("Invalid target! Try again."))
		}

	case engine.ShotResolved:
		d.showShot(evt)

	case engine.MatchFinished:
		d.println("\n" + d.theme.Boards(evt.Snapshot, d.viewer, render.Overlay{}, render.Overlay{}))
		d.println("\n" + d.theme.EndBox(evt.Result))
	}
}

func (d *Display) showShot(evt engine.ShotResolved) {
	r := evt.Report
	defender := evt.Snapshot.Sides[1-r.Side]

	switch {
	case r.Skipped:
		d.printf("\n%s has no targets left and passes.\n", evt.Shooter)
		return
	case !evt.Automated:
		if r.Outcome == battle.ShotHit {
			d.println("\n" + d.theme.Success.Render("*** HIT! ***"))
		} else {
			d.println("\n" + d.theme.Muted.Render("*** MISS! ***"))
		}
	default:
		d.printf("\n%s shoots at %s...\n", evt.Shooter, r.Label)
		if r.Outcome == battle.ShotHit {
			d.println(d.theme.Alert.Render(fmt.Sprintf("*** %s HIT %s's ship at %s! ***", evt.Shooter, defender.Name, r.Label)))
		} else {
			d.printf("%s missed at %s.\n", evt.Shooter, r.Label)
		}
	}

	if r.Sunk != "" {
		d.println(d.theme.Alert.Render(render.SunkMessage(r.Sunk)))
	}
	if r.Finished {
		return
	}

	reveal := 1-r.Side == d.viewer
	heading := fmt.Sprintf("\n%s's board after %s's shot:", defender.Name, evt.Shooter)
	d.println(d.theme.Board(heading, defender.Board, reveal, render.Overlay{}))
}

func (d *Display) println(s string) {
	fmt.Fprintln(d.w, s)
}

func (d *Display) printf(format string, args ...any) {
	fmt.Fprintf(d.w, format, args...)
}

var _ engine.Display = (*Display)(nil)
