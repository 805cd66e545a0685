// Package console is the line-oriented Ship Hunters surface: prompts on an
// io.Writer, answers read line by line from an io.Reader.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/shiphunters/internal/engine"
	"github.com/vovakirdan/shiphunters/internal/platform/render"
)

// Input reads placements and targets from a line reader.
type Input struct {
	r     *bufio.Reader
	w     io.Writer
	theme render.Theme
	lines chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// NewInput creates an Input that prompts on w and reads from r.
func NewInput(r io.Reader, w io.Writer, theme render.Theme) *Input {
	return &Input{
		r:     bufio.NewReader(r),
		w:     w,
		theme: theme,
	}
}

// ReadLine prints prompt and returns the next line without its line ending.
// A final line without a newline is returned before io.EOF.
func (in *Input) ReadLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(in.w, in.theme.Heading.Render(prompt))

	// Reads happen in a goroutine so a cancelled ctx does not wait for the
	// terminal. The pending read is picked up by the next call.
	if in.lines == nil {
		in.lines = make(chan lineResult, 1)
		go in.readLine()
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-in.lines:
		in.lines = nil
		return res.line, res.err
	}
}

func (in *Input) readLine() {
	line, err := in.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	in.lines <- lineResult{line: strings.TrimRight(line, "\r\n"), err: err}
}

// Placement asks for a start coordinate and an orientation.
func (in *Input) Placement(ctx context.Context, p engine.PlacementPrompt) (engine.PlacementRequest, error) {
	fmt.Fprintf(in.w, "\nPlace your %s (Length: %d)\n", p.Vessel, p.Length)

	start, err := in.ReadLine(ctx, "\nEnter your starting coordinate (A1): ")
	if err != nil {
		return engine.PlacementRequest{}, err
	}
	orientation, err := in.ReadLine(ctx, "Horizontal or Vertical? (H/V): ")
	if err != nil {
		return engine.PlacementRequest{}, err
	}
	return engine.PlacementRequest{
		Start:       strings.TrimSpace(start),
		Orientation: strings.TrimSpace(orientation),
	}, nil
}

// Target asks for the next target label.
func (in *Input) Target(ctx context.Context, _ engine.TargetPrompt) (string, error) {
	label, err := in.ReadLine(ctx, "\nEnter your target (A1): ")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(label), nil
}

// PromptName asks for the player's name and falls back to def when the
// answer is blank.
func (in *Input) PromptName(ctx context.Context, def string) (string, error) {
	name, err := in.ReadLine(ctx, "\nEnter your name: ")
	if err != nil {
		return "", err
	}
	if name = strings.TrimSpace(name); name == "" {
		return def, nil
	}
	return name, nil
}

var _ engine.Input = (*Input)(nil)
