package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// MenuChoice is a main menu selection.
type MenuChoice int

const (
	MenuInvalid MenuChoice = -1
	MenuPlay    MenuChoice = 1
	MenuHistory MenuChoice = 2
	MenuQuit    MenuChoice = 3
)

// String returns the name of the choice.
func (c MenuChoice) String() string {
	switch c {
	case MenuPlay:
		return "Play"
	case MenuHistory:
		return "History"
	case MenuQuit:
		return "Quit"
	default:
		return "Invalid"
	}
}

// ParseMenuChoice maps a raw menu line to a choice:
//   - empty line plays
//   - whitespace only, "esc" or "exit" (any case) quits
//   - "1", "2" and "3" select by number
//   - anything else is invalid
func ParseMenuChoice(line string) MenuChoice {
	if line == "" {
		return MenuPlay
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return MenuQuit
	}
	if strings.EqualFold(trimmed, "esc") || strings.EqualFold(trimmed, "exit") {
		return MenuQuit
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return MenuInvalid
	}
	switch c := MenuChoice(n); c {
	case MenuPlay, MenuHistory, MenuQuit:
		return c
	default:
		return MenuInvalid
	}
}

// Menu prints the main menu and reads choices until a valid one is made.
func (in *Input) Menu(ctx context.Context) (MenuChoice, error) {
	for {
		fmt.Fprintln(in.w)
		fmt.Fprintln(in.w, in.theme.Divider("main menu"))
		fmt.Fprintln(in.w)
		fmt.Fprintln(in.w, "Press Enter to PLAY")
		fmt.Fprintln(in.w, "Type 2 then Enter for MATCH HISTORY")
		fmt.Fprintln(in.w, "Press whitespace then Enter to EXIT")
		fmt.Fprintln(in.w)

		line, err := in.ReadLine(ctx, "Your input: ")
		if err != nil {
			return MenuQuit, err
		}
		if choice := ParseMenuChoice(line); choice != MenuInvalid {
			return choice, nil
		}
		fmt.Fprintln(in.w, in.theme.Alert.Render("Invalid choice. Please try again."))
	}
}
