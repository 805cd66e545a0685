package core

// RuntimeConfig contains settings passed to a UI surface at start-up.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for the match; 0 means time-based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0,
	}
}

// FitsBoards reports whether the screen is large enough to show both boards
// side by side.
func (c RuntimeConfig) FitsBoards(boardW, boardH int) bool {
	return c.ScreenW >= 2*boardW+4 && c.ScreenH >= boardH+6
}
