package core

// Color is the semantic colour of a screen cell. Renderers map each value to
// a concrete terminal colour through a theme.
type Color uint8

// Colours used by the boards and surrounding chrome.
const (
	ColorDefault Color = iota
	ColorWater
	ColorShip
	ColorHit
	ColorMiss
	ColorBorder
	ColorLabel
	ColorCursor
	ColorPreview
	ColorInvalid
	ColorTitle
)

// String returns the name of the colour.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorWater:
		return "water"
	case ColorShip:
		return "ship"
	case ColorHit:
		return "hit"
	case ColorMiss:
		return "miss"
	case ColorBorder:
		return "border"
	case ColorLabel:
		return "label"
	case ColorCursor:
		return "cursor"
	case ColorPreview:
		return "preview"
	case ColorInvalid:
		return "invalid"
	case ColorTitle:
		return "title"
	default:
		return "unknown"
	}
}
