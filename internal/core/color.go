package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Palette groups the colors a game draws with, so a renderer can swap
// roles (e.g. invert on game over) without touching drawing code.
type Palette struct {
	Background Color
	Player     Color
	Obstacle   Color
	Score      Color
}

// Inverted returns the palette used for the collided state: the field takes
// the obstacle color, obstacles take the field color and the score is drawn
// in the player color.
func (p Palette) Inverted() Palette {
	return Palette{
		Background: p.Obstacle,
		Player:     p.Player,
		Obstacle:   p.Background,
		Score:      p.Player,
	}
}
