package walls

import "fmt"

// Direction is the currently held input direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Wall identifies one side of the board.
type Wall int

const (
	WallTop Wall = iota
	WallBottom
	WallLeft
	WallRight
)

// grows maps a pressed direction to the wall it advances: the side you press
// away from. Both input handling and lethal-collision detection read it.
var grows = map[Direction]Wall{
	DirUp:    WallBottom,
	DirDown:  WallTop,
	DirLeft:  WallRight,
	DirRight: WallLeft,
}

// Grows returns the wall advanced by pressing d.
// ok is false for DirNone.
func (d Direction) Grows() (w Wall, ok bool) {
	w, ok = grows[d]
	return w, ok
}

// Threatens reports whether striking w while holding d ends the match.
func (d Direction) Threatens(w Wall) bool {
	g, ok := d.Grows()
	return ok && g == w
}

func (d Direction) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// MarshalText encodes the direction by name for JSON snapshots.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (w Wall) String() string {
	switch w {
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	default:
		return fmt.Sprintf("Wall(%d)", int(w))
	}
}
