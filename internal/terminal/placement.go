package terminal

import "fmt"

// Placement selects where the selector line is drawn when raw mode starts
type Placement int

const (
	// PlaceDefault leaves the cursor where it is
	PlaceDefault Placement = iota
	// PlaceTop moves to the first row of the screen
	PlaceTop
	// PlaceBottom moves to the last row of the screen
	PlaceBottom
)

// String returns the config/flag spelling of the placement
func (p Placement) String() string {
	switch p {
	case PlaceTop:
		return "top"
	case PlaceBottom:
		return "bottom"
	default:
		return "default"
	}
}

// ParsePlacement parses a placement name. The empty string is the default placement.
func ParsePlacement(s string) (Placement, error) {
	switch s {
	case "", "default":
		return PlaceDefault, nil
	case "top":
		return PlaceTop, nil
	case "bottom":
		return PlaceBottom, nil
	default:
		return PlaceDefault, fmt.Errorf("unknown placement %q (want default, top or bottom)", s)
	}
}
