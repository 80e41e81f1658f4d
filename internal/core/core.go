package core

import "fmt"

type Color byte

const (
	ColorWhite Color = 'w'
	ColorBlack Color = 'b'
)

// String returns the FEN side-to-move letter
func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "w"
	case ColorBlack:
		return "b"
	default:
		return "-"
	}
}

// Name returns the human readable color name
func (c Color) Name() string {
	switch c {
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	default:
		return "Unknown"
	}
}

func (c Color) Opposite() Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

func (c Color) Valid() bool {
	return c == ColorWhite || c == ColorBlack
}

// ParseColor accepts "w"/"b" and "white"/"black" in any case
func ParseColor(s string) (Color, error) {
	switch s {
	case "w", "W", "white", "White", "WHITE":
		return ColorWhite, nil
	case "b", "B", "black", "Black", "BLACK":
		return ColorBlack, nil
	default:
		return 0, fmt.Errorf("invalid color: %q", s)
	}
}
