package board

import (
	"errors"
	"fmt"
)

const Size = 8

var (
	// ErrOutOfRange is returned by direct accessors given a row or column outside [0,7].
	// It signals a caller bug; user input should be validated through NotationToCoords first.
	ErrOutOfRange = errors.New("board position out of range")

	ErrInvalidNotation = errors.New("invalid square notation")
)

// Coord is a validated board coordinate. Row 0 is Black's back rank, row 7 is White's.
// The zero value is A8 (0,0); other values come from NewCoord or NotationToCoords.
type Coord struct {
	row, col int
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// NewCoord returns the coordinate for (row, col) or an error wrapping ErrOutOfRange
func NewCoord(row, col int) (Coord, error) {
	if !inBounds(row, col) {
		return Coord{}, fmt.Errorf("%w: (%d, %d)", ErrOutOfRange, row, col)
	}
	return Coord{row: row, col: col}, nil
}

// MustCoord is NewCoord for constant tables and tests
func MustCoord(row, col int) Coord {
	c, err := NewCoord(row, col)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coord) Row() int { return c.row }
func (c Coord) Col() int { return c.col }

// String returns the square in notation form, e.g. "E4"
func (c Coord) String() string {
	s, _ := CoordsToNotation(c.row, c.col)
	return s
}

// offset returns the coordinate shifted by (dr, dc) and whether it is still on the board
func (c Coord) offset(dr, dc int) (Coord, bool) {
	r, f := c.row+dr, c.col+dc
	if !inBounds(r, f) {
		return Coord{}, false
	}
	return Coord{row: r, col: f}, true
}

// NotationToCoords converts "E2" (file letter case-insensitive) to a coordinate.
// ok is false for anything that is not exactly a file A-H followed by a rank 1-8.
func NotationToCoords(text string) (c Coord, ok bool) {
	if len(text) != 2 {
		return Coord{}, false
	}
	file, rank := text[0], text[1]
	if file >= 'a' && file <= 'h' {
		file -= 'a' - 'A'
	}
	if file < 'A' || file > 'H' || rank < '1' || rank > '8' {
		return Coord{}, false
	}
	return Coord{row: 8 - int(rank-'0'), col: int(file - 'A')}, true
}

// CoordsToNotation is the inverse of NotationToCoords, always upper-case
func CoordsToNotation(row, col int) (string, bool) {
	if !inBounds(row, col) {
		return "", false
	}
	return string([]byte{byte('A' + col), byte('1' + (7 - row))}), true
}

// ParseSquare is NotationToCoords for callers that want an error value
func ParseSquare(text string) (Coord, error) {
	c, ok := NotationToCoords(text)
	if !ok {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidNotation, text)
	}
	return c, nil
}
