package board

import (
	"fmt"

	"chessgrid/internal/core"
)

var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board is the authoritative game state. It is not safe for concurrent use;
// callers sharing a Board between goroutines must serialize access.
type Board struct {
	squares Grid
	current core.Color
}

// New returns a board set up in the standard opening position, White to move
func New() *Board {
	b := &Board{}
	b.Initialize()
	return b
}

// NewEmpty returns a board with no pieces and the given side to move
func NewEmpty(turn core.Color) *Board {
	if !turn.Valid() {
		turn = core.ColorWhite
	}
	return &Board{current: turn}
}

// Initialize clears the grid, places the 32 opening pieces and gives White the move
func (b *Board) Initialize() {
	b.squares = Grid{}
	for col := 0; col < Size; col++ {
		b.put(backRank[col], core.ColorBlack, Coord{0, col})
		b.put(Pawn, core.ColorBlack, Coord{1, col})
		b.put(Pawn, core.ColorWhite, Coord{6, col})
		b.put(backRank[col], core.ColorWhite, Coord{7, col})
	}
	b.current = core.ColorWhite
}

// Reset restores the opening position
func (b *Board) Reset() {
	b.Initialize()
}

func (b *Board) put(kind Kind, color core.Color, at Coord) *Piece {
	p := newPiece(kind, color, at)
	b.squares[at.row][at.col] = p
	return p
}

// Place puts a new piece on an empty square. Used to build positions other than the opening one.
func (b *Board) Place(kind Kind, color core.Color, at Coord) error {
	if kind >= numKinds {
		return fmt.Errorf("invalid piece kind %d", kind)
	}
	if !color.Valid() {
		return fmt.Errorf("invalid piece color %q", byte(color))
	}
	if occupant := b.squares[at.row][at.col]; occupant != nil {
		return fmt.Errorf("square %s already holds %s", at, occupant)
	}
	b.put(kind, color, at)
	return nil
}

// GetPiece returns the occupant of (row, col), nil for an empty square,
// or an error wrapping ErrOutOfRange
func (b *Board) GetPiece(row, col int) (*Piece, error) {
	if !inBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrOutOfRange, row, col)
	}
	return b.squares[row][col], nil
}

func (b *Board) PieceAt(c Coord) *Piece {
	return b.squares[c.row][c.col]
}

func (b *Board) CurrentPlayer() core.Color {
	return b.current
}

// Grid returns a snapshot of the cells for display and bookkeeping
func (b *Board) Grid() *Grid {
	g := b.squares
	return &g
}

func (b *Board) PieceCount() int {
	n := 0
	b.each(func(*Piece) { n++ })
	return n
}

func (b *Board) PieceCountFor(color core.Color) int {
	n := 0
	b.each(func(p *Piece) {
		if p.color == color {
			n++
		}
	})
	return n
}

func (b *Board) each(fn func(*Piece)) {
	for row := range b.squares {
		for _, p := range b.squares[row] {
			if p != nil {
				fn(p)
			}
		}
	}
}

// MovePiece executes the move if it passes every check, flipping the turn.
// Any rejection returns false and leaves the board untouched.
func (b *Board) MovePiece(fromRow, fromCol, toRow, toCol int) bool {
	if !inBounds(fromRow, fromCol) || !inBounds(toRow, toCol) {
		return false
	}
	return b.TryMove(Coord{fromRow, fromCol}, Coord{toRow, toCol}).OK()
}

// TryMove runs the move protocol and reports the outcome. The checks run in
// order and stop at the first failure: source occupied, side to move, no
// self-capture, destination among the piece's pseudo-legal moves.
func (b *Board) TryMove(from, to Coord) MoveResult {
	res := MoveResult{From: from, To: to}

	if !inBounds(from.row, from.col) || !inBounds(to.row, to.col) {
		res.Reason = ReasonOutOfRange
		return res
	}

	piece := b.squares[from.row][from.col]
	if piece == nil {
		res.Reason = ReasonEmptySource
		return res
	}
	res.Piece = piece

	if piece.color != b.current {
		res.Reason = ReasonWrongTurn
		return res
	}

	target := b.squares[to.row][to.col]
	if target != nil && target.color == piece.color {
		res.Reason = ReasonSelfCapture
		return res
	}

	if !containsCoord(piece.PossibleMoves(b), to) {
		res.Reason = ReasonIllegalGeometry
		return res
	}

	b.squares[to.row][to.col] = piece
	b.squares[from.row][from.col] = nil
	piece.pos = to
	if piece.kind == Pawn {
		piece.hasMoved = true
	}
	b.current = b.current.Opposite()

	res.Captured = target
	res.Reason = ReasonOK
	return res
}

func containsCoord(list []Coord, c Coord) bool {
	for _, m := range list {
		if m == c {
			return true
		}
	}
	return false
}
