package board

import (
	"chessgrid/internal/core"
)

// View is a read-only view of the grid consulted by move generation
type View interface {
	PieceAt(c Coord) *Piece
}

// Grid is a snapshot of the 64 cells. The pieces are shared with the board
// but expose no mutators.
type Grid [Size][Size]*Piece

func (g *Grid) PieceAt(c Coord) *Piece {
	return g[c.row][c.col]
}

type direction struct{ dr, dc int }

var (
	knightOffsets = []direction{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	diagonals  = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonal = []direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allLines   = append(append([]direction{}, diagonals...), orthogonal...)
)

type generator func(p *Piece, v View) []Coord

// generators is indexed by Kind; every kind must have an entry
var generators = [numKinds]generator{
	Pawn:   pawnMoves,
	Knight: func(p *Piece, v View) []Coord { return stepMoves(p, v, knightOffsets) },
	Bishop: func(p *Piece, v View) []Coord { return rayMoves(p, v, diagonals) },
	Rook:   func(p *Piece, v View) []Coord { return rayMoves(p, v, orthogonal) },
	Queen:  func(p *Piece, v View) []Coord { return rayMoves(p, v, allLines) },
	King:   func(p *Piece, v View) []Coord { return stepMoves(p, v, allLines) },
}

// stepMoves handles the single-jump pieces: each offset lands on an empty or enemy square
func stepMoves(p *Piece, v View, offsets []direction) []Coord {
	moves := make([]Coord, 0, len(offsets))
	for _, d := range offsets {
		to, ok := p.pos.offset(d.dr, d.dc)
		if !ok {
			continue
		}
		if target := v.PieceAt(to); target == nil || p.IsEnemy(target) {
			moves = append(moves, to)
		}
	}
	return moves
}

// rayMoves walks each direction until the edge, an own piece (excluded)
// or an enemy piece (included, then stop)
func rayMoves(p *Piece, v View, dirs []direction) []Coord {
	var moves []Coord
	for _, d := range dirs {
		cur := p.pos
		for {
			next, ok := cur.offset(d.dr, d.dc)
			if !ok {
				break
			}
			target := v.PieceAt(next)
			if target == nil {
				moves = append(moves, next)
				cur = next
				continue
			}
			if p.IsEnemy(target) {
				moves = append(moves, next)
			}
			break
		}
	}
	return moves
}

func pawnDirection(c core.Color) int {
	if c == core.ColorWhite {
		return -1
	}
	return 1
}

func pawnStartRow(c core.Color) int {
	if c == core.ColorWhite {
		return 6
	}
	return 1
}

func promotionRow(c core.Color) int {
	if c == core.ColorWhite {
		return 0
	}
	return 7
}

func pawnMoves(p *Piece, v View) []Coord {
	var moves []Coord
	dir := pawnDirection(p.color)

	// Forward, never capturing
	if one, ok := p.pos.offset(dir, 0); ok && v.PieceAt(one) == nil {
		moves = append(moves, one)
		if p.pos.row == pawnStartRow(p.color) && !p.hasMoved {
			if two, ok := p.pos.offset(2*dir, 0); ok && v.PieceAt(two) == nil {
				moves = append(moves, two)
			}
		}
	}

	// Diagonal captures only
	for _, dc := range []int{-1, 1} {
		if diag, ok := p.pos.offset(dir, dc); ok && p.IsEnemy(v.PieceAt(diag)) {
			moves = append(moves, diag)
		}
	}
	return moves
}
