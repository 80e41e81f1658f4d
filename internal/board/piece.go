package board

import (
	"chessgrid/internal/core"
)

// Kind discriminates the six piece variants
type Kind byte

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	numKinds
)

var kindNames = [numKinds]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
var kindLetters = [numKinds]byte{'P', 'N', 'B', 'R', 'Q', 'K'}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "Unknown"
}

// Letter returns the upper-case FEN letter of the kind
func (k Kind) Letter() byte {
	if k < numKinds {
		return kindLetters[k]
	}
	return '?'
}

func kindFromLetter(ch byte) (Kind, bool) {
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	for k, l := range kindLetters {
		if l == ch {
			return Kind(k), true
		}
	}
	return 0, false
}

// Piece is owned by the Board that placed it. Its position always matches the
// grid cell referencing it; only the Board moves pieces.
type Piece struct {
	kind     Kind
	color    core.Color
	pos      Coord
	hasMoved bool // pawns only, gates the double step
}

func newPiece(kind Kind, color core.Color, pos Coord) *Piece {
	return &Piece{kind: kind, color: color, pos: pos}
}

func (p *Piece) Kind() Kind { return p.kind }
func (p *Piece) Color() core.Color { return p.color }
func (p *Piece) Position() Coord { return p.pos }
func (p *Piece) HasMoved() bool { return p.hasMoved }
func (p *Piece) IsEnemy(o *Piece) bool { return o != nil && o.color != p.color }

// Symbol is the two-character board label, e.g. "wP" or "bN"
func (p *Piece) Symbol() string {
	return string([]byte{p.color.String()[0], p.kind.Letter()})
}

// FENLetter is upper-case for White, lower-case for Black
func (p *Piece) FENLetter() byte {
	l := p.kind.Letter()
	if p.color == core.ColorBlack {
		l += 'a' - 'A'
	}
	return l
}

func (p *Piece) String() string {
	return p.color.Name() + " " + p.kind.String()
}

// SymbolName turns a symbol such as "bN" back into "Black Knight"
func SymbolName(symbol string) (string, bool) {
	if len(symbol) != 2 {
		return "", false
	}
	color, err := core.ParseColor(symbol[:1])
	if err != nil {
		return "", false
	}
	kind, ok := kindFromLetter(symbol[1])
	if !ok {
		return "", false
	}
	return color.Name() + " " + kind.String(), true
}

// CanPromote reports whether a pawn stands on the opposing back rank.
// Nothing acts on it; promotion is not performed by the engine.
func (p *Piece) CanPromote() bool {
	if p.kind != Pawn {
		return false
	}
	return p.pos.row == promotionRow(p.color)
}

// PossibleMoves returns the pseudo-legal destinations of p on v. It has no side
// effects and ignores king safety.
func (p *Piece) PossibleMoves(v View) []Coord {
	return generators[p.kind](p, v)
}
