package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chessgrid/internal/core"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// ParseFEN builds a board from the placement and side-to-move fields.
// Castling, en passant and halfmove fields are accepted but ignored since the
// engine has no use for them. The fullmove field is checked here and read
// with ParseFullmove.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 || len(parts) > 6 {
		return nil, fmt.Errorf("%w: expected 2 to 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	var turn core.Color
	switch parts[1] {
	case "w":
		turn = core.ColorWhite
	case "b":
		turn = core.ColorBlack
	default:
		return nil, fmt.Errorf("%w: turn must be 'w' or 'b'", ErrInvalidFEN)
	}
	if len(parts) == 6 {
		if _, err := ParseFullmove(fen); err != nil {
			return nil, err
		}
	}
	b := NewEmpty(turn)

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != Size {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for r := 0; r < Size; r++ {
		file := 0
		for i := 0; i < len(ranks[r]); i++ {
			ch := ranks[r][i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			kind, ok := kindFromLetter(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q in rank %d", ErrInvalidFEN, ch, 8-r)
			}
			if file >= Size {
				return nil, fmt.Errorf("%w: too many pieces in rank %d", ErrInvalidFEN, 8-r)
			}
			color := core.ColorWhite
			if ch >= 'a' && ch <= 'z' {
				color = core.ColorBlack
			}
			p := b.put(kind, color, Coord{r, file})
			// A pawn off its starting rank can no longer double step
			if kind == Pawn && r != pawnStartRow(color) {
				p.hasMoved = true
			}
			file++
		}
		if file != Size {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, 8-r, file)
		}
	}

	return b, nil
}

// ParseFullmove returns the sixth FEN field, 1 when the field is absent
func ParseFullmove(fen string) (int, error) {
	parts := strings.Fields(fen)
	if len(parts) < 6 {
		return 1, nil
	}
	n, err := strconv.Atoi(parts[5])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: fullmove number must be a positive integer, got %q", ErrInvalidFEN, parts[5])
	}
	return n, nil
}

// Placement returns the first FEN field
func (b *Board) Placement() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		empty := 0
		for f := 0; f < Size; f++ {
			p := b.squares[r][f]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.FENLetter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r < Size-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// FEN renders the position. Castling and en passant are always "-" and the
// halfmove clock 0 since the engine tracks neither.
func (b *Board) FEN(fullmove int) string {
	if fullmove < 1 {
		fullmove = 1
	}
	return fmt.Sprintf("%s %s - - 0 %d", b.Placement(), b.current, fullmove)
}
