// Package player keeps per-colour bookkeeping: the pieces a side still has
// on the board and the opposing pieces it has captured.
package player

import (
	"fmt"

	"chessgrid/internal/board"
	"chessgrid/internal/core"

	"github.com/google/uuid"
)

// Player is a derived view of one side. The board stays authoritative;
// Refresh rebuilds the live-piece list from it.
type Player struct {
	ID       string
	color    core.Color
	pieces   []*board.Piece
	captured []*board.Piece
}

func New(color core.Color) *Player {
	return &Player{
		ID:    uuid.New().String(),
		color: color,
	}
}

func (p *Player) Color() core.Color {
	return p.color
}

// Refresh scans all 64 squares and collects this colour's pieces in
// row-major order
func (p *Player) Refresh(v board.View) {
	p.pieces = p.pieces[:0]
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			pc := v.PieceAt(board.MustCoord(row, col))
			if pc != nil && pc.Color() == p.color {
				p.pieces = append(p.pieces, pc)
			}
		}
	}
}

// Pieces returns a copy of the live-piece list as of the last Refresh
func (p *Player) Pieces() []*board.Piece {
	return append([]*board.Piece(nil), p.pieces...)
}

func (p *Player) Captured() []*board.Piece {
	return append([]*board.Piece(nil), p.captured...)
}

// AddCaptured records an opposing piece taken by this side
func (p *Player) AddCaptured(pc *board.Piece) error {
	if pc == nil {
		return fmt.Errorf("captured piece is nil")
	}
	if pc.Color() == p.color {
		return fmt.Errorf("%s cannot capture own %s", p.color.Name(), pc.Kind())
	}
	p.captured = append(p.captured, pc)
	return nil
}

func (p *Player) ClearCaptured() {
	p.captured = nil
}

func (p *Player) PieceCount() int { return len(p.pieces) }
func (p *Player) CapturedCount() int { return len(p.captured) }
func (p *Player) HasPieces() bool { return len(p.pieces) > 0 }

func (p *Player) String() string {
	return fmt.Sprintf("%s: %d pieces, %d captured", p.color.Name(), len(p.pieces), len(p.captured))
}
