package tui

import (
	"fmt"

	"chessgrid/internal/board"
	"chessgrid/internal/game"
	"chessgrid/internal/service"
)

// Mover is the part of the service the board needs
type Mover interface {
	GetGame(gameID string) (game.Snapshot, error)
	PossibleMoves(gameID, square string) ([]string, error)
	MakeMove(gameID, from, to string) (service.MoveOutcome, error)
}

// State of the click sequence
type State int

const (
	StateIdle State = iota
	StateSelected
)

// Selector turns square clicks into moves: the first click picks a piece of
// the side to move, the second click tries to move it there.
type Selector struct {
	svc      Mover
	gameID   string
	state    State
	selected string
	targets  []string
	message  string
}

func NewSelector(svc Mover, gameID string) *Selector {
	s := &Selector{svc: svc, gameID: gameID}
	if snap, err := svc.GetGame(gameID); err == nil {
		s.message = fmt.Sprintf("%s to move", snap.Turn.Name())
	}
	return s
}

func (s *Selector) State() State { return s.state }
func (s *Selector) Selected() string { return s.selected }
func (s *Selector) Message() string { return s.message }

// Targets returns the destinations highlighted for the selected piece
func (s *Selector) Targets() []string {
	return append([]string(nil), s.targets...)
}

// IsTarget reports whether square is highlighted
func (s *Selector) IsTarget(square string) bool {
	for _, t := range s.targets {
		if t == square {
			return true
		}
	}
	return false
}

// Clear drops the current selection
func (s *Selector) Clear() {
	s.state = StateIdle
	s.selected = ""
	s.targets = nil
}

// Click handles a click on (row, col). It returns true when a move was
// accepted and the board must be redrawn from the new position.
func (s *Selector) Click(row, col int) (bool, error) {
	square, ok := board.CoordsToNotation(row, col)
	if !ok {
		return false, fmt.Errorf("click outside board: (%d, %d)", row, col)
	}

	snap, err := s.svc.GetGame(s.gameID)
	if err != nil {
		return false, err
	}
	b, err := board.ParseFEN(snap.FEN)
	if err != nil {
		return false, err
	}
	pc := b.PieceAt(board.MustCoord(row, col))

	if s.state == StateSelected {
		if square == s.selected {
			s.Clear()
			s.message = fmt.Sprintf("%s to move", snap.Turn.Name())
			return false, nil
		}
		// Another own piece switches the selection instead of capturing it
		if pc == nil || pc.Color() != snap.Turn {
			return s.attempt(square)
		}
	}

	return false, s.pick(square, pc, snap)
}

func (s *Selector) pick(square string, pc *board.Piece, snap game.Snapshot) error {
	s.Clear()
	switch {
	case pc == nil:
		s.message = fmt.Sprintf("%s is empty", square)
		return nil
	case pc.Color() != snap.Turn:
		s.message = fmt.Sprintf("It's %s's turn.", snap.Turn.Name())
		return nil
	}

	targets, err := s.svc.PossibleMoves(s.gameID, square)
	if err != nil {
		return err
	}
	s.state = StateSelected
	s.selected = square
	s.targets = targets
	if len(targets) == 0 {
		s.message = fmt.Sprintf("%s on %s has no moves", pc, square)
	} else {
		s.message = fmt.Sprintf("%s on %s selected", pc, square)
	}
	return nil
}

func (s *Selector) attempt(to string) (bool, error) {
	from := s.selected
	s.Clear()

	out, err := s.svc.MakeMove(s.gameID, from, to)
	if err != nil {
		return false, err
	}
	if !out.Accepted {
		s.message = fmt.Sprintf("%s to %s rejected: %s", from, to, out.Reason)
		return false, nil
	}

	s.message = fmt.Sprintf("%s to %s. %s to move", from, to, out.Game.Turn.Name())
	if m := out.Game.LastMove; m != nil && m.Captured != "" {
		name, _ := board.SymbolName(m.Captured)
		s.message = fmt.Sprintf("%s to %s takes %s. %s to move", from, to, name, out.Game.Turn.Name())
	}
	return true, nil
}
