package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"chessgrid/internal/board"
	"chessgrid/internal/core"
	"chessgrid/internal/game"
	"chessgrid/internal/storage"
)

// MoveOutcome is the result of MakeMove. A rejected move is not an error:
// Accepted is false, Reason says why and Game is the unchanged position.
type MoveOutcome struct {
	Game     game.Snapshot
	Accepted bool
	Reason   board.Reason
	Piece    string // symbol of the piece on the source square, empty if none
}

// CreateGame starts a game from the opening position, or from fen when it is
// not empty, under a fresh ID
func (s *Service) CreateGame(fen string) (game.Snapshot, error) {
	id := s.GenerateGameID()
	name := generateName()

	var g *game.Game
	if strings.TrimSpace(fen) == "" {
		g = game.New(id, name)
	} else {
		var err error
		if g, err = game.FromFEN(id, name, fen); err != nil {
			return game.Snapshot{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return game.Snapshot{}, ErrGameExists
	}
	s.games[id] = g

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:        id,
			Name:          name,
			InitialFEN:    g.InitialFEN(),
			WhitePlayerID: g.Player(core.ColorWhite).ID,
			BlackPlayerID: g.Player(core.ColorBlack).ID,
			StartTimeUTC:  g.CreatedAt(),
		})
	}

	return g.Snapshot(), nil
}

// GetGame returns a snapshot of the game
func (s *Service) GetGame(gameID string) (game.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return game.Snapshot{}, notFound(gameID)
	}
	return g.Snapshot(), nil
}

// ListGames returns snapshots of all games ordered by creation time
func (s *Service) ListGames() []game.Snapshot {
	s.mu.RLock()
	games := make([]*game.Game, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		if games[i].CreatedAt().Equal(games[j].CreatedAt()) {
			return games[i].ID() < games[j].ID()
		}
		return games[i].CreatedAt().Before(games[j].CreatedAt())
	})
	out := make([]game.Snapshot, 0, len(games))
	for _, g := range games {
		out = append(out, g.Snapshot())
	}
	s.mu.RUnlock()

	return out
}

// MakeMove applies a move given in square notation. Malformed squares return
// an error wrapping game.ErrInvalidSquare or game.ErrSameSquare.
func (s *Service) MakeMove(gameID, from, to string) (MoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return MoveOutcome{}, notFound(gameID)
	}

	res, err := g.Move(from, to)
	if err != nil {
		return MoveOutcome{}, err
	}
	out := MoveOutcome{Game: g.Snapshot(), Accepted: res.OK(), Reason: res.Reason}
	if res.Piece != nil {
		out.Piece = res.Piece.Symbol()
	}
	if !res.OK() {
		return out, nil
	}

	s.waiter.NotifyGame(gameID, g.Version())

	if s.store != nil {
		record := storage.MoveRecord{
			GameID:       gameID,
			MoveNumber:   g.MoveCount(),
			FromSquare:   res.From.String(),
			ToSquare:     res.To.String(),
			Piece:        res.Piece.Symbol(),
			PlayerColor:  res.Piece.Color().String(),
			FENAfterMove: out.Game.FEN,
			MoveTimeUTC:  time.Now().UTC(),
		}
		if res.Captured != nil {
			record.Captured = res.Captured.Symbol()
		}
		s.store.RecordMove(record)
	}

	return out, nil
}

// ResetGame puts the game back to the opening position
func (s *Service) ResetGame(gameID string) (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return game.Snapshot{}, notFound(gameID)
	}

	g.Reset()
	s.waiter.NotifyGame(gameID, g.Version())

	if s.store != nil {
		s.store.RecordReset(gameID, g.InitialFEN())
	}

	return g.Snapshot(), nil
}

// Status returns per-colour bookkeeping for the game
func (s *Service) Status(gameID string) (game.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return game.Status{}, notFound(gameID)
	}
	return g.Status(), nil
}

// PossibleMoves lists pseudo-legal destinations for the piece on square
func (s *Service) PossibleMoves(gameID, square string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, notFound(gameID)
	}
	return g.PossibleMoves(square)
}

// DeleteGame removes a game from memory. Its audit records stay in storage.
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return notFound(gameID)
	}

	// Release waiters before the game disappears
	s.waiter.RemoveGame(gameID)

	delete(s.games, gameID)
	return nil
}

// WaitForChange blocks until the game's version differs from version, the
// wait times out or ctx is done, then returns the current snapshot. It
// returns immediately when the caller is already behind.
func (s *Service) WaitForChange(ctx context.Context, gameID string, version int) (game.Snapshot, error) {
	s.mu.RLock()
	g, ok := s.games[gameID]
	if !ok {
		s.mu.RUnlock()
		return game.Snapshot{}, notFound(gameID)
	}
	if g.Version() != version {
		snap := g.Snapshot()
		s.mu.RUnlock()
		return snap, nil
	}
	// Register under the read lock so a concurrent move cannot slip
	// between the version check and the registration
	notify := s.waiter.RegisterWait(ctx, gameID, version)
	s.mu.RUnlock()

	select {
	case <-notify:
	case <-ctx.Done():
	}

	return s.GetGame(gameID)
}
