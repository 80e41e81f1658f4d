package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"chessgrid/internal/board"
	"chessgrid/internal/core"
	"chessgrid/internal/player"
)

var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrSameSquare    = errors.New("source and destination are the same square")
)

// Move describes an executed move
type Move struct {
	Number   int
	From     string
	To       string
	Piece    string // symbol such as "wN"
	Captured string // symbol of the taken piece, empty when nothing was taken
	Color    core.Color
}

// Game ties a board to its two players. It is not safe for concurrent use.
type Game struct {
	id         string
	name       string
	initialFEN string
	createdAt  time.Time
	board      *board.Board
	players    map[core.Color]*player.Player
	startMove  int        // fullmove number of the starting position
	startTurn  core.Color // side to move in the starting position
	moveCount  int
	version    int
	lastMove   *Move
}

// New starts a game from the standard opening position
func New(id, name string) *Game {
	return newGame(id, name, board.New(), 1)
}

// FromFEN starts a game from an arbitrary position
func FromFEN(id, name, fen string) (*Game, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	fullmove, err := board.ParseFullmove(fen)
	if err != nil {
		return nil, err
	}
	return newGame(id, name, b, fullmove), nil
}

func newGame(id, name string, b *board.Board, fullmove int) *Game {
	g := &Game{
		id:         id,
		name:       name,
		initialFEN: b.FEN(fullmove),
		createdAt:  time.Now().UTC(),
		board:      b,
		startMove:  fullmove,
		startTurn:  b.CurrentPlayer(),
		players: map[core.Color]*player.Player{
			core.ColorWhite: player.New(core.ColorWhite),
			core.ColorBlack: player.New(core.ColorBlack),
		},
	}
	g.refresh()
	return g
}

func (g *Game) refresh() {
	for _, p := range g.players {
		p.Refresh(g.board)
	}
}

func (g *Game) ID() string { return g.id }
func (g *Game) Name() string { return g.name }
func (g *Game) InitialFEN() string { return g.initialFEN }
func (g *Game) CreatedAt() time.Time { return g.createdAt }
func (g *Game) Turn() core.Color { return g.board.CurrentPlayer() }
func (g *Game) MoveCount() int { return g.moveCount }
func (g *Game) Version() int { return g.version }
func (g *Game) LastMove() *Move { return g.lastMove }
func (g *Game) Player(color core.Color) *player.Player { return g.players[color] }
func (g *Game) FEN() string { return g.board.FEN(g.fullmove()) }

// fullmove advances after each Black move, counted from the starting position
func (g *Game) fullmove() int {
	plies := g.moveCount
	if g.startTurn == core.ColorBlack {
		plies++
	}
	return g.startMove + plies/2
}

func parseSquare(text string) (board.Coord, error) {
	c, ok := board.NotationToCoords(strings.TrimSpace(text))
	if !ok {
		return board.Coord{}, fmt.Errorf("%w: %q", ErrInvalidSquare, text)
	}
	return c, nil
}

// Move parses both squares and runs the board's move protocol. Malformed
// input is an error; a rejected move is reported through the result's Reason
// with a nil error.
func (g *Game) Move(from, to string) (board.MoveResult, error) {
	src, err := parseSquare(from)
	if err != nil {
		return board.MoveResult{}, err
	}
	dst, err := parseSquare(to)
	if err != nil {
		return board.MoveResult{}, err
	}
	if src == dst {
		return board.MoveResult{}, fmt.Errorf("%w: %s", ErrSameSquare, src)
	}

	res := g.board.TryMove(src, dst)
	if !res.OK() {
		return res, nil
	}

	mover := res.Piece.Color()
	if res.Captured != nil {
		// TryMove rejects landing on an own piece, so this cannot fail
		_ = g.players[mover].AddCaptured(res.Captured)
	}
	g.moveCount++
	g.version++
	g.lastMove = &Move{
		Number: g.moveCount,
		From:   src.String(),
		To:     dst.String(),
		Piece:  res.Piece.Symbol(),
		Color:  mover,
	}
	if res.Captured != nil {
		g.lastMove.Captured = res.Captured.Symbol()
	}
	g.refresh()

	return res, nil
}

// Reset restores the opening position and clears capture lists. The version
// keeps increasing so waiting readers see the change.
func (g *Game) Reset() {
	g.board.Reset()
	g.initialFEN = board.StartingFEN
	g.startMove = 1
	g.startTurn = core.ColorWhite
	g.moveCount = 0
	g.lastMove = nil
	g.version++
	for _, p := range g.players {
		p.ClearCaptured()
	}
	g.refresh()
}

// PossibleMoves lists the pseudo-legal destinations of the piece on square,
// empty when the square is empty
func (g *Game) PossibleMoves(square string) ([]string, error) {
	c, err := parseSquare(square)
	if err != nil {
		return nil, err
	}
	p := g.board.PieceAt(c)
	if p == nil {
		return []string{}, nil
	}
	moves := p.PossibleMoves(g.board)
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return out, nil
}

// SideStatus is one player's bookkeeping
type SideStatus struct {
	PlayerID string
	Color    core.Color
	Pieces   int
	Captured []string
}

type Status struct {
	Turn  core.Color
	White SideStatus
	Black SideStatus
}

func (g *Game) Status() Status {
	return Status{
		Turn:  g.Turn(),
		White: g.side(core.ColorWhite),
		Black: g.side(core.ColorBlack),
	}
}

func (g *Game) side(color core.Color) SideStatus {
	p := g.players[color]
	captured := make([]string, 0, p.CapturedCount())
	for _, c := range p.Captured() {
		captured = append(captured, c.Symbol())
	}
	return SideStatus{
		PlayerID: p.ID,
		Color:    color,
		Pieces:   p.PieceCount(),
		Captured: captured,
	}
}

// Snapshot is a value copy of a game for readers outside the lock
type Snapshot struct {
	ID        string
	Name      string
	FEN       string
	ASCII     string
	Turn      core.Color
	MoveCount int
	Version   int
	LastMove  *Move
	Status    Status
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		ID:        g.id,
		Name:      g.name,
		FEN:       g.FEN(),
		ASCII:     g.board.ToASCII(),
		Turn:      g.Turn(),
		MoveCount: g.moveCount,
		Version:   g.version,
		Status:    g.Status(),
	}
	if g.lastMove != nil {
		m := *g.lastMove
		s.LastMove = &m
	}
	return s
}
