package game

import (
	"errors"
	"testing"

	"chessgrid/internal/board"
	"chessgrid/internal/core"

	"github.com/google/go-cmp/cmp"
)

func TestMoveAndTurn(t *testing.T) {
	g := New("g1", "brave-otter")

	res, err := g.Move("e2", "e4")
	if err != nil {
		t.Fatalf("Move(e2, e4) failed: %v", err)
	}
	if !res.OK() {
		t.Fatalf("Move(e2, e4) rejected: %v", res.Reason)
	}
	if g.Turn() != core.ColorBlack {
		t.Errorf("Turn() = %s; want Black", g.Turn().Name())
	}

	want := &Move{Number: 1, From: "E2", To: "E4", Piece: "wP", Color: core.ColorWhite}
	if diff := cmp.Diff(want, g.LastMove()); diff != "" {
		t.Errorf("LastMove mismatch (-want +got):\n%s", diff)
	}
	if g.Version() != 1 || g.MoveCount() != 1 {
		t.Errorf("version/moves = %d/%d; want 1/1", g.Version(), g.MoveCount())
	}
}

func TestRejectedMoveKeepsState(t *testing.T) {
	g := New("g1", "")
	before := g.Snapshot()

	res, err := g.Move("E7", "E5")
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if res.Reason != board.ReasonWrongTurn {
		t.Errorf("Reason = %v; want wrong turn", res.Reason)
	}
	if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
		t.Errorf("snapshot changed on rejection (-before +after):\n%s", diff)
	}
}

func TestMoveInputErrors(t *testing.T) {
	g := New("g1", "")
	tests := []struct {
		from, to string
		want     error
	}{
		{"Z9", "E4", ErrInvalidSquare},
		{"E2", "", ErrInvalidSquare},
		{"E2", "E22", ErrInvalidSquare},
		{"E2", "e2", ErrSameSquare},
	}
	for _, tt := range tests {
		if _, err := g.Move(tt.from, tt.to); !errors.Is(err, tt.want) {
			t.Errorf("Move(%q, %q) error = %v; want %v", tt.from, tt.to, err, tt.want)
		}
	}
	if g.Version() != 0 {
		t.Error("input errors changed the game")
	}
}

func TestCaptureIsRecorded(t *testing.T) {
	g, err := FromFEN("g1", "", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN failed: %v", err)
	}

	if _, err := g.Move("E4", "D5"); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	st := g.Status()
	if diff := cmp.Diff([]string{"bP"}, st.White.Captured); diff != "" {
		t.Errorf("white captures mismatch (-want +got):\n%s", diff)
	}
	if st.Black.Pieces != 1 || st.White.Pieces != 2 {
		t.Errorf("pieces white/black = %d/%d; want 2/1", st.White.Pieces, st.Black.Pieces)
	}
	if g.LastMove().Captured != "bP" {
		t.Errorf("LastMove().Captured = %q; want bP", g.LastMove().Captured)
	}
	if g.MoveCount() != 1 || g.Version() != 1 {
		t.Errorf("move count/version = %d/%d; want 1/1", g.MoveCount(), g.Version())
	}
	if want := "4k3/8/8/3P4/8/8/8/4K3 b - - 0 1"; g.FEN() != want {
		t.Errorf("FEN() = %s; want %s", g.FEN(), want)
	}
}

func TestReset(t *testing.T) {
	g, err := FromFEN("g1", "", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN failed: %v", err)
	}
	g.Move("E4", "D5")
	v := g.Version()

	g.Reset()
	if g.FEN() != board.StartingFEN {
		t.Errorf("FEN() = %s; want %s", g.FEN(), board.StartingFEN)
	}
	if g.Version() <= v {
		t.Error("Reset did not bump the version")
	}
	if g.LastMove() != nil || g.MoveCount() != 0 {
		t.Error("Reset kept move bookkeeping")
	}
	st := g.Status()
	if len(st.White.Captured) != 0 || st.White.Pieces != 16 || st.Black.Pieces != 16 {
		t.Errorf("status after reset = %+v", st)
	}
}

func TestPossibleMoves(t *testing.T) {
	g := New("g1", "")

	got, err := g.PossibleMoves("b1")
	if err != nil {
		t.Fatalf("PossibleMoves failed: %v", err)
	}
	if diff := cmp.Diff([]string{"A3", "C3"}, got); diff != "" {
		t.Errorf("knight moves mismatch (-want +got):\n%s", diff)
	}

	got, err = g.PossibleMoves("E5")
	if err != nil || len(got) != 0 {
		t.Errorf("PossibleMoves(E5) = %v, %v; want empty", got, err)
	}

	if _, err := g.PossibleMoves("X1"); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("PossibleMoves(X1) error = %v; want ErrInvalidSquare", err)
	}
}

func TestFromFENErrors(t *testing.T) {
	if _, err := FromFEN("g1", "", "not a fen"); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("FromFEN error = %v; want ErrInvalidFEN", err)
	}
}

func TestSnapshotFullmove(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves [][2]string
		want  []string // FEN after creation, then after each move
	}{
		{
			name:  "white starts",
			fen:   board.StartingFEN,
			moves: [][2]string{{"E2", "E4"}, {"E7", "E5"}},
			want: []string{
				board.StartingFEN,
				"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1",
				"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 2",
			},
		},
		{
			name:  "black starts",
			fen:   "4k3/4p3/8/8/8/8/4P3/4K3 b - - 0 7",
			moves: [][2]string{{"E7", "E5"}, {"E2", "E4"}, {"E8", "D8"}},
			want: []string{
				"4k3/4p3/8/8/8/8/4P3/4K3 b - - 0 7",
				"4k3/8/8/4p3/8/8/4P3/4K3 w - - 0 8",
				"4k3/8/8/4p3/4P3/8/8/4K3 b - - 0 8",
				"3k4/8/8/4p3/4P3/8/8/4K3 w - - 0 9",
			},
		},
		{
			name:  "white starts late",
			fen:   "4k3/8/8/8/8/8/8/4K3 w - - 0 30",
			moves: [][2]string{{"E1", "E2"}, {"E8", "E7"}},
			want: []string{
				"4k3/8/8/8/8/8/8/4K3 w - - 0 30",
				"4k3/8/8/8/8/8/4K3/8 b - - 0 30",
				"8/4k3/8/8/8/8/4K3/8 w - - 0 31",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromFEN("g1", "", tt.fen)
			if err != nil {
				t.Fatalf("FromFEN failed: %v", err)
			}
			got := []string{g.Snapshot().FEN}
			for _, m := range tt.moves {
				res, err := g.Move(m[0], m[1])
				if err != nil || !res.OK() {
					t.Fatalf("Move(%s, %s) = %v, %v", m[0], m[1], res.Reason, err)
				}
				got = append(got, g.Snapshot().FEN)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FEN sequence mismatch (-want +got):\n%s", diff)
			}
			if g.InitialFEN() != tt.want[0] {
				t.Errorf("InitialFEN() = %s; want %s", g.InitialFEN(), tt.want[0])
			}
		})
	}
}

func TestResetRestartsFullmove(t *testing.T) {
	g, err := FromFEN("g1", "", "4k3/4p3/8/8/8/8/4P3/4K3 b - - 0 7")
	if err != nil {
		t.Fatalf("FromFEN failed: %v", err)
	}
	g.Move("E7", "E5")
	g.Reset()
	if g.FEN() != board.StartingFEN {
		t.Errorf("FEN() = %s; want %s", g.FEN(), board.StartingFEN)
	}
	g.Move("E2", "E4")
	g.Move("E7", "E5")
	if want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 2"; g.FEN() != want {
		t.Errorf("FEN() = %s; want %s", g.FEN(), want)
	}
}
