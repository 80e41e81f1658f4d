package tui

import (
	"errors"
	"testing"

	"chessgrid/internal/board"
	"chessgrid/internal/core"
	"chessgrid/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, fen string) (*service.Service, string) {
	t.Helper()
	svc, err := service.New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	snap, err := svc.CreateGame(fen)
	require.NoError(t, err)
	return svc, snap.ID
}

func click(t *testing.T, s *Selector, square string) bool {
	t.Helper()
	c, err := board.ParseSquare(square)
	require.NoError(t, err)
	moved, err := s.Click(c.Row(), c.Col())
	require.NoError(t, err)
	return moved
}

func TestSelectAndMove(t *testing.T) {
	svc, id := newGame(t, "")
	s := NewSelector(svc, id)

	assert.False(t, click(t, s, "G1"))
	assert.Equal(t, StateSelected, s.State())
	assert.Equal(t, "G1", s.Selected())
	assert.ElementsMatch(t, []string{"F3", "H3"}, s.Targets())
	assert.True(t, s.IsTarget("F3"))

	assert.True(t, click(t, s, "F3"))
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.Targets())
	assert.Equal(t, "G1 to F3. Black to move", s.Message())

	snap, err := svc.GetGame(id)
	require.NoError(t, err)
	assert.Equal(t, core.ColorBlack, snap.Turn)
}

func TestInitialMessageFollowsTurn(t *testing.T) {
	svc, id := newGame(t, "")
	assert.Equal(t, "White to move", NewSelector(svc, id).Message())

	svc, id = newGame(t, "4k3/4p3/8/8/8/8/4P3/4K3 b - - 0 7")
	s := NewSelector(svc, id)
	assert.Equal(t, "Black to move", s.Message())

	assert.False(t, click(t, s, "E2"))
	assert.Equal(t, "It's Black's turn.", s.Message())
}

func TestSelectRules(t *testing.T) {
	svc, id := newGame(t, "")
	s := NewSelector(svc, id)

	t.Run("empty square", func(t *testing.T) {
		click(t, s, "E4")
		assert.Equal(t, StateIdle, s.State())
		assert.Equal(t, "E4 is empty", s.Message())
	})

	t.Run("opponent piece", func(t *testing.T) {
		click(t, s, "E7")
		assert.Equal(t, StateIdle, s.State())
		assert.Equal(t, "It's White's turn.", s.Message())
	})

	t.Run("same square deselects", func(t *testing.T) {
		click(t, s, "E2")
		require.Equal(t, StateSelected, s.State())
		click(t, s, "E2")
		assert.Equal(t, StateIdle, s.State())
		assert.Empty(t, s.Selected())
	})

	t.Run("own piece switches selection", func(t *testing.T) {
		click(t, s, "E2")
		click(t, s, "B1")
		assert.Equal(t, "B1", s.Selected())
		assert.ElementsMatch(t, []string{"A3", "C3"}, s.Targets())
		s.Clear()
	})

	t.Run("blocked piece", func(t *testing.T) {
		click(t, s, "A1")
		assert.Equal(t, StateSelected, s.State())
		assert.Empty(t, s.Targets())
		assert.Equal(t, "White Rook on A1 has no moves", s.Message())
		s.Clear()
	})
}

func TestRejectedAttempt(t *testing.T) {
	svc, id := newGame(t, "")
	s := NewSelector(svc, id)

	click(t, s, "G1")
	assert.False(t, click(t, s, "G4"))
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, "G1 to G4 rejected: "+board.ReasonIllegalGeometry.String(), s.Message())

	snap, err := svc.GetGame(id)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.MoveCount)
}

func TestCaptureMessage(t *testing.T) {
	svc, id := newGame(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	s := NewSelector(svc, id)

	click(t, s, "E4")
	assert.True(t, click(t, s, "D5"))
	assert.Equal(t, "E4 to D5 takes Black Pawn. Black to move", s.Message())
}

func TestClickOutsideBoard(t *testing.T) {
	svc, id := newGame(t, "")
	s := NewSelector(svc, id)

	_, err := s.Click(8, 0)
	assert.Error(t, err)

	s = NewSelector(svc, "missing")
	_, err = s.Click(0, 0)
	assert.True(t, errors.Is(err, service.ErrGameNotFound))
}
