package player

import (
	"testing"

	"chessgrid/internal/board"
	"chessgrid/internal/core"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshInitialPosition(t *testing.T) {
	b := board.New()
	white, black := New(core.ColorWhite), New(core.ColorBlack)
	white.Refresh(b)
	black.Refresh(b)

	assert.Equal(t, 16, white.PieceCount())
	assert.Equal(t, 16, black.PieceCount())
	assert.True(t, white.HasPieces())

	for _, p := range white.Pieces() {
		assert.Equal(t, core.ColorWhite, p.Color())
	}

	// row-major order: black's back rank comes first
	first := black.Pieces()[0]
	assert.Equal(t, board.Rook, first.Kind())
	assert.Equal(t, "A8", first.Position().String())
}

func TestRefreshTracksCaptures(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	white, black := New(core.ColorWhite), New(core.ColorBlack)
	black.Refresh(b)
	require.Equal(t, 2, black.PieceCount())

	from, _ := board.NotationToCoords("E4")
	to, _ := board.NotationToCoords("D5")
	res := b.TryMove(from, to)
	require.True(t, res.OK())
	require.NoError(t, white.AddCaptured(res.Captured))

	black.Refresh(b)
	assert.Equal(t, 1, black.PieceCount())
	assert.Equal(t, 1, white.CapturedCount())
	assert.Equal(t, board.Pawn, white.Captured()[0].Kind())
}

func TestAddCapturedRejectsOwnPiece(t *testing.T) {
	b := board.New()
	white := New(core.ColorWhite)
	own, err := b.GetPiece(7, 0)
	require.NoError(t, err)

	assert.Error(t, white.AddCaptured(own))
	assert.Error(t, white.AddCaptured(nil))
	assert.Zero(t, white.CapturedCount())
}

func TestCopiesAreIndependent(t *testing.T) {
	b := board.New()
	white := New(core.ColorWhite)
	white.Refresh(b)

	pieces := white.Pieces()
	pieces[0] = nil
	assert.NotNil(t, white.Pieces()[0])

	enemy, _ := b.GetPiece(0, 0)
	require.NoError(t, white.AddCaptured(enemy))
	captured := white.Captured()
	captured[0] = nil
	assert.NotNil(t, white.Captured()[0])

	white.ClearCaptured()
	assert.Zero(t, white.CapturedCount())
}

func TestEmptyBoard(t *testing.T) {
	p := New(core.ColorBlack)
	p.Refresh(board.NewEmpty(core.ColorWhite))
	assert.False(t, p.HasPieces())
	assert.Equal(t, "Black: 0 pieces, 0 captured", p.String())

	_, err := uuid.Parse(p.ID)
	assert.NoError(t, err)
}
