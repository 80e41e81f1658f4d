package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chess.db")
	s, err := Open(path, false)
	require.NoError(t, err)
	require.NoError(t, s.InitDB())
	return s, path
}

// reopen closes s, which drains queued writes, and opens the same file again
func reopen(t *testing.T, s *Store, path string) *Store {
	t.Helper()
	require.NoError(t, s.Close())
	s2, err := Open(path, false)
	require.NoError(t, err)
	t.Cleanup(func() { s2.Close() })
	return s2
}

func TestRecordGameAndMoves(t *testing.T) {
	s, path := openTemp(t)
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, s.RecordNewGame(GameRecord{
		GameID:        "g1",
		Name:          "quiet-heron",
		InitialFEN:    "start",
		WhitePlayerID: "w1",
		BlackPlayerID: "b1",
		StartTimeUTC:  now,
	}))
	require.NoError(t, s.RecordMove(MoveRecord{
		GameID: "g1", MoveNumber: 1, FromSquare: "E2", ToSquare: "E4",
		Piece: "wP", PlayerColor: "w", FENAfterMove: "fen1", MoveTimeUTC: now,
	}))
	require.NoError(t, s.RecordMove(MoveRecord{
		GameID: "g1", MoveNumber: 2, FromSquare: "D7", ToSquare: "D5",
		Piece: "bP", PlayerColor: "b", FENAfterMove: "fen2", MoveTimeUTC: now,
	}))

	s = reopen(t, s, path)
	assert.True(t, s.IsHealthy())

	games, err := s.QueryGames("g1", "")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "quiet-heron", games[0].Name)
	assert.Equal(t, "w1", games[0].WhitePlayerID)

	byPlayer, err := s.QueryGames("*", "b1")
	require.NoError(t, err)
	assert.Len(t, byPlayer, 1)

	moves, err := s.QueryMoves("g1")
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, "E2", moves[0].FromSquare)
	assert.Equal(t, "D5", moves[1].ToSquare)
	assert.Equal(t, "b", moves[1].PlayerColor)
	assert.Empty(t, moves[1].Captured)
}

func TestRecordReset(t *testing.T) {
	s, path := openTemp(t)
	now := time.Now().UTC()

	require.NoError(t, s.RecordNewGame(GameRecord{GameID: "g1", InitialFEN: "custom", WhitePlayerID: "w", BlackPlayerID: "b", StartTimeUTC: now}))
	require.NoError(t, s.RecordMove(MoveRecord{GameID: "g1", MoveNumber: 1, FromSquare: "E2", ToSquare: "E4", Piece: "wP", PlayerColor: "w", FENAfterMove: "x", MoveTimeUTC: now}))
	require.NoError(t, s.RecordReset("g1", "start"))

	s = reopen(t, s, path)

	moves, err := s.QueryMoves("g1")
	require.NoError(t, err)
	assert.Empty(t, moves)

	games, err := s.QueryGames("g1", "")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "start", games[0].InitialFEN)
}

func TestFailedWriteDegrades(t *testing.T) {
	s, path := openTemp(t)

	// move for an unknown game violates the foreign key
	require.NoError(t, s.RecordMove(MoveRecord{GameID: "missing", MoveNumber: 1, FromSquare: "E2", ToSquare: "E4", Piece: "wP", PlayerColor: "w", FENAfterMove: "x", MoveTimeUTC: time.Now()}))

	require.Eventually(t, func() bool { return !s.IsHealthy() }, 2*time.Second, 10*time.Millisecond)

	// later writes are dropped without error
	require.NoError(t, s.RecordNewGame(GameRecord{GameID: "g2", InitialFEN: "x", WhitePlayerID: "w", BlackPlayerID: "b", StartTimeUTC: time.Now()}))

	s = reopen(t, s, path)
	games, err := s.QueryGames("", "")
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestDeleteDB(t *testing.T) {
	s, path := openTemp(t)
	require.NoError(t, s.DeleteDB())
	assert.NoFileExists(t, path)
	// second close is a no-op
	assert.NoError(t, s.Close())
}
