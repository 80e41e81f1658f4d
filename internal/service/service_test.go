package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"chessgrid/internal/board"
	"chessgrid/internal/core"
	"chessgrid/internal/game"
	"chessgrid/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestCreateAndGetGame(t *testing.T) {
	svc := newService(t)

	snap, err := svc.CreateGame("")
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Len(t, strings.Split(snap.Name, "-"), 2, "name %q", snap.Name)
	assert.Equal(t, board.StartingFEN, snap.FEN)
	assert.Equal(t, core.ColorWhite, snap.Turn)

	got, err := svc.GetGame(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	_, err = svc.GetGame("nope")
	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestCreateGameFromFEN(t *testing.T) {
	svc := newService(t)

	snap, err := svc.CreateGame("4k3/8/8/8/8/8/8/4K3 b")
	require.NoError(t, err)
	assert.Equal(t, core.ColorBlack, snap.Turn)

	_, err = svc.CreateGame("garbage")
	assert.True(t, errors.Is(err, board.ErrInvalidFEN))
	assert.Len(t, svc.ListGames(), 1)
}

func TestMakeMove(t *testing.T) {
	svc := newService(t)
	snap, err := svc.CreateGame("")
	require.NoError(t, err)

	out, err := svc.MakeMove(snap.ID, "E2", "E4")
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, core.ColorBlack, out.Game.Turn)
	require.NotNil(t, out.Game.LastMove)
	assert.Equal(t, "E4", out.Game.LastMove.To)

	out, err = svc.MakeMove(snap.ID, "D2", "D4")
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, board.ReasonWrongTurn, out.Reason)

	_, err = svc.MakeMove(snap.ID, "D9", "D4")
	assert.True(t, errors.Is(err, game.ErrInvalidSquare))

	_, err = svc.MakeMove("missing", "E7", "E5")
	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestResetDeleteAndStatus(t *testing.T) {
	svc := newService(t)
	snap, _ := svc.CreateGame("")
	_, err := svc.MakeMove(snap.ID, "G1", "F3")
	require.NoError(t, err)

	reset, err := svc.ResetGame(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, board.StartingFEN, reset.FEN)
	assert.Equal(t, 2, reset.Version)

	st, err := svc.Status(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 16, st.White.Pieces)

	moves, err := svc.PossibleMoves(snap.ID, "G1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"F3", "H3"}, moves)

	require.NoError(t, svc.DeleteGame(snap.ID))
	assert.True(t, errors.Is(svc.DeleteGame(snap.ID), ErrGameNotFound))
	_, err = svc.Status(snap.ID)
	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestConcurrentMovesAreSerialized(t *testing.T) {
	svc := newService(t)
	snap, _ := svc.CreateGame("")

	// Both goroutines race for White's only allowed move this turn
	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i, mv := range [][2]string{{"E2", "E4"}, {"D2", "D4"}} {
		wg.Add(1)
		go func(i int, from, to string) {
			defer wg.Done()
			out, err := svc.MakeMove(snap.ID, from, to)
			assert.NoError(t, err)
			results[i] = out.Accepted
		}(i, mv[0], mv[1])
	}
	wg.Wait()

	assert.True(t, results[0] != results[1], "exactly one move should be accepted: %v", results)
	got, _ := svc.GetGame(snap.ID)
	assert.Equal(t, 1, got.MoveCount)
}

func TestWaitForChange(t *testing.T) {
	svc := newService(t)
	snap, _ := svc.CreateGame("")

	t.Run("already behind", func(t *testing.T) {
		got, err := svc.WaitForChange(context.Background(), snap.ID, snap.Version+5)
		require.NoError(t, err)
		assert.Equal(t, snap.Version, got.Version)
	})

	t.Run("woken by move", func(t *testing.T) {
		done := make(chan game.Snapshot, 1)
		go func() {
			got, err := svc.WaitForChange(context.Background(), snap.ID, snap.Version)
			assert.NoError(t, err)
			done <- got
		}()

		require.Eventually(t, func() bool { return svc.waiter.Waiting(snap.ID) == 1 }, time.Second, 5*time.Millisecond)
		_, err := svc.MakeMove(snap.ID, "E2", "E4")
		require.NoError(t, err)

		select {
		case got := <-done:
			assert.Equal(t, snap.Version+1, got.Version)
		case <-time.After(2 * time.Second):
			t.Fatal("waiter was not woken")
		}
	})

	t.Run("context cancelled", func(t *testing.T) {
		cur, _ := svc.GetGame(snap.ID)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		got, err := svc.WaitForChange(ctx, snap.ID, cur.Version)
		require.NoError(t, err)
		assert.Equal(t, cur.Version, got.Version)
	})

	t.Run("deleted game", func(t *testing.T) {
		other, _ := svc.CreateGame("")
		errc := make(chan error, 1)
		go func() {
			_, err := svc.WaitForChange(context.Background(), other.ID, other.Version)
			errc <- err
		}()
		require.Eventually(t, func() bool { return svc.waiter.Waiting(other.ID) == 1 }, time.Second, 5*time.Millisecond)
		require.NoError(t, svc.DeleteGame(other.ID))
		select {
		case err := <-errc:
			assert.True(t, errors.Is(err, ErrGameNotFound))
		case <-time.After(2 * time.Second):
			t.Fatal("waiter was not released on delete")
		}
	})
}

func TestStorageIntegration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")
	store, err := storage.Open(path, false)
	require.NoError(t, err)
	require.NoError(t, store.InitDB())

	svc, err := New(store)
	require.NoError(t, err)
	assert.Equal(t, "ok", svc.GetStorageHealth())

	snap, err := svc.CreateGame("4k3/8/8/3p4/4P3/8/8/4K3 w")
	require.NoError(t, err)
	_, err = svc.MakeMove(snap.ID, "E4", "D5")
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	store, err = storage.Open(path, false)
	require.NoError(t, err)
	defer store.Close()

	moves, err := store.QueryMoves(snap.ID)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, "wP", moves[0].Piece)
	assert.Equal(t, "bP", moves[0].Captured)
	assert.Equal(t, "w", moves[0].PlayerColor)
}

func TestCloseIsIdempotent(t *testing.T) {
	svc, err := New(nil)
	require.NoError(t, err)
	assert.NoError(t, svc.Close())
	assert.NoError(t, svc.Close())
	assert.Equal(t, "disabled", svc.GetStorageHealth())
}
