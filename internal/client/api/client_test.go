package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chessgrid/internal/board"
	"chessgrid/internal/core"
	"chessgrid/internal/service"
	httptransport "chessgrid/internal/transport/http"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *service.Service) {
	t.Helper()
	svc, err := service.New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	srv := httptest.NewServer(adaptor.FiberApp(httptransport.NewFiberApp(svc, httptransport.Config{})))
	t.Cleanup(srv.Close)

	c := New(srv.URL + "/")
	c.Out = io.Discard
	return c, svc
}

func TestClientGameFlow(t *testing.T) {
	c, _ := newTestClient(t)

	health, err := c.Health()
	require.NoError(t, err)
	assert.Equal(t, "disabled", health.Storage)

	g, err := c.CreateGame("")
	require.NoError(t, err)
	assert.Equal(t, board.StartingFEN, g.FEN)

	moved, err := c.MakeMove(g.GameID, "E2", "E4")
	require.NoError(t, err)
	assert.Equal(t, "b", moved.Turn)
	assert.Equal(t, 1, moved.MoveCount)

	moves, err := c.PossibleMoves(g.GameID, "b8")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A6", "C6"}, moves.Moves)

	b, err := c.GetBoard(g.GameID)
	require.NoError(t, err)
	assert.True(t, strings.Contains(b.Board, "wP"))

	st, err := c.GetStatus(g.GameID)
	require.NoError(t, err)
	assert.Equal(t, 16, st.White.Pieces)

	list, err := c.ListGames()
	require.NoError(t, err)
	require.Len(t, list.Games, 1)
	assert.Equal(t, g.GameID, list.Games[0].GameID)

	reset, err := c.ResetGame(g.GameID)
	require.NoError(t, err)
	assert.Equal(t, board.StartingFEN, reset.FEN)

	require.NoError(t, c.DeleteGame(g.GameID))
	_, err = c.GetGame(g.GameID)
	assert.True(t, IsCode(err, core.ErrGameNotFound), "err = %v", err)
}

func TestClientErrors(t *testing.T) {
	c, _ := newTestClient(t)
	g, err := c.CreateGame("")
	require.NoError(t, err)

	_, err = c.MakeMove(g.GameID, "E7", "E5")
	require.Error(t, err)
	assert.True(t, IsCode(err, core.ErrInvalidMove))
	assert.Contains(t, err.Error(), board.ReasonWrongTurn.String())

	_, err = c.CreateGame("bad fen")
	assert.True(t, IsCode(err, core.ErrInvalidFEN), "err = %v", err)

	down := New("http://127.0.0.1:1")
	down.HTTPClient.Timeout = time.Second
	_, err = down.Health()
	require.Error(t, err)
	assert.False(t, IsCode(err, core.ErrInternalError))
	assert.Contains(t, err.Error(), "GET /health")
}

func TestClientWaitForGame(t *testing.T) {
	c, svc := newTestClient(t)
	g, err := c.CreateGame("")
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		svc.MakeMove(g.GameID, "G1", "F3")
	}()

	got, err := c.WaitForGame(g.GameID, g.Version)
	require.NoError(t, err)
	assert.Equal(t, g.Version+1, got.Version)
	require.NotNil(t, got.LastMove)
	assert.Equal(t, "F3", got.LastMove.To)
}

func TestErrorString(t *testing.T) {
	err := &Error{Status: http.StatusBadRequest, Code: core.ErrInvalidMove, Message: "invalid move", Details: "wrong turn"}
	assert.Equal(t, "400 INVALID_MOVE: invalid move (wrong turn)", err.Error())
}
