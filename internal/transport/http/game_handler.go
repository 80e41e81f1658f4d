package http

import (
	"errors"
	"strconv"
	"strings"

	"chessgrid/internal/board"
	"chessgrid/internal/core"
	"chessgrid/internal/game"
	"chessgrid/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateGame starts a game from the opening position or the given FEN
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, ok := validatedBody[core.CreateGameRequest](c)
	if !ok {
		return validationBypass(c)
	}

	snap, err := h.svc.CreateGame(req.FEN)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(buildGameResponse(snap))
}

func (h *HTTPHandler) ListGames(c *fiber.Ctx) error {
	games := h.svc.ListGames()
	resp := core.GameListResponse{Games: make([]core.GameSummary, 0, len(games))}
	for _, g := range games {
		resp.Games = append(resp.Games, core.GameSummary{
			GameID:    g.ID,
			Name:      g.Name,
			Turn:      g.Turn.String(),
			MoveCount: g.MoveCount,
		})
	}
	return c.JSON(resp)
}

// GetGame returns the game. With ?wait=true&version=N it long-polls until
// the game's version differs from N or the wait times out.
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	if c.Query("wait") != "true" {
		snap, err := h.svc.GetGame(gameID)
		if err != nil {
			return h.serviceError(c, err)
		}
		return c.JSON(buildGameResponse(snap))
	}

	version, err := strconv.Atoi(c.Query("version", "-1"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid version",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	snap, err := h.svc.WaitForChange(c.Context(), gameID, version)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(buildGameResponse(snap))
}

func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	if err := h.svc.DeleteGame(c.Params("gameId")); err != nil {
		return h.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MakeMove submits a move as a pair of squares
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	req, ok := validatedBody[core.MoveRequest](c)
	if !ok {
		return validationBypass(c)
	}

	out, err := h.svc.MakeMove(c.Params("gameId"), req.From, req.To)
	if err != nil {
		return h.serviceError(c, err)
	}
	if !out.Accepted {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid move",
			Code:    core.ErrInvalidMove,
			Details: out.Reason.String(),
		})
	}

	return c.JSON(buildGameResponse(out.Game))
}

func (h *HTTPHandler) ResetGame(c *fiber.Ctx) error {
	snap, err := h.svc.ResetGame(c.Params("gameId"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(buildGameResponse(snap))
}

// GetBoard returns the position as FEN plus the ASCII rendering
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	snap, err := h.svc.GetGame(c.Params("gameId"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(core.BoardResponse{
		FEN:   snap.FEN,
		Board: snap.ASCII,
	})
}

func (h *HTTPHandler) GetStatus(c *fiber.Ctx) error {
	st, err := h.svc.Status(c.Params("gameId"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(buildPlayersStatus(st))
}

// GetPossibleMoves lists the pseudo-legal destinations of the piece on a square
func (h *HTTPHandler) GetPossibleMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	moves, err := h.svc.PossibleMoves(c.Params("gameId"), square)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(core.PossibleMovesResponse{
		Square: strings.ToUpper(square),
		Moves:  moves,
	})
}

// serviceError maps service and engine errors to API error responses
func (h *HTTPHandler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "game not found",
			Code:  core.ErrGameNotFound,
		})
	case errors.Is(err, game.ErrInvalidSquare):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid square",
			Code:    core.ErrInvalidSquare,
			Details: err.Error(),
		})
	case errors.Is(err, game.ErrSameSquare):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid move",
			Code:    core.ErrInvalidMove,
			Details: err.Error(),
		})
	case errors.Is(err, board.ErrInvalidFEN):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid FEN",
			Code:    core.ErrInvalidFEN,
			Details: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error:   "internal server error",
			Code:    core.ErrInternalError,
			Details: err.Error(),
		})
	}
}

func validationBypass(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
		Error: "validation data missing",
		Code:  core.ErrInternalError,
	})
}
