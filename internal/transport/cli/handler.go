package cli

import (
	"errors"
	"fmt"
	"io"

	"chessgrid/internal/cli"
	"chessgrid/internal/game"
	"chessgrid/internal/service"
)

// CLIHandler runs one local game against the service
type CLIHandler struct {
	svc    *service.Service
	view   *cli.View
	input  cli.LineReader
	gameID string
}

func New(svc *service.Service, view *cli.View, input cli.LineReader) *CLIHandler {
	return &CLIHandler{
		svc:   svc,
		view:  view,
		input: input,
	}
}

// Start creates the game, from fen when it is not empty
func (h *CLIHandler) Start(fen string) error {
	snap, err := h.svc.CreateGame(fen)
	if err != nil {
		return fmt.Errorf("could not start the game: %w", err)
	}
	h.gameID = snap.ID
	return nil
}

// Run is the main loop: show the board, prompt the side to move, process one
// command. It returns when the player quits or input ends.
func (h *CLIHandler) Run() error {
	if h.gameID == "" {
		if err := h.Start(""); err != nil {
			return err
		}
	}

	h.view.ShowWelcome()
	showBoard := true
	for {
		snap, err := h.svc.GetGame(h.gameID)
		if err != nil {
			return err
		}
		if showBoard {
			h.view.DisplayBoard(snap)
		}

		h.input.SetPrompt(h.view.Prompt(snap.Turn))
		line, err := h.input.Readline()
		if errors.Is(err, io.EOF) {
			h.view.ShowGoodbye()
			return nil
		}
		if err != nil {
			return err
		}

		var quit bool
		showBoard, quit = h.ProcessCommand(cli.ParseCommand(line))
		if quit {
			h.view.ShowGoodbye()
			return nil
		}
	}
}

// ProcessCommand executes one command. It reports whether the board should
// be shown again and whether the player asked to quit.
func (h *CLIHandler) ProcessCommand(cmd cli.Command) (showBoard, quit bool) {
	switch cmd.Type {
	case cli.CmdQuit:
		return false, true

	case cli.CmdNone:
		h.view.ShowWarning("Please enter a command.")

	case cli.CmdUnknown:
		h.view.ShowWarning("Invalid move format. Use format: FROM TO (e.g., E2 E4)")

	case cli.CmdHelp:
		h.view.ShowHelp()

	case cli.CmdDisplay:
		return true, false

	case cli.CmdReset:
		if _, err := h.svc.ResetGame(h.gameID); err != nil {
			h.view.ShowError(err)
			return false, false
		}
		h.view.ShowSuccess("Board reset to starting position.")
		return true, false

	case cli.CmdStatus:
		st, err := h.svc.Status(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return false, false
		}
		h.view.ShowStatus(st)

	case cli.CmdMoves:
		if len(cmd.Args) != 1 {
			h.view.ShowWarning("Usage: moves <SQUARE>")
			return false, false
		}
		moves, err := h.svc.PossibleMoves(h.gameID, cmd.Args[0])
		if err != nil {
			h.view.ShowError(err)
			return false, false
		}
		h.view.ShowPossibleMoves(cmd.Args[0], moves)

	case cli.CmdColor:
		if len(cmd.Args) != 1 {
			h.view.ShowWarning("Usage: color <off|brown|green|gray>")
			return false, false
		}
		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return false, false
		}
		h.view.ShowInfo("Color theme set to: %s", theme)
		return true, false

	case cli.CmdMove:
		return h.move(cmd.Args[0], cmd.Args[1]), false
	}

	return false, false
}

func (h *CLIHandler) move(from, to string) bool {
	out, err := h.svc.MakeMove(h.gameID, from, to)
	switch {
	case errors.Is(err, game.ErrSameSquare):
		h.view.ShowWarning("Source and destination squares cannot be the same.")
		return false
	case errors.Is(err, game.ErrInvalidSquare):
		h.view.ShowWarning("Invalid square notation. Use A1-H8 format.")
		return false
	case err != nil:
		h.view.ShowError(err)
		return false
	}

	if !out.Accepted {
		h.view.ShowRejection(out.Reason, out.Game.Turn, out.Piece)
		return false
	}

	h.view.ShowMove(out.Game.LastMove)
	return true
}
