package commands

import (
	"errors"
	"fmt"
	"strings"

	"chessgrid/internal/client/display"
	"chessgrid/internal/core"
)

var errNoGame = errors.New("no current game, use 'new' or 'join <gameId>'")

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new game",
		Usage:       "new [fen]",
		Handler:     r.newGameHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Join/set current game ID",
		Usage:       "join <gameId>",
		Handler:     r.joinGameHandler,
	})

	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Make a move",
		Usage:       "move <from> <to>",
		Handler:     r.moveHandler,
	})

	r.Register(&Command{
		Name:        "moves",
		ShortName:   "v",
		Description: "List moves for the piece on a square",
		Usage:       "moves <square>",
		Handler:     r.possibleMovesHandler,
	})

	r.Register(&Command{
		Name:        "reset",
		ShortName:   "r",
		Description: "Reset the current game to the opening position",
		Usage:       "reset",
		Handler:     r.resetHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show board and game state",
		Usage:       "show",
		Handler:     r.showBoardHandler,
	})

	r.Register(&Command{
		Name:        "status",
		ShortName:   "s",
		Description: "Show pieces and captures per player",
		Usage:       "status",
		Handler:     r.statusHandler,
	})

	r.Register(&Command{
		Name:        "poll",
		ShortName:   "p",
		Description: "Long-poll for game updates",
		Usage:       "poll",
		Handler:     r.pollHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete a game",
		Usage:       "delete [gameId]",
		Handler:     r.deleteGameHandler,
	})

	r.Register(&Command{
		Name:        "list",
		ShortName:   "l",
		Description: "List games on the server",
		Usage:       "list",
		Handler:     r.listGamesHandler,
	})
}

func (r *Registry) currentGame() (string, error) {
	if r.session.CurrentGame == "" {
		return "", errNoGame
	}
	return r.session.CurrentGame, nil
}

func (r *Registry) newGameHandler(args []string) error {
	// FEN fields are space separated
	fen := strings.Join(args, " ")

	resp, err := r.session.Client.CreateGame(fen)
	if err != nil {
		return err
	}
	r.session.SetGame(resp)

	fmt.Fprintf(r.out, "%sGame created: %s (%s)%s\n", display.Green, resp.GameID, resp.Name, display.Reset)
	fmt.Fprintf(r.out, "%sCurrent game set to: %s%s\n", display.Cyan, resp.GameID, display.Reset)
	return nil
}

func (r *Registry) joinGameHandler(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <gameId>")
	}

	resp, err := r.session.Client.GetGame(args[0])
	if err != nil {
		return err
	}
	r.session.SetGame(resp)

	fmt.Fprintf(r.out, "%sJoined game: %s%s\n", display.Green, resp.GameID, display.Reset)
	fmt.Fprintf(r.out, "Turn: %s | Moves: %d\n", display.ColorForTurn(resp.Turn), resp.MoveCount)
	return nil
}

func (r *Registry) moveHandler(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: move <from> <to>")
	}
	gameID, err := r.currentGame()
	if err != nil {
		return err
	}

	resp, err := r.session.Client.MakeMove(gameID, strings.ToUpper(args[0]), strings.ToUpper(args[1]))
	if err != nil {
		return err
	}
	r.session.SetGame(resp)

	fmt.Fprintf(r.out, "%sMove accepted%s\n", display.Green, display.Reset)
	if m := resp.LastMove; m != nil && m.Captured != "" {
		fmt.Fprintf(r.out, "%s%s captured %s%s\n", display.Magenta, m.Piece, m.Captured, display.Reset)
	}
	return nil
}

func (r *Registry) possibleMovesHandler(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: moves <square>")
	}
	gameID, err := r.currentGame()
	if err != nil {
		return err
	}

	resp, err := r.session.Client.PossibleMoves(gameID, args[0])
	if err != nil {
		return err
	}
	if len(resp.Moves) == 0 {
		fmt.Fprintf(r.out, "No moves from %s\n", resp.Square)
		return nil
	}
	fmt.Fprintf(r.out, "%s: %s\n", resp.Square, strings.Join(resp.Moves, " "))
	return nil
}

func (r *Registry) resetHandler(args []string) error {
	gameID, err := r.currentGame()
	if err != nil {
		return err
	}

	resp, err := r.session.Client.ResetGame(gameID)
	if err != nil {
		return err
	}
	r.session.SetGame(resp)

	fmt.Fprintf(r.out, "%sGame reset%s\n", display.Green, display.Reset)
	return nil
}

func (r *Registry) showBoardHandler(args []string) error {
	gameID, err := r.currentGame()
	if err != nil {
		return err
	}

	game, err := r.session.Client.GetGame(gameID)
	if err != nil {
		return err
	}
	board, err := r.session.Client.GetBoard(gameID)
	if err != nil {
		return err
	}
	r.session.SetGame(game)

	fmt.Fprintln(r.out)
	display.RenderBoard(r.out, board.Board)

	fmt.Fprintf(r.out, "\nFEN: %s\n", game.FEN)
	fmt.Fprintf(r.out, "Turn: %s | Moves: %d | Version: %d\n",
		display.ColorForTurn(game.Turn), game.MoveCount, game.Version)

	if m := game.LastMove; m != nil {
		fmt.Fprintf(r.out, "Last move: %s %s-%s", m.Piece, m.From, m.To)
		if m.Captured != "" {
			fmt.Fprintf(r.out, " x%s", m.Captured)
		}
		fmt.Fprintln(r.out)
	}
	return nil
}

func (r *Registry) statusHandler(args []string) error {
	gameID, err := r.currentGame()
	if err != nil {
		return err
	}

	st, err := r.session.Client.GetStatus(gameID)
	if err != nil {
		return err
	}

	printSide := func(name string, p core.PlayerStatus) {
		fmt.Fprintf(r.out, "%-6s pieces: %2d  captured: %d %s\n", name, p.Pieces, len(p.Captured), strings.Join(p.Captured, " "))
	}
	printSide("White", st.White)
	printSide("Black", st.Black)
	return nil
}

func (r *Registry) pollHandler(args []string) error {
	gameID, err := r.currentGame()
	if err != nil {
		return err
	}

	version := r.session.Version()
	fmt.Fprintf(r.out, "%sLong-polling for updates (version: %d)...%s\n", display.Cyan, version, display.Reset)

	resp, err := r.session.Client.WaitForGame(gameID, version)
	if err != nil {
		return err
	}
	r.session.SetGame(resp)

	if resp.Version == version {
		fmt.Fprintf(r.out, "%sNo updates (timeout)%s\n", display.Yellow, display.Reset)
		return nil
	}
	fmt.Fprintf(r.out, "%sGame updated!%s\n", display.Green, display.Reset)
	if m := resp.LastMove; m != nil {
		fmt.Fprintf(r.out, "Last move: %s %s-%s\n", m.Piece, m.From, m.To)
	}
	return nil
}

func (r *Registry) deleteGameHandler(args []string) error {
	gameID := r.session.CurrentGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("specify game ID or set current game")
	}

	if err := r.session.Client.DeleteGame(gameID); err != nil {
		return err
	}
	if gameID == r.session.CurrentGame {
		r.session.ClearGame()
	}

	fmt.Fprintf(r.out, "%sGame deleted: %s%s\n", display.Green, gameID, display.Reset)
	return nil
}

func (r *Registry) listGamesHandler(args []string) error {
	resp, err := r.session.Client.ListGames()
	if err != nil {
		return err
	}
	if len(resp.Games) == 0 {
		fmt.Fprintln(r.out, "No games")
		return nil
	}
	for _, g := range resp.Games {
		marker := " "
		if g.GameID == r.session.CurrentGame {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %s  %-20s %s  moves: %d\n", marker, g.GameID, g.Name, display.ColorForTurn(g.Turn), g.MoveCount)
	}
	return nil
}
