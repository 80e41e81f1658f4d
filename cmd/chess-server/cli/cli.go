package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"chessgrid/internal/storage"

	"golang.org/x/term"
)

const timeLayout = "2006-01-02 15:04:05"

// Run is the entry point for the db admin commands
func Run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, moves")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], out)
	case "delete":
		return runDelete(args[1:], out)
	case "query":
		return runQuery(args[1:], out)
	case "moves":
		return runMoves(args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func pathFlag(fs *flag.FlagSet) *string {
	return fs.String("path", "", "Database file path (required)")
}

func openStore(path string) (*storage.Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %w", err)
	}
	store, err := storage.Open(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func runInit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := pathFlag(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := storage.Open(*path, false)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Fprintf(out, "Database initialized at: %s\n", *path)
	return nil
}

func runDelete(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	path := pathFlag(fs)
	force := fs.Bool("force", false, "Do not ask for confirmation")

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(*path)
	if err != nil {
		return err
	}

	if !*force && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(out, "Delete %s and all recorded games? [y/N] ", *path)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			store.Close()
			fmt.Fprintln(out, "Aborted")
			return nil
		}
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Fprintf(out, "Database deleted: %s\n", *path)
	return nil
}

func runQuery(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	path := pathFlag(fs)
	gameID := fs.String("gameId", "", "Game ID to filter (optional, * for all)")
	playerID := fs.String("playerId", "", "Player ID to filter (optional, * for all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(*path)
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID, *playerID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(games) == 0 {
		fmt.Fprintln(out, "No games found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tName\tWhite Player\tBlack Player\tStart Time")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, g := range games {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			short(g.GameID),
			g.Name,
			short(g.WhitePlayerID),
			short(g.BlackPlayerID),
			g.StartTimeUTC.Format(timeLayout),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nFound %d game(s)\n", len(games))
	return nil
}

func runMoves(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("moves", flag.ContinueOnError)
	path := pathFlag(fs)
	gameID := fs.String("gameId", "", "Game ID (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *gameID == "" {
		return fmt.Errorf("game ID required")
	}

	store, err := openStore(*path)
	if err != nil {
		return err
	}
	defer store.Close()

	moves, err := store.QueryMoves(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(moves) == 0 {
		fmt.Fprintln(out, "No moves found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tColor\tPiece\tFrom\tTo\tCaptured\tTime")
	for _, m := range moves {
		captured := m.Captured
		if captured == "" {
			captured = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.MoveNumber, m.PlayerColor, m.Piece, m.FromSquare, m.ToSquare, captured,
			m.MoveTimeUTC.Format(timeLayout),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nFinal position: %s\n", moves[len(moves)-1].FENAfterMove)
	return nil
}

// short trims a UUID to its first block for table output
func short(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}
