package cli

import (
	"fmt"
	"io"
	"strings"

	"chessgrid/internal/board"
	"chessgrid/internal/core"
	"chessgrid/internal/game"

	"github.com/fatih/color"
)

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m",
		darkBg:  "\033[48;5;22m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m",
		darkBg:  "\033[48;5;240m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

// View renders the console game. ThemeOff prints the bordered ASCII grid;
// the other themes print a shaded board.
type View struct {
	out   io.Writer
	theme ColorTheme

	info    *color.Color
	success *color.Color
	warn    *color.Color
	errc    *color.Color
	heading *color.Color
}

func New(out io.Writer) *View {
	return &View{
		out:     out,
		theme:   ThemeOff,
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		errc:    color.New(color.FgRed),
		heading: color.New(color.Bold),
	}
}

func (v *View) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	v.theme = theme
	return nil
}

func (v *View) Theme() ColorTheme {
	return v.theme
}

func (v *View) ShowMessage(msg string) {
	fmt.Fprintln(v.out, msg)
}

func (v *View) ShowInfo(format string, args ...interface{}) {
	v.info.Fprintf(v.out, format+"\n", args...)
}

func (v *View) ShowSuccess(format string, args ...interface{}) {
	v.success.Fprintf(v.out, format+"\n", args...)
}

func (v *View) ShowWarning(format string, args ...interface{}) {
	v.warn.Fprintf(v.out, format+"\n", args...)
}

func (v *View) ShowError(err error) {
	v.errc.Fprintf(v.out, "Error: %v\n", err)
}

// Prompt is the input prompt for the side to move
func (v *View) Prompt(turn core.Color) string {
	return strings.ToUpper(turn.Name()) + "'s turn - Enter move: "
}

func (v *View) DisplayBoard(snap game.Snapshot) {
	if v.theme == ThemeOff {
		v.ShowMessage(snap.ASCII)
		return
	}
	b, err := board.ParseFEN(snap.FEN)
	if err != nil {
		v.ShowError(err)
		return
	}

	theme := themes[v.theme]
	var sb strings.Builder
	sb.WriteString("\n   A  B  C  D  E  F  G  H\n")
	for r := 0; r < board.Size; r++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-r))
		for f := 0; f < board.Size; f++ {
			bg := theme.darkBg
			if (r+f)%2 == 0 {
				bg = theme.lightBg
			}
			p, _ := b.GetPiece(r, f)
			if p == nil {
				sb.WriteString(bg + "   " + theme.reset)
				continue
			}
			fg := theme.black
			if p.Color() == core.ColorWhite {
				fg = theme.white
			}
			sb.WriteString(fmt.Sprintf("%s%s %c %s", bg, fg, p.FENLetter(), theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
	}
	sb.WriteString("   A  B  C  D  E  F  G  H\n")
	v.ShowMessage(sb.String())
}

// ShowRejection explains why the board refused a move
func (v *View) ShowRejection(reason board.Reason, turn core.Color, pieceSymbol string) {
	switch reason {
	case board.ReasonEmptySource:
		v.ShowWarning("No piece at the specified position.")
	case board.ReasonWrongTurn:
		v.ShowWarning("It's %s's turn.", turn.Name())
	case board.ReasonSelfCapture:
		v.ShowWarning("Cannot capture your own piece.")
	case board.ReasonIllegalGeometry:
		kind := pieceSymbol
		if name, ok := board.SymbolName(pieceSymbol); ok {
			kind = name[strings.IndexByte(name, ' ')+1:]
		}
		v.ShowWarning("Invalid move for %s", kind)
	default:
		v.ShowWarning("%s", reason)
	}
	v.ShowWarning("Invalid move. Try again.")
}

// ShowMove announces an executed move and any capture
func (v *View) ShowMove(m *game.Move) {
	if m.Captured != "" {
		name, _ := board.SymbolName(m.Captured)
		v.ShowInfo("%s captures %s", m.Color.Name(), name)
	}
	v.ShowSuccess("Move executed: %s to %s", m.From, m.To)
}

func (v *View) ShowStatus(st game.Status) {
	v.heading.Fprintln(v.out, "\n=== GAME STATUS ===")
	fmt.Fprintf(v.out, "Current turn: %s\n", strings.ToUpper(st.Turn.Name()))
	fmt.Fprintf(v.out, "White pieces: %d\n", st.White.Pieces)
	fmt.Fprintf(v.out, "Black pieces: %d\n", st.Black.Pieces)
	fmt.Fprintf(v.out, "White captured: %d %s\n", len(st.White.Captured), strings.Join(st.White.Captured, " "))
	fmt.Fprintf(v.out, "Black captured: %d %s\n", len(st.Black.Captured), strings.Join(st.Black.Captured, " "))
	v.heading.Fprintln(v.out, "===================")
}

func (v *View) ShowPossibleMoves(square string, moves []string) {
	if len(moves) == 0 {
		v.ShowInfo("No moves from %s", strings.ToUpper(square))
		return
	}
	v.ShowInfo("%s: %s", strings.ToUpper(square), strings.Join(moves, " "))
}

func (v *View) ShowHelp() {
	v.heading.Fprintln(v.out, "\n=== CHESS GAME HELP ===")
	v.ShowMessage(`Commands:
  [FROM] [TO]    - Make a move (e.g., E2 E4)
  moves <SQUARE> - List where the piece on SQUARE can go
  help           - Show this help message
  reset          - Reset the board to starting position
  display        - Display the current board
  status         - Show piece and capture counts
  color <theme>  - Set board color theme (off|brown|green|gray)
  quit/exit      - Exit the game

Moves are checked against piece movement only: check, castling,
en passant and promotion are not enforced.`)
}

func (v *View) ShowWelcome() {
	v.heading.Fprintln(v.out, "Welcome to Chess!")
	v.ShowMessage("Enter moves as FROM TO (e.g., E2 E4). Type 'help' for commands.")
	v.ShowMessage("")
}

func (v *View) ShowGoodbye() {
	v.ShowMessage("Thanks for playing!")
}
