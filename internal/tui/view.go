package tui

import (
	"fmt"
	"log"
	"strings"

	"chessgrid/internal/board"
	"chessgrid/internal/core"
	"chessgrid/internal/game"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	// Column 0 holds rank labels and row 8 file labels
	labelCol = 0
	labelRow = board.Size
)

var (
	lightSquare  = tcell.ColorWhite
	darkSquare   = tcell.NewRGBColor(125, 135, 150)
	selectSquare = tcell.ColorYellow
	targetSquare = tcell.ColorLightGreen
	whitePiece   = tcell.ColorDarkBlue
	blackPiece   = tcell.ColorBlack
)

// StatusSource is implemented by the service
type StatusSource interface {
	Mover
	Status(gameID string) (game.Status, error)
}

// App is the terminal board: a selectable table of squares and a status pane
type App struct {
	app    *tview.Application
	table  *tview.Table
	status *tview.TextView
	sel    *Selector
	svc    StatusSource
	gameID string
}

func New(svc StatusSource, gameID string) *App {
	a := &App{
		app:    tview.NewApplication(),
		table:  tview.NewTable(),
		status: tview.NewTextView(),
		sel:    NewSelector(svc, gameID),
		svc:    svc,
		gameID: gameID,
	}

	a.status.SetDynamicColors(true).SetBorder(true).SetTitle(" Game ")
	a.table.SetBorders(true).SetSelectable(true, true)
	a.table.Select(board.Size-1, 1).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			a.app.Stop()
		}
	}).SetSelectedFunc(func(row, col int) {
		if row == labelRow || col == labelCol {
			return
		}
		if _, err := a.sel.Click(row, col-1); err != nil {
			log.Printf("click (%d, %d): %v", row, col-1, err)
		}
		if err := a.Render(); err != nil {
			log.Printf("render: %v", err)
		}
	})

	layout := tview.NewFlex().
		AddItem(a.table, 0, 2, true).
		AddItem(a.status, 0, 1, false)
	a.app.SetRoot(layout, true).SetFocus(a.table).EnableMouse(true)

	return a
}

// Selector exposes the click state machine
func (a *App) Selector() *Selector { return a.sel }

// Cell returns the table cell for a board square
func (a *App) Cell(row, col int) *tview.TableCell {
	return a.table.GetCell(row, col+1)
}

// Render redraws the board and status pane from the current game state
func (a *App) Render() error {
	snap, err := a.svc.GetGame(a.gameID)
	if err != nil {
		return err
	}
	b, err := board.ParseFEN(snap.FEN)
	if err != nil {
		return err
	}
	st, err := a.svc.Status(a.gameID)
	if err != nil {
		return err
	}

	for r := 0; r < board.Size; r++ {
		a.table.SetCell(r, labelCol, tview.NewTableCell(fmt.Sprintf(" %d ", 8-r)).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))

		for f := 0; f < board.Size; f++ {
			sq := board.MustCoord(r, f)
			text, fg := "   ", lightSquare
			if p := b.PieceAt(sq); p != nil {
				text = " " + p.Symbol() + " "
				fg = whitePiece
				if p.Color() == core.ColorBlack {
					fg = blackPiece
				}
			}
			a.table.SetCell(r, f+1, tview.NewTableCell(text).
				SetAlign(tview.AlignCenter).
				SetTextColor(fg).
				SetBackgroundColor(a.squareColor(sq)))
		}
	}
	a.table.SetCell(labelRow, labelCol, tview.NewTableCell("").SetSelectable(false))
	for f := 0; f < board.Size; f++ {
		a.table.SetCell(labelRow, f+1, tview.NewTableCell(string(rune('A'+f))).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
	}

	a.status.SetText(statusText(snap, st, a.sel.Message()))
	return nil
}

func (a *App) squareColor(sq board.Coord) tcell.Color {
	switch name := sq.String(); {
	case name == a.sel.Selected():
		return selectSquare
	case a.sel.IsTarget(name):
		return targetSquare
	case (sq.Row()+sq.Col())%2 == 0:
		return lightSquare
	default:
		return darkSquare
	}
}

func statusText(snap game.Snapshot, st game.Status, msg string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[::b]%s[::-]\n\n", snap.Name)
	fmt.Fprintf(&sb, "Turn: %s\n", snap.Turn.Name())
	fmt.Fprintf(&sb, "Moves: %d\n\n", snap.MoveCount)
	fmt.Fprintf(&sb, "White: %d pieces, captured %s\n", st.White.Pieces, strings.Join(st.White.Captured, " "))
	fmt.Fprintf(&sb, "Black: %d pieces, captured %s\n\n", st.Black.Pieces, strings.Join(st.Black.Captured, " "))
	sb.WriteString(tview.Escape(msg))
	sb.WriteString("\n\n[gray]Arrows/mouse to pick, Enter to click, Esc to quit")
	return sb.String()
}

// Run draws the board and blocks until the user quits
func (a *App) Run() error {
	if err := a.Render(); err != nil {
		return err
	}
	return a.app.Run()
}

func (a *App) Stop() { a.app.Stop() }
