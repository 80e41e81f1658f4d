package display

import (
	"fmt"
	"io"
	"strings"
)

// RenderBoard writes the server's ASCII board with white pieces in blue,
// black pieces in red and labels in cyan
func RenderBoard(out io.Writer, asciiBoard string) {
	for _, line := range strings.Split(asciiBoard, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintln(out, colorLine(line))
	}
}

func colorLine(line string) string {
	var sb strings.Builder
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case (ch == 'w' || ch == 'b') && i+1 < len(line) && strings.IndexByte("KQRBNP", line[i+1]) >= 0:
			color := Blue
			if ch == 'b' {
				color = Red
			}
			sb.WriteString(color + line[i:i+2] + Reset)
			i++
		case ch >= 'A' && ch <= 'H', ch >= '1' && ch <= '8':
			sb.WriteString(Cyan + string(ch) + Reset)
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(turn string) string {
	if turn == "w" {
		return Blue + "White" + Reset
	}
	return Red + "Black" + Reset
}
