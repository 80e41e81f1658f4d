package board

import (
	"fmt"
	"strings"
)

const (
	fileLabels = "    A   B   C   D   E   F   G   H\n"
	rankRule   = "  +---+---+---+---+---+---+---+---+\n"
)

// ToASCII creates a bordered text representation of the board using
// two-character piece symbols ("wP", "bK")
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString(fileLabels)
	sb.WriteString(rankRule)

	for r := 0; r < Size; r++ {
		sb.WriteString(fmt.Sprintf("%d |", 8-r))
		for f := 0; f < Size; f++ {
			if p := b.squares[r][f]; p == nil {
				sb.WriteString("   ")
			} else {
				sb.WriteString(" " + p.Symbol())
			}
			sb.WriteByte('|')
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
		sb.WriteString(rankRule)
	}
	sb.WriteString(strings.TrimSuffix(fileLabels, "\n"))

	return sb.String()
}
