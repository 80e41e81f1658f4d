package cli

import (
	"regexp"
	"strings"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdMove
	CmdHelp
	CmdReset
	CmdDisplay
	CmdStatus
	CmdMoves
	CmdColor
	CmdQuit
	CmdUnknown
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// movePattern is "FROM TO" with any run of whitespace between the squares
var movePattern = regexp.MustCompile(`^[A-Ha-h][1-8]\s+[A-Ha-h][1-8]$`)

// ParseCommand classifies one input line. Keywords are case-insensitive.
// Anything that is not a keyword is treated as a move attempt; moves that do
// not match the FROM TO format come back as CmdUnknown.
func ParseCommand(line string) Command {
	input := strings.TrimSpace(line)
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Command{Type: CmdNone}
	}

	args := parts[1:]
	switch strings.ToLower(parts[0]) {
	case "quit", "exit":
		return Command{Type: CmdQuit, Raw: input}
	case "help", "?":
		return Command{Type: CmdHelp, Raw: input}
	case "reset":
		return Command{Type: CmdReset, Raw: input}
	case "display":
		return Command{Type: CmdDisplay, Raw: input}
	case "status":
		return Command{Type: CmdStatus, Raw: input}
	case "moves":
		return Command{Type: CmdMoves, Args: args, Raw: input}
	case "color":
		return Command{Type: CmdColor, Args: args, Raw: input}
	}

	if movePattern.MatchString(input) {
		return Command{
			Type: CmdMove,
			Args: []string{strings.ToUpper(parts[0]), strings.ToUpper(parts[1])},
			Raw:  input,
		}
	}
	return Command{Type: CmdUnknown, Args: parts, Raw: input}
}
