package commands

import (
	"fmt"
	"io"
	"strings"

	"chessgrid/internal/client/display"
	"chessgrid/internal/client/session"
)

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(args []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  *session.Session
	out      io.Writer
	commands map[string]*Command
	quit     bool
}

func NewRegistry(s *session.Session, out io.Writer) *Registry {
	r := &Registry{
		session:  s,
		out:      out,
		commands: make(map[string]*Command),
	}

	r.registerGameCommands()
	r.registerUtilCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.helpHandler,
	})

	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Exit the client",
		Usage:       "exit",
		Handler:     r.exitHandler,
	})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Lookup finds a command by name or short name
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Execute runs one input line. A trailing "-v" turns on request tracing for
// that command. It returns true once the user asked to exit.
func (r *Registry) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return r.quit
	}

	r.session.Verbose = false
	if parts[len(parts)-1] == "-v" {
		r.session.Verbose = true
		parts = parts[:len(parts)-1]
		if len(parts) == 0 {
			return r.quit
		}
	}

	cmdName := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, exists := r.commands[cmdName]
	if !exists {
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", display.Red, cmdName, display.Reset)
		fmt.Fprintf(r.out, "Type 'help' for available commands\n")
		return r.quit
	}

	r.session.Client.SetVerbose(r.session.Verbose)

	if err := cmd.Handler(args); err != nil {
		fmt.Fprintf(r.out, "%sError: %s%s\n", display.Red, err.Error(), display.Reset)
	}
	return r.quit
}

func (r *Registry) helpHandler(args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(r.out, "\n%s%s%s - %s\n", display.Cyan, cmd.Name, display.Reset, cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(r.out, "Short form: %s%s%s\n", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(r.out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	fmt.Fprintf(r.out, "\n%sAvailable Commands:%s\n\n", display.Cyan, display.Reset)

	printCommandGroup := func(title string, names []string) {
		fmt.Fprintf(r.out, "%s%s:%s\n", display.Yellow, title, display.Reset)
		for _, name := range names {
			cmd, exists := r.commands[name]
			if !exists {
				continue
			}
			shortPart := "    "
			if cmd.ShortName != "" {
				shortPart = fmt.Sprintf("[%s%s%s] ", display.Cyan, cmd.ShortName, display.Reset)
			}
			fmt.Fprintf(r.out, "  %s%-8s %s\n", shortPart, cmd.Name, cmd.Description)
		}
	}

	printCommandGroup("Game Commands", []string{"new", "join", "move", "moves", "reset", "show", "status", "poll", "delete", "list"})
	fmt.Fprintln(r.out)
	printCommandGroup("Utility Commands", []string{"health", "url", "help", "exit"})

	fmt.Fprintf(r.out, "\nType 'help <command>' for detailed usage\n")
	fmt.Fprintf(r.out, "Add '-v' to any command for verbose output\n")
	return nil
}

func (r *Registry) exitHandler(args []string) error {
	fmt.Fprintf(r.out, "%sGoodbye!%s\n", display.Cyan, display.Reset)
	r.quit = true
	return nil
}

// Prompt describes the session: base URL host, current game and turn
func (r *Registry) Prompt() string {
	s := r.session
	prompt := "chess"
	if s.CurrentGame != "" {
		id := s.CurrentGame
		if len(id) > 8 {
			id = id[:8]
		}
		prompt += display.Yellow + " [" + display.White + id + display.Yellow + "]"
	}
	if s.Game != nil {
		prompt += " - Turn:" + display.ColorForTurn(s.Game.Turn)
	}
	return display.Prompt(prompt)
}
