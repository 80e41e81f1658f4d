// Package main implements an interactive client for the chess server API.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chessgrid/internal/client/commands"
	"chessgrid/internal/client/display"
	"chessgrid/internal/client/session"

	"github.com/chzyer/readline"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "API server base URL")
	flag.Parse()

	s := session.New(*baseURL)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("chess"),
		HistoryFile:     ".chess_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sChess Client%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s, os.Stdout)

	for {
		rl.SetPrompt(registry.Prompt())

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if registry.Execute(line) {
			break
		}
	}
}
