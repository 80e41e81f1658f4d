// Package main runs a two-player chess game in the terminal
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"chessgrid/internal/cli"
	"chessgrid/internal/service"
	clitransport "chessgrid/internal/transport/cli"
)

func main() {
	var (
		theme   = flag.String("theme", string(cli.ThemeOff), "Board theme: off, brown, green or gray")
		logPath = flag.String("log", "", "Write diagnostics to this file (discarded if empty)")
		fen     = flag.String("fen", "", "Start from this FEN position instead of the opening")
	)
	flag.Parse()

	if err := initLog(*logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}

	view := cli.New(os.Stdout)
	if err := view.SetTheme(cli.ColorTheme(*theme)); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	svc, err := service.New(nil)
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	input, err := cli.NewLineReader(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Printf("Failed to open input: %v\n", err)
		os.Exit(1)
	}
	defer input.Close()

	handler := clitransport.New(svc, view, input)
	if err := handler.Start(*fen); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	if err := handler.Run(); err != nil {
		log.Printf("Game loop error: %v", err)
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}

func initLog(path string) error {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	log.SetPrefix("chess ")
	return nil
}
