// Package main runs the click-driven chess board in the terminal
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"chessgrid/internal/service"
	"chessgrid/internal/tui"
)

func main() {
	var (
		logPath = flag.String("log", "chess-tui.log", "Log file (the terminal is owned by the board)")
		fen     = flag.String("fen", "", "Start from this FEN position instead of the opening")
	)
	flag.Parse()

	svc, err := service.New(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	snap, err := svc.CreateGame(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}

	initLog(*logPath, "chess-tui ")
	log.Printf("Game %s (%s) started", snap.ID, snap.Name)

	if err := tui.New(svc, snap.ID).Run(); err != nil {
		log.Printf("Board error: %v", err)
		fmt.Fprintf(os.Stderr, "Board error: %v\n", err)
		return
	}

	if end, err := svc.GetGame(snap.ID); err == nil {
		log.Printf("Game %s closed after %d moves", snap.ID, end.MoveCount)
	}
}

func initLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}
