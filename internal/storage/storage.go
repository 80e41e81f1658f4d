package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	writeQueueSize = 1000
	drainTimeout   = 2 * time.Second
)

// Store is an append-only audit log of games and moves. Writes go through a
// single writer goroutine; a failed write marks the store degraded and all
// later writes are dropped while reads keep working.
type Store struct {
	db           *sql.DB
	path         string
	writeChan    chan func(*sql.Tx) error
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	closeOnce    sync.Once
}

// Open opens (creating if needed) the SQLite file at path and starts the writer.
// devMode switches the journal to WAL so the db subcommands can read while
// the server writes.
func Open(path string, devMode bool) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if devMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(2)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		db:        db,
		path:      path,
		writeChan: make(chan func(*sql.Tx) error, writeQueueSize),
		ctx:       ctx,
		cancel:    cancel,
	}
	s.healthStatus.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

func (s *Store) writerLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			s.drain()
			return
		case fn := <-s.writeChan:
			if s.healthStatus.Load() {
				s.executeWrite(fn)
			}
		}
	}
}

// drain flushes queued writes on shutdown until the queue is empty or the
// deadline passes
func (s *Store) drain() {
	deadline := time.After(drainTimeout)
	for {
		select {
		case fn := <-s.writeChan:
			if s.healthStatus.Load() {
				s.executeWrite(fn)
			}
		case <-deadline:
			return
		default:
			return
		}
	}
}

// executeWrite runs a transactional write operation
func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("Storage degraded: failed to begin transaction: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		log.Printf("Storage degraded: write operation failed: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Storage degraded: failed to commit: %v", err)
		s.healthStatus.Store(false)
		return
	}
}

// enqueue hands a write to the writer goroutine, dropping it when the store
// is degraded or the queue is full
func (s *Store) enqueue(what string, fn func(*sql.Tx) error) error {
	if !s.healthStatus.Load() {
		return nil
	}

	select {
	case s.writeChan <- fn:
		return nil
	default:
		log.Printf("Storage write queue full, dropping %s", what)
		return nil
	}
}

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) error {
	return s.enqueue("game record", func(tx *sql.Tx) error {
		query := `INSERT INTO games (
			game_id, name, initial_fen, white_player_id, black_player_id, start_time_utc
		) VALUES (?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.Name, record.InitialFEN,
			record.WhitePlayerID, record.BlackPlayerID,
			record.StartTimeUTC,
		)
		return err
	})
}

// RecordMove asynchronously records an executed move
func (s *Store) RecordMove(record MoveRecord) error {
	return s.enqueue("move record", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, from_square, to_square, piece, captured,
			player_color, fen_after_move, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.FromSquare, record.ToSquare,
			record.Piece, record.Captured, record.PlayerColor,
			record.FENAfterMove, record.MoveTimeUTC,
		)
		return err
	})
}

// RecordReset asynchronously drops a game's moves and points its initial
// position at the reset board
func (s *Store) RecordReset(gameID, initialFEN string) error {
	return s.enqueue("reset", func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM moves WHERE game_id = ?`, gameID); err != nil {
			return err
		}
		_, err := tx.Exec(`UPDATE games SET initial_fen = ? WHERE game_id = ?`, initialFEN, gameID)
		return err
	})
}

// IsHealthy returns the current health status
func (s *Store) IsHealthy() bool {
	return s.healthStatus.Load()
}

// Close stops the writer after draining the queue and closes the database.
// Calling it more than once is safe.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(drainTimeout):
			log.Printf("Warning: storage writer shutdown timeout, some writes may be lost")
		}

		err = s.db.Close()
	})
	return err
}

// InitDB creates the database schema
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB removes the database file
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete database file: %w", err)
	}

	return nil
}

// QueryGames retrieves games with optional filtering
func (s *Store) QueryGames(gameID, playerID string) ([]GameRecord, error) {
	query := `SELECT
		game_id, name, initial_fen, white_player_id, black_player_id, start_time_utc
	FROM games WHERE 1=1`

	var args []interface{}

	// Handle gameID filtering
	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}

	// Handle playerID filtering
	if playerID != "" && playerID != "*" {
		query += " AND (white_player_id = ? OR black_player_id = ?)"
		args = append(args, playerID, playerID)
	}

	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		err := rows.Scan(
			&g.GameID, &g.Name, &g.InitialFEN,
			&g.WhitePlayerID, &g.BlackPlayerID,
			&g.StartTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves returns a game's moves in play order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT
		move_id, game_id, move_number, from_square, to_square, piece, captured,
		player_color, fen_after_move, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(
			&m.MoveID, &m.GameID, &m.MoveNumber, &m.FromSquare, &m.ToSquare,
			&m.Piece, &m.Captured, &m.PlayerColor, &m.FENAfterMove, &m.MoveTimeUTC,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}
