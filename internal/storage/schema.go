package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID        string    `db:"game_id"`
	Name          string    `db:"name"`
	InitialFEN    string    `db:"initial_fen"`
	WhitePlayerID string    `db:"white_player_id"`
	BlackPlayerID string    `db:"black_player_id"`
	StartTimeUTC  time.Time `db:"start_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID       int64     `db:"move_id"`
	GameID       string    `db:"game_id"`
	MoveNumber   int       `db:"move_number"`
	FromSquare   string    `db:"from_square"`
	ToSquare     string    `db:"to_square"`
	Piece        string    `db:"piece"`        // e.g. "wN"
	Captured     string    `db:"captured"`     // empty when nothing was taken
	PlayerColor  string    `db:"player_color"` // "w" or "b"
	FENAfterMove string    `db:"fen_after_move"`
	MoveTimeUTC  time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	initial_fen TEXT NOT NULL,
	white_player_id TEXT NOT NULL,
	black_player_id TEXT NOT NULL,
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	from_square TEXT NOT NULL,
	to_square TEXT NOT NULL,
	piece TEXT NOT NULL,
	captured TEXT NOT NULL DEFAULT '',
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	fen_after_move TEXT NOT NULL,
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_white_player ON games(white_player_id);
CREATE INDEX IF NOT EXISTS idx_games_black_player ON games(black_player_id);
`
