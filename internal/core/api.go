package core

// Request types

type CreateGameRequest struct {
	FEN string `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type MoveRequest struct {
	From string `json:"from" validate:"required,square"`
	To   string `json:"to" validate:"required,square"`
}

// Response types

type GameResponse struct {
	GameID    string        `json:"gameId"`
	Name      string        `json:"name"`
	FEN       string        `json:"fen"`
	Turn      string        `json:"turn"` // "w" or "b"
	MoveCount int           `json:"moveCount"`
	Version   int           `json:"version"`
	Players   PlayersStatus `json:"players"`
	LastMove  *MoveInfo     `json:"lastMove,omitempty"`
}

type GameListResponse struct {
	Games []GameSummary `json:"games"`
}

type GameSummary struct {
	GameID    string `json:"gameId"`
	Name      string `json:"name"`
	Turn      string `json:"turn"`
	MoveCount int    `json:"moveCount"`
}

type MoveInfo struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Piece       string `json:"piece"`              // "wP", "bN", ...
	Captured    string `json:"captured,omitempty"` // empty when the move captured nothing
	PlayerColor string `json:"playerColor"`        // "w" or "b"
}

type PlayersStatus struct {
	White PlayerStatus `json:"white"`
	Black PlayerStatus `json:"black"`
}

type PlayerStatus struct {
	ID       string   `json:"id"`
	Color    string   `json:"color"`
	Pieces   int      `json:"pieces"`
	Captured []string `json:"captured"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type PossibleMovesResponse struct {
	Square string   `json:"square"`
	Moves  []string `json:"moves"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage"` // "ok", "degraded" or "disabled"
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
