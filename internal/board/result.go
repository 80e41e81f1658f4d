package board

// Reason explains the outcome of a move attempt
type Reason int

const (
	ReasonOK Reason = iota
	ReasonOutOfRange
	ReasonEmptySource
	ReasonWrongTurn
	ReasonSelfCapture
	ReasonIllegalGeometry
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonOutOfRange:
		return "square out of range"
	case ReasonEmptySource:
		return "no piece at the source square"
	case ReasonWrongTurn:
		return "wrong turn"
	case ReasonSelfCapture:
		return "cannot capture own piece"
	case ReasonIllegalGeometry:
		return "illegal move for piece"
	default:
		return "unknown"
	}
}

// MoveResult is the outcome of Board.TryMove. Rejections are ordinary values,
// the board is unchanged whenever Reason is not ReasonOK.
type MoveResult struct {
	From, To Coord
	Reason   Reason
	Piece    *Piece // the piece at From, nil when the square was empty
	Captured *Piece // the piece removed from To, nil when nothing was captured
}

func (r MoveResult) OK() bool {
	return r.Reason == ReasonOK
}
