package http

import (
	"chessgrid/internal/core"
	"chessgrid/internal/game"
)

func buildGameResponse(s game.Snapshot) core.GameResponse {
	resp := core.GameResponse{
		GameID:    s.ID,
		Name:      s.Name,
		FEN:       s.FEN,
		Turn:      s.Turn.String(),
		MoveCount: s.MoveCount,
		Version:   s.Version,
		Players:   buildPlayersStatus(s.Status),
	}
	if m := s.LastMove; m != nil {
		resp.LastMove = &core.MoveInfo{
			From:        m.From,
			To:          m.To,
			Piece:       m.Piece,
			Captured:    m.Captured,
			PlayerColor: m.Color.String(),
		}
	}
	return resp
}

func buildPlayersStatus(st game.Status) core.PlayersStatus {
	return core.PlayersStatus{
		White: buildPlayerStatus(st.White),
		Black: buildPlayerStatus(st.Black),
	}
}

func buildPlayerStatus(s game.SideStatus) core.PlayerStatus {
	return core.PlayerStatus{
		ID:       s.PlayerID,
		Color:    s.Color.String(),
		Pieces:   s.Pieces,
		Captured: s.Captured,
	}
}
