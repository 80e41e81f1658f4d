// Package session holds the remote client's state between commands
package session

import (
	"chessgrid/internal/client/api"
	"chessgrid/internal/core"
)

type Session struct {
	APIBaseURL  string
	Client      *api.Client
	CurrentGame string
	Game        *core.GameResponse // last state seen for CurrentGame
	Verbose     bool
}

func New(baseURL string) *Session {
	return &Session{
		APIBaseURL: baseURL,
		Client:     api.New(baseURL),
	}
}

// SetGame makes gameID current and remembers its state
func (s *Session) SetGame(resp *core.GameResponse) {
	s.CurrentGame = resp.GameID
	s.Game = resp
}

func (s *Session) ClearGame() {
	s.CurrentGame = ""
	s.Game = nil
}

// Version is the last game version seen, used for long-polling
func (s *Session) Version() int {
	if s.Game == nil {
		return 0
	}
	return s.Game.Version
}

func (s *Session) SetBaseURL(u string) {
	s.APIBaseURL = u
	s.Client.SetBaseURL(u)
}
