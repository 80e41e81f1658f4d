package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"chessgrid/internal/game"
	"chessgrid/internal/storage"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

const waitShutdownTimeout = 5 * time.Second

// Service owns every running game. Each game is single-threaded, so all
// access goes through the service lock.
type Service struct {
	games  map[string]*game.Game
	mu     sync.RWMutex
	store  *storage.Store // nil if persistence disabled
	waiter *WaitRegistry
}

// New creates a new service instance with optional storage
func New(store *storage.Store) (*Service, error) {
	return &Service{
		games:  make(map[string]*game.Game),
		store:  store,
		waiter: NewWaitRegistry(),
	}, nil
}

func notFound(gameID string) error {
	return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// generateName picks a two-word display name such as "brave-otter"
func generateName() string {
	return petname.Generate(2, "-")
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close releases waiting clients, drops all games and closes storage
func (s *Service) Close() error {
	var result *multierror.Error

	if err := s.waiter.Shutdown(waitShutdownTimeout); err != nil {
		result = multierror.Append(result, err)
	}

	s.mu.Lock()
	s.games = make(map[string]*game.Game)
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close storage: %w", err))
		}
	}

	return result.ErrorOrNil()
}
