package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout is the maximum time a client can wait for notifications
	WaitTimeout = 25 * time.Second
)

// WaitRegistry manages long-polling clients waiting for game state changes
type WaitRegistry struct {
	mu           sync.RWMutex
	waiters      map[string][]*WaitRequest // gameID → waiting clients
	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
	timeout      time.Duration
}

// WaitRequest represents a single client waiting for game updates
type WaitRequest struct {
	GameID  string
	Version int           // last version the client has seen
	done    chan struct{} // closed once on change, timeout, removal or shutdown
	once    sync.Once
	timer   *time.Timer
}

func (r *WaitRequest) fire() {
	r.once.Do(func() { close(r.done) })
}

// NewWaitRegistry creates a new wait registry
func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string][]*WaitRequest),
		shutdown: make(chan struct{}),
		timeout:  WaitTimeout,
	}
}

// RegisterWait registers a client to wait for game state changes. The
// returned channel is closed when the game's version moves past version,
// after WaitTimeout, when the game is removed or on shutdown.
func (w *WaitRegistry) RegisterWait(ctx context.Context, gameID string, version int) <-chan struct{} {
	req := &WaitRequest{
		GameID:  gameID,
		Version: version,
		done:    make(chan struct{}),
	}

	w.mu.Lock()
	select {
	case <-w.shutdown:
		w.mu.Unlock()
		req.fire()
		return req.done
	default:
	}
	req.timer = time.AfterFunc(w.timeout, req.fire)
	w.waiters[gameID] = append(w.waiters[gameID], req)
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
			// Client disconnected
			req.fire()
		case <-req.done:
		case <-w.shutdown:
			req.fire()
		}
		req.timer.Stop()
		w.removeWaiter(gameID, req)
	}()

	return req.done
}

// NotifyGame wakes all clients waiting on a game whose known version differs
func (w *WaitRegistry) NotifyGame(gameID string, version int) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, req := range w.waiters[gameID] {
		if req.Version != version {
			req.fire()
		}
	}
}

// RemoveGame wakes and forgets all waiters for a game (called before game deletion)
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for _, req := range waitList {
		req.fire()
	}
}

// Waiting returns the number of registered waiters for a game
func (w *WaitRegistry) Waiting(gameID string) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.waiters[gameID])
}

// Shutdown releases every waiter and waits for the cleanup goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.shutdownOnce.Do(func() {
		w.mu.Lock()
		close(w.shutdown)
		w.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out after %s", timeout)
	}
}

func (w *WaitRegistry) removeWaiter(gameID string, req *WaitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[gameID]
	for i, waiter := range waitList {
		if waiter == req {
			w.waiters[gameID] = append(waitList[:i], waitList[i+1:]...)
			break
		}
	}

	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
}
