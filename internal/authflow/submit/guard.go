package submit

import (
	"errors"
	"sync"
)

// ErrInFlight is returned when a submit starts while a previous one for the
// same form is still Pending.
var ErrInFlight = errors.New("submission already in flight")

// Guard tracks in-flight submissions across requests. Keys are typically a
// browser session id joined with the flow name.
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewGuard returns an empty guard.
func NewGuard() *Guard {
	return &Guard{inFlight: map[string]struct{}{}}
}

// Begin claims key. The returned func releases it and is safe to call more
// than once.
func (g *Guard) Begin(key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return nil, ErrInFlight
	}
	g.inFlight[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, key)
			g.mu.Unlock()
		})
	}, nil
}

// Key joins a session id and flow into a guard key.
func Key(sessionID string, flow Flow) string {
	return sessionID + "/" + string(flow)
}
