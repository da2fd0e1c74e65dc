package session

import "sync"

// Ref points at a player inside a match. It is a lookup key, not ownership:
// the arena running the match owns the player record.
type Ref struct {
	MatchID  string
	PlayerID string
}

// Directory maps connection ids to the match and player they joined.
// It is shared by every arena, so it only ever stores Ref values.
type Directory struct {
	mu    sync.RWMutex
	conns map[string]Ref
}

func NewDirectory() *Directory {
	return &Directory{conns: make(map[string]Ref)}
}

func (d *Directory) Register(connID, matchID, playerID string) {
	d.mu.Lock()
	d.conns[connID] = Ref{MatchID: matchID, PlayerID: playerID}
	d.mu.Unlock()
}

// Lookup reports ok=false for unknown connections; callers treat that as a
// no-op rather than an error.
func (d *Directory) Lookup(connID string) (Ref, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ref, ok := d.conns[connID]
	return ref, ok
}

func (d *Directory) Remove(connID string) {
	d.mu.Lock()
	delete(d.conns, connID)
	d.mu.Unlock()
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.conns)
}
