package session

// Entry is the (username, room) pair a live connection represents.
type Entry struct {
	Username string
	RoomID   string
}

// Registry maps active connection ids to the user they represent. It has no
// internal locking: all access is serialized by the Coordinator.
type Registry struct {
	conns map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]Entry)}
}

func (r *Registry) Register(connID, username, roomID string) {
	r.conns[connID] = Entry{Username: username, RoomID: roomID}
}

func (r *Registry) Lookup(connID string) (Entry, bool) {
	entry, ok := r.conns[connID]
	return entry, ok
}

func (r *Registry) Unregister(connID string) {
	delete(r.conns, connID)
}

func (r *Registry) Len() int { return len(r.conns) }
