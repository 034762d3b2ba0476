package ws

import "sync"

// Groups is the broadcast-group side of the transport: it tracks live
// connections and their group subscriptions, and fans frames out to groups.
// Every connection is also subscribed to a private group named by its own
// id, which is how single-connection sends are addressed.
//
// Membership is kept in subscription order; the session core relies on that
// order when it emits membership snapshots.
type Groups struct {
	mu      sync.RWMutex
	conns   map[string]*Conn
	members map[string][]string // group id -> conn ids, subscription order
	joined  map[string][]string // conn id -> group ids, subscription order
}

func NewGroups() *Groups {
	return &Groups{
		conns:   make(map[string]*Conn),
		members: make(map[string][]string),
		joined:  make(map[string][]string),
	}
}

// AddConn registers a live connection and subscribes it to its private group.
func (g *Groups) AddConn(c *Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.conns[c.ID] = c
	g.subscribeLocked(c.ID, c.ID)
}

// RemoveConn deregisters a connection and removes it from every group.
func (g *Groups) RemoveConn(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, group := range g.joined[connID] {
		g.members[group] = remove(g.members[group], connID)
		if len(g.members[group]) == 0 {
			delete(g.members, group)
		}
	}
	delete(g.joined, connID)
	delete(g.conns, connID)
}

func (g *Groups) Subscribe(connID, groupID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subscribeLocked(connID, groupID)
}

func (g *Groups) Unsubscribe(connID, groupID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members[groupID] = remove(g.members[groupID], connID)
	if len(g.members[groupID]) == 0 {
		delete(g.members, groupID)
	}
	g.joined[connID] = remove(g.joined[connID], groupID)
}

func (g *Groups) subscribeLocked(connID, groupID string) {
	if contains(g.members[groupID], connID) {
		return
	}
	g.members[groupID] = append(g.members[groupID], connID)
	g.joined[connID] = append(g.joined[connID], groupID)
}

// Send delivers an event to a single connection via its private group.
func (g *Groups) Send(connID, event string, payload any) {
	g.mu.RLock()
	conn := g.conns[connID]
	g.mu.RUnlock()
	if conn != nil {
		conn.Emit(event, payload)
	}
}

// Broadcast delivers an event to every member of a group except the listed
// connection ids.
func (g *Groups) Broadcast(groupID, event string, payload any, except ...string) {
	g.mu.RLock()
	targets := make([]*Conn, 0, len(g.members[groupID]))
	for _, id := range g.members[groupID] {
		if contains(except, id) {
			continue
		}
		if conn, ok := g.conns[id]; ok {
			targets = append(targets, conn)
		}
	}
	g.mu.RUnlock()

	for _, conn := range targets {
		conn.Emit(event, payload)
	}
}

// GroupMembers lists the connection ids subscribed to a group, in
// subscription order. The in-memory implementation cannot fail; the error is
// part of the transport contract.
func (g *Groups) GroupMembers(groupID string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.members[groupID]))
	copy(out, g.members[groupID])
	return out, nil
}

// ConnGroups lists every group a connection is subscribed to, including its
// private channel.
func (g *Groups) ConnGroups(connID string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.joined[connID]))
	copy(out, g.joined[connID])
	return out
}

// Counts reports live connections and occupied rooms, excluding private
// per-connection groups.
func (g *Groups) Counts() (connections, rooms int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for group := range g.members {
		if _, private := g.conns[group]; !private {
			rooms++
		}
	}
	return len(g.conns), rooms
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	for i, item := range list {
		if item == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
