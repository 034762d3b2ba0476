package session

import "fmt"

// Membership derives the username list for a room by intersecting the
// transport's group membership with the connection registry. Connections
// without a registry entry are skipped: a connection can be mid-teardown, or
// subscribed before its join completed.
type Membership struct {
	transport Transport
	registry  *Registry
}

func NewMembership(transport Transport, registry *Registry) *Membership {
	return &Membership{transport: transport, registry: registry}
}

// ListUsers returns the usernames currently in the room, in subscription
// order.
func (m *Membership) ListUsers(roomID string) ([]string, error) {
	ids, err := m.transport.GroupMembers(roomID)
	if err != nil {
		return nil, fmt.Errorf("query group members for room %s: %w", roomID, err)
	}
	users := make([]string, 0, len(ids))
	for _, id := range ids {
		if entry, ok := m.registry.Lookup(id); ok {
			users = append(users, entry.Username)
		}
	}
	return users, nil
}
