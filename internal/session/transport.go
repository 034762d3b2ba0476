package session

// Transport is the fan-out surface the coordinator drives: per-connection
// sends, room-grouped broadcasts, and group membership. The websocket layer
// implements it for production; tests use an in-memory fake.
//
// Group membership at the transport is the source of truth for who is in a
// room. The coordinator queries it on demand and never caches it.
type Transport interface {
	// Send delivers an event to a single connection.
	Send(connID, event string, payload any)
	// Broadcast delivers an event to every member of a group, skipping any
	// connection ids listed in except.
	Broadcast(groupID, event string, payload any, except ...string)
	// Subscribe adds a connection to a broadcast group.
	Subscribe(connID, groupID string)
	// Unsubscribe removes a connection from a broadcast group.
	Unsubscribe(connID, groupID string)
	// GroupMembers lists the connection ids subscribed to a group, in
	// subscription order.
	GroupMembers(groupID string) ([]string, error)
	// ConnGroups lists every group a connection is subscribed to, including
	// its private per-connection channel.
	ConnGroups(connID string) []string
}
