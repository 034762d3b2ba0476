package session

import "testing"

func TestRegistryRegisterLookup(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Lookup("c1"); ok {
		t.Fatalf("expected empty registry")
	}

	r.Register("c1", "alice", "room-1")
	entry, ok := r.Lookup("c1")
	if !ok || entry.Username != "alice" || entry.RoomID != "room-1" {
		t.Fatalf("unexpected entry: %#v ok=%v", entry, ok)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", r.Len())
	}
}

func TestRegistryOverwrite(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", "alice", "room-1")
	r.Register("c1", "bob", "room-2")

	entry, ok := r.Lookup("c1")
	if !ok || entry.Username != "bob" || entry.RoomID != "room-2" {
		t.Fatalf("expected overwritten entry, got %#v", entry)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", r.Len())
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", "alice", "room-1")
	r.Unregister("c1")

	if _, ok := r.Lookup("c1"); ok {
		t.Fatalf("expected entry removed")
	}

	// Unregistering an unknown connection is a no-op.
	r.Unregister("missing")
}
