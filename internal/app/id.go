package app

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// generateID produces a random hex identifier for directory records.
// Isolated here so the ID strategy can evolve independently.
func generateID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	const hex = "0123456789abcdef"
	out := make([]byte, 32)
	for i, v := range b {
		out[i*2] = hex[v>>4]
		out[i*2+1] = hex[v&0x0f]
	}
	return string(out), nil
}

// newGuestID mints an anonymous identity: a fixed prefix plus an opaque
// sortable suffix. ULIDs give collision resistance without coordination.
func newGuestID() string {
	return "guest-" + ulid.Make().String()
}
