package inmem

import (
	"testing"

	"github.com/google/uuid"
)

func randomUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewRandom()
	if err != nil {
		t.Fatalf("generate random UUID: %v", err)
	}
	return id
}
