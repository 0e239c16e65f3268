package starring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func TestAppendContentID(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	ids := appendContentID(pq.StringArray{}, first)
	if len(ids) != 1 || ids[0] != first.String() {
		t.Fatalf("appendContentID() = %v, want [%s]", ids, first)
	}

	ids = appendContentID(ids, second)
	if len(ids) != 2 || ids[1] != second.String() {
		t.Fatalf("appendContentID() = %v, want two entries", ids)
	}

	// Re-adding an existing ID must not duplicate it.
	ids = appendContentID(ids, first)
	if len(ids) != 2 {
		t.Errorf("appendContentID() re-add produced %v, want two entries", ids)
	}
}

func TestRemoveContentID(t *testing.T) {
	keep := uuid.New()
	drop := uuid.New()

	ids := pq.StringArray{keep.String(), drop.String()}

	ids = removeContentID(ids, drop)
	if len(ids) != 1 || ids[0] != keep.String() {
		t.Fatalf("removeContentID() = %v, want [%s]", ids, keep)
	}

	// Removing an ID that is not present is a no-op.
	ids = removeContentID(ids, drop)
	if len(ids) != 1 || ids[0] != keep.String() {
		t.Errorf("removeContentID() unknown ID produced %v, want [%s]", ids, keep)
	}
}
