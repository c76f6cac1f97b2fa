package rail

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestScope_RecordShadowsContextMember(t *testing.T) {
	t.Parallel()

	s := newScope(map[string]any{"name": "from-context"})
	s.set("name", "from-record")

	if got := s.Get("name"); got != "from-record" {
		t.Fatalf("record must win over context member, got %v", got)
	}
	if s.Err() != nil {
		t.Fatalf("unexpected lookup error: %v", s.Err())
	}
}

func TestScope_FallsBackToContextMember(t *testing.T) {
	t.Parallel()

	s := newScope(map[string]any{"host": "localhost"})

	if got := s.Get("host"); got != "localhost" {
		t.Fatalf("expected context member, got %v", got)
	}
}

func TestScope_GetRecordsFirstLookupError(t *testing.T) {
	t.Parallel()

	s := newScope(nil)
	if got := s.Get("first"); got != nil {
		t.Fatalf("missing lookup must yield nil, got %v", got)
	}
	_ = s.Get("second")

	var lookupErr *LookupError
	if !errors.As(s.Err(), &lookupErr) || lookupErr.Name != "first" {
		t.Fatalf("expected sticky error for 'first', got: %v", s.Err())
	}
}

func TestScope_LookupDoesNotRecordError(t *testing.T) {
	t.Parallel()

	s := newScope(map[string]any{"present": 1})

	if _, ok := s.Lookup("absent"); ok {
		t.Fatalf("absent name must not resolve")
	}
	if v, ok := s.Lookup("present"); !ok || v != 1 {
		t.Fatalf("expected (1, true), got (%v, %v)", v, ok)
	}
	if s.Err() != nil {
		t.Fatalf("Lookup must not record errors, got: %v", s.Err())
	}
}

func TestScope_NamesAndSnapshotFollowInsertionOrder(t *testing.T) {
	t.Parallel()

	s := newScope(nil)
	s.set("b", 2)
	s.set("a", 1)
	s.set("b", 22) // overwrite keeps position

	if diff := cmp.Diff([]string{"b", "a"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"a": 1, "b": 22}, s.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	// snapshot is a copy
	s.Snapshot()["a"] = 99
	if s.Get("a") != 1 {
		t.Fatalf("snapshot must not alias the record")
	}
}

func TestScope_RunIdentity(t *testing.T) {
	t.Parallel()

	a := newScope(nil)
	b := newScope(nil)

	if a.RunID() == b.RunID() {
		t.Fatalf("runs must have distinct ids")
	}
	if a.StartedAt().IsZero() {
		t.Fatalf("start time must be stamped")
	}
	if a.StartedAt().Location() != time.UTC {
		t.Fatalf("start time must be UTC")
	}
}
