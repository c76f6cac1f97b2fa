package rail

import (
	"time"

	"github.com/google/uuid"
)

// Scope is the lookup environment a chain executes in. Lookups consult
// the ordered record of already-computed step results first, then fall
// back to the enclosing context object's members. Each execution gets a
// fresh Scope stamped with a run id and a start time.
type Scope struct {
	id        uuid.UUID
	startedAt time.Time
	names     []string
	values    map[string]any
	members   *memberView
	err       error
}

func newScope(contextObj any) *Scope {
	return &Scope{
		id:        uuid.New(),
		startedAt: time.Now().UTC(),
		values:    map[string]any{},
		members:   newMemberView(contextObj),
	}
}

// Get resolves name against the result record, then the context members.
// An unresolved name records a LookupError on the scope (the first one
// sticks) and yields nil; the runner propagates the recorded error out of
// the execution.
func (s *Scope) Get(name string) any {
	if v, ok := s.values[name]; ok {
		return v
	}
	if v, ok := s.members.member(name); ok {
		return v
	}
	if s.err == nil {
		s.err = &LookupError{Name: name}
	}
	return nil
}

// Lookup is the non-erroring form of Get for closures that probe.
func (s *Scope) Lookup(name string) (any, bool) {
	if v, ok := s.values[name]; ok {
		return v, true
	}
	return s.members.member(name)
}

// Names returns the recorded step names in insertion order. After a halt
// the list is truncated at the halting step.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Snapshot copies the result record.
func (s *Scope) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// RunID identifies this execution.
func (s *Scope) RunID() uuid.UUID {
	return s.id
}

// StartedAt is the execution start time (UTC).
func (s *Scope) StartedAt() time.Time {
	return s.startedAt
}

// Err returns the sticky lookup error, if any closure recorded one.
func (s *Scope) Err() error {
	return s.err
}

func (s *Scope) set(name string, value any) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}
