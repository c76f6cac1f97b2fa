package rail

import (
	"fmt"
	"time"
)

// Halt is the short-circuit event raised by a failing guard. It is data,
// not an error: Execute hands it to the reject handler and never returns
// it through the error channel.
type Halt struct {
	// Step is the name of the step whose guard failed.
	Step string
	// Value is the value the step computed before its guard rejected it.
	Value any
	// At is the halt time (UTC).
	At time.Time
}

// LookupError reports an identifier that resolved neither to a prior step
// result nor to a member of the enclosing context. It is a programming
// error and propagates out of Execute, bypassing the reject handler.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("rail: identifier %q is neither a step result nor a context member", e.Name)
}

// BuildError reports a construction-time misuse: duplicate step names,
// guards or effects with no target step, an unfilled slot, or mutation of
// a sealed chain. Build errors surface before any closure is evaluated.
type BuildError struct {
	Step   string
	Reason string
}

func (e *BuildError) Error() string {
	if e.Step == "" {
		return "rail: build: " + e.Reason
	}
	return fmt.Sprintf("rail: build: step %q: %s", e.Step, e.Reason)
}
