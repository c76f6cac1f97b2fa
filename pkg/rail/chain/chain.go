package chain

import (
	"context"
	"errors"
	"sync"

	"github.com/ib-77/ropeway/pkg/rail"
)

// Chain assembles an ordered, named, guarded sequence of steps over an
// optional context object. Construction is fluent and lazy; Run executes.
type Chain struct {
	contextObj any
	steps      []*rail.Step
	slots      map[string]*rail.Step
	names      map[string]struct{}
	last       *rail.Step
	staged     rail.Producer
	accept     rail.Accept
	reject     rail.Reject
	errs       []error
	sealOnce   sync.Once
	sealed     bool
}

// New creates an empty chain. The context object may be nil; when set, it
// backs scope lookups that miss the result record and receives mirror
// writes.
func New(contextObj any) *Chain {
	return &Chain{
		contextObj: contextObj,
		slots:      map[string]*rail.Step{},
		names:      map[string]struct{}{},
	}
}

func (c *Chain) fail(step, reason string) *Chain {
	c.errs = append(c.errs, &rail.BuildError{Step: step, Reason: reason})
	return c
}

func (c *Chain) mutable(step, op string) bool {
	if c.sealed {
		c.fail(step, op+" on a sealed chain")
		return false
	}
	return true
}

// Slot declares a named placeholder step at the current position. Its
// producer is bound later by Bind with the same name; until then the slot
// may already receive a guard, mirror target or side effects.
func (c *Chain) Slot(name string) *Chain {
	if !c.mutable(name, "Slot") {
		return c
	}
	if name == "" {
		return c.fail("", "empty step name")
	}
	if _, dup := c.names[name]; dup {
		return c.fail(name, "duplicate step name")
	}

	st := rail.NewSlot(name)
	c.names[name] = struct{}{}
	c.slots[name] = st
	c.steps = append(c.steps, st)
	c.last = st
	return c
}

// Start stages the chain's first producer, to be finalized by Bind.
func (c *Chain) Start(p rail.Producer) *Chain {
	return c.Then(p)
}

// Then stages the next producer. A previously staged producer that was
// never bound to a name is demoted to a side effect of the last step,
// which models attaching an unnamed trailing action such as logging.
func (c *Chain) Then(p rail.Producer) *Chain {
	if !c.mutable("", "Then") {
		return c
	}
	if p == nil {
		return c.fail("", "nil producer")
	}
	if c.staged != nil {
		c.demoteStaged()
	}
	c.staged = p
	return c
}

// demoteStaged turns the staged producer into an effect of the last step.
func (c *Chain) demoteStaged() {
	p := c.staged
	c.staged = nil

	if c.last == nil {
		c.fail("", "unnamed producer has no preceding step to attach to")
		return
	}
	c.last.AddEffect(func(ctx context.Context, s *rail.Scope) {
		p(ctx, s)
	})
}

// Bind finalizes the staged producer under name. When an unfilled slot
// with that name exists, the producer fills the slot at the slot's
// declared position; otherwise a new step is appended. Binding a second
// producer to the same name is a construction error.
func (c *Chain) Bind(name string) *Chain {
	if !c.mutable(name, "Bind") {
		return c
	}
	if name == "" {
		return c.fail("", "empty step name")
	}
	if c.staged == nil {
		return c.fail(name, "no staged producer to bind")
	}

	p := c.staged
	c.staged = nil

	if st, ok := c.slots[name]; ok {
		if err := st.SetProducer(p); err != nil {
			c.errs = append(c.errs, err)
			return c
		}
		delete(c.slots, name)
		c.last = st
		return c
	}

	if _, dup := c.names[name]; dup {
		return c.fail(name, "duplicate step name")
	}

	st := rail.NewStep(name, p)
	c.names[name] = struct{}{}
	c.steps = append(c.steps, st)
	c.last = st
	return c
}

// GuardedBy attaches the guard of the most recently bound or declared
// step. The guard runs in a scope that already holds the step's value; a
// falsy result halts the chain at that step.
func (c *Chain) GuardedBy(g rail.Guard) *Chain {
	if !c.mutable("", "GuardedBy") {
		return c
	}
	if g == nil {
		return c.fail("", "nil guard")
	}
	if c.last == nil {
		return c.fail("", "guard has no target step")
	}
	if err := c.last.SetGuard(g); err != nil {
		c.errs = append(c.errs, err)
	}
	return c
}

// MirrorTo stores the last step's value onto the context object under
// target after the step's guard passes.
func (c *Chain) MirrorTo(target string) *Chain {
	if !c.mutable(target, "MirrorTo") {
		return c
	}
	if target == "" {
		return c.fail("", "empty mirror target")
	}
	if c.last == nil {
		return c.fail(target, "mirror has no target step")
	}
	if err := c.last.SetMirror(target); err != nil {
		c.errs = append(c.errs, err)
	}
	return c
}

// Ensure appends a side effect to the last step.
func (c *Chain) Ensure(e rail.Effect) *Chain {
	if !c.mutable("", "Ensure") {
		return c
	}
	if e == nil {
		return c.fail("", "nil effect")
	}
	if c.last == nil {
		return c.fail("", "effect has no target step")
	}
	c.last.AddEffect(e)
	return c
}

// OnAccept attaches the accept handler. At most one per chain; the accept
// handler is never inferred from a trailing producer.
func (c *Chain) OnAccept(h rail.Accept) *Chain {
	if !c.mutable("", "OnAccept") {
		return c
	}
	if c.accept != nil {
		return c.fail("", "accept handler already set")
	}
	c.accept = h
	return c
}

// OnReject attaches the reject handler. At most one per chain. Without
// one, a halted run yields nil.
func (c *Chain) OnReject(h rail.Reject) *Chain {
	if !c.mutable("", "OnReject") {
		return c
	}
	if c.reject != nil {
		return c.fail("", "reject handler already set")
	}
	c.reject = h
	return c
}

// Err returns the construction errors recorded so far, joined.
func (c *Chain) Err() error {
	return errors.Join(c.errs...)
}

func (c *Chain) seal() {
	if c.staged != nil {
		c.demoteStaged()
	}
	for _, st := range c.steps {
		if !st.HasProducer() {
			c.fail(st.Name(), "slot was never bound to a producer")
		}
	}
	c.sealed = true
}

// Run seals the chain on first call and executes it once. Construction
// errors are returned before any closure is evaluated. The result is the
// accept handler's value, the reject handler's value on a halt, or nil
// when the relevant handler is absent; the error return carries only
// construction errors, lookup failures and mirror misuse. A sealed chain
// may be run concurrently: every run gets its own scope and record.
func (c *Chain) Run(ctx context.Context) (any, error) {
	c.sealOnce.Do(c.seal)

	if err := c.Err(); err != nil {
		return nil, err
	}
	return rail.Execute(ctx, c.steps, rail.Handlers{
		OnAccept: c.accept,
		OnReject: c.reject,
	}, c.contextObj)
}
