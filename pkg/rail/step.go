package rail

import "context"

// Producer computes a step's value in the given scope.
type Producer func(ctx context.Context, s *Scope) any

// Guard decides whether the chain may continue past a step. It runs in a
// scope that already contains the step's own value.
type Guard func(ctx context.Context, s *Scope) bool

// Effect runs for observable side effects only; its return is discarded.
type Effect func(ctx context.Context, s *Scope)

// Accept produces the final result when every guard passed.
type Accept func(ctx context.Context, s *Scope) any

// Reject produces the final result when a guard halted the chain.
type Reject func(ctx context.Context, h Halt) any

// Step is one named unit of computation in a chain: a producer, an
// optional guard, an optional mirror target and an ordered list of
// side effects. Steps are assembled by package chain and must not be
// modified once execution begins.
type Step struct {
	name     string
	producer Producer
	guard    Guard
	effects  []Effect
	mirror   string
}

// NewStep creates a step with a bound producer.
func NewStep(name string, p Producer) *Step {
	return &Step{name: name, producer: p}
}

// NewSlot creates a named placeholder step whose producer is bound later
// via SetProducer. A slot lets a guard or mirror be attached before the
// producer is known.
func NewSlot(name string) *Step {
	return &Step{name: name}
}

func (s *Step) Name() string {
	return s.name
}

// HasProducer reports whether the slot has been bound to a producer.
func (s *Step) HasProducer() bool {
	return s.producer != nil
}

func (s *Step) MirrorTarget() string {
	return s.mirror
}

// SetProducer binds the producer of a slot created by NewSlot.
func (s *Step) SetProducer(p Producer) error {
	if s.producer != nil {
		return &BuildError{Step: s.name, Reason: "producer already bound"}
	}
	s.producer = p
	return nil
}

// SetGuard attaches the step's guard. Each step carries at most one.
func (s *Step) SetGuard(g Guard) error {
	if s.guard != nil {
		return &BuildError{Step: s.name, Reason: "guard already attached"}
	}
	s.guard = g
	return nil
}

// SetMirror names a secondary member on the enclosing context under which
// the step's value is additionally stored after its guard passes.
func (s *Step) SetMirror(target string) error {
	if s.mirror != "" {
		return &BuildError{Step: s.name, Reason: "mirror target already set"}
	}
	s.mirror = target
	return nil
}

// AddEffect appends a post-guard side effect.
func (s *Step) AddEffect(e Effect) {
	s.effects = append(s.effects, e)
}
