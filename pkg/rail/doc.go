// Package rail contains the core types and the runner for named-step
// guarded chains: ordered sequences of named producers where each step may
// carry a guard predicate and trailing side effects.
//
// Highlights:
// - Step: one named unit of computation (producer, optional guard, effects)
// - Scope: ordered record of computed values with context-member fallback
// - Halt: the short-circuit value produced by a failing guard
// - Execute: run a step list once, dispatching to accept/reject handlers
//
// A failing guard is data, not an error: Execute hands the halting step's
// name and value to the reject handler and stops. Unresolved identifiers
// and mirror-target misuse are runtime errors returned from Execute.
//
// For fluent construction of step lists, see package chain.
package rail
