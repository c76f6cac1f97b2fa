// Package chain provides the fluent construction API for rail step lists.
//
// A chain is built incrementally and executed via Run, which delegates to
// rail.Execute:
//
//	out, err := chain.New(user).
//		Start(cleanInput).Bind("clean").
//		GuardedBy(noSpecialChars).
//		Then(passwordLength).Bind("len").
//		GuardedBy(longEnough).
//		OnAccept(loggedIn).
//		OnReject(denied).
//		Run(ctx)
//
// Key operations:
// - New: create a chain over an optional context object
// - Slot: pre-declare a named step whose producer is bound later
// - Start/Then: stage a producer, Bind: finalize it under a name
// - GuardedBy/Ensure/MirrorTo: decorate the most recent step
// - OnAccept/OnReject: attach the terminal handlers, at most once each
// - Run: seal and execute
//
// Construction never evaluates any closure. Misuse (duplicate names,
// guards with no target step, unfilled slots) is recorded as it happens
// and returned by Err and Run before anything executes. A staged producer
// that is never bound to a name becomes a side effect of the step that
// precedes it. The first Run seals the chain; a sealed chain rejects
// further construction and is safe for concurrent Run calls.
package chain
