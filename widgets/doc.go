// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (stacks, cards, bars, overlay compositor)
//
// Not allowed here:
// - key handling, page state transitions, focus logic, or catalog knowledge
package widgets
