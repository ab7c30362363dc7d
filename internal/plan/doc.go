// Package plan turns a requested recipe invocation into a flat, ordered
// execution plan.
//
// Expansion is depth-first: pre-dependencies in declaration order, then the
// recipe itself, then post-dependencies in declaration order. Every distinct
// (recipe, resolved arguments) pair appears at most once per plan. A pair
// that is re-entered while it is still being expanded is a dependency cycle,
// and resolution fails before anything runs.
package plan
