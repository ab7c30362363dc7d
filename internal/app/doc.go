// Package app wires the recipe runner together: it builds the logger, finds
// and loads the recipe file, populates the store and drives a single run
// through resolution and execution. It is decoupled from the CLI so it can be
// driven directly from tests.
package app
