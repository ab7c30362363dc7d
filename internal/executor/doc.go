// Package executor runs a resolved plan, one recipe invocation at a time.
//
// Every entry is rendered against its bound scope and handed to a
// ProcessRunner. Line bodies become a single shell script, so the working
// directory and variables set by one command are visible to the next;
// bodies starting with a `#!` directive are written to a file and passed to
// the named interpreter. The first nonzero exit stops the run.
package executor
