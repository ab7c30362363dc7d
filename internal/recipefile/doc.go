// Package recipefile parses the line-oriented recipe file syntax:
//
//	# Run the test suite.
//	test:
//	    cargo test
//
//	commit message="wip": check && status
//	    git commit -m "{{message}}"
//
// Headers, parameters, dependency lists, settings and assignments are read
// by a small hand-written scanner; every embedded expression is handed to
// the expr package. The result is a config.Model.
package recipefile
