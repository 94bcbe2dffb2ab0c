// Package cli implements the integrate command: quad and mc integrate one
// expression given on the command line, run executes job files. Output is
// a text table or JSON; the exit code separates failed jobs from usage
// errors.
package cli
