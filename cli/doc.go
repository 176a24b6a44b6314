// Package cli implements the minitla command line: flag parsing with kong,
// logger setup, optional profiling and the mapping from errors to exit codes.
package cli
