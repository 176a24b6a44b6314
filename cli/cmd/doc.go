// Package cmd implements the subcommands of the minitla command line.
package cmd
