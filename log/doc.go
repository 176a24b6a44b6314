// Package log provides structured logging for minitla built on [log/slog].
//
// A [Logger] is a value type: copies share nothing mutable, and the zero
// value discards all messages. Library packages (parser, eval) accept a
// Logger through their options and stay silent unless given one. The command
// line front end configures the package-level logger with [Config]:
//
//	log.Config(
//		log.WithLevel(log.ParseLevel("debug")),
//		log.WithFormat(log.FormatText),
//	)
//
// Levels are those of slog plus [LevelTrace], which the parser uses to
// report every stack transition.
package log
