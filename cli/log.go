package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/xiam/minitla/log"
)

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

// logFormat is resolved against the log output when the logger starts, "auto"
// picks text for terminals and JSON otherwise.
type logFormat string

type logConfig struct {
	Level  logLevel  `default:"info" enum:"trace,debug,info,warn,error" env:"MINITLA_LOG_LEVEL"  help:"Set log level."`
	Format logFormat `default:"auto" enum:"auto,json,text"               env:"MINITLA_LOG_FORMAT" help:"Set log format."`
	Caller bool      `default:"false"                                   env:"MINITLA_LOG_CALLER" help:"Include caller information." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start finalizes the logger configuration with all parsed values. Log
// records go to w.
func (f *logConfig) start(ctx context.Context, w io.Writer) {
	log.Config(
		log.WithOutput(w),
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format), w)),
		log.WithCaller(f.Caller),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.Bool("caller", f.Caller),
	)
}
