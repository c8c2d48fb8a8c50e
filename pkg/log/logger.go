package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

// Options controls how the process logger renders.
type Options struct {
	Debug bool
	// JSON switches from the human console writer to one JSON object per line,
	// which is what log collectors expect from `flyer serve` in production.
	JSON bool
	// Out defaults to stdout. Stdio transports must log to stderr instead.
	Out io.Writer
}

func NewContextWithLogger(ctx context.Context, opts Options) (context.Context, func()) {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return ""
	}

	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Non-blocking ring buffer: 1000 entries, polled every 5ms.
	var sink io.Writer = os.Stdout
	if opts.Out != nil {
		sink = opts.Out
	}
	wr := diode.NewWriter(sink, 1000, 5*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "logger dropped %d messages\n", missed)
	})

	var out io.Writer = wr
	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        wr,
			TimeFormat: time.DateTime,
			PartsOrder: []string{
				zerolog.LevelFieldName,
				zerolog.TimestampFieldName,
				zerolog.CallerFieldName,
				zerolog.MessageFieldName,
			},
		}
	}

	logger := zerolog.New(out).
		With().
		Timestamp().
		Logger()

	log.Logger = logger

	return logger.WithContext(ctx), func() {
		wr.Close()
	}
}

func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}

// With derives a child logger with extra fields and stores it in the returned context.
func With(ctx context.Context, fields func(zerolog.Context) zerolog.Context) context.Context {
	child := fields(FromCtx(ctx).With()).Logger()
	return child.WithContext(ctx)
}
