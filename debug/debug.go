package debug

import (
	"log/slog"
	"os"
	"strconv"
)

type debug struct {
	Decode bool
	Encode bool
	Parse  bool
	Fields bool
}

var (
	d   *debug
	log *slog.Logger
)

func init() {
	d = &debug{}
	d.Decode = boolEnv("REFL_DEBUG_DECODE")
	d.Encode = boolEnv("REFL_DEBUG_ENCODE")
	d.Parse = boolEnv("REFL_DEBUG_PARSE")
	d.Fields = boolEnv("REFL_DEBUG_FIELDS")
	if d.Decode || d.Encode || d.Parse || d.Fields {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				return a
			},
		}))
	} else {
		log = slog.New(slog.DiscardHandler)
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Log returns the debug logger. It discards everything unless one of the
// REFL_DEBUG_* variables is set.
func Log() *slog.Logger {
	return log
}

func Decode() bool {
	return d.Decode
}
func Encode() bool {
	return d.Encode
}
func Parse() bool {
	return d.Parse
}
func Fields() bool {
	return d.Fields
}
