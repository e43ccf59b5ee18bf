package encio

import (
	"os"

	"github.com/rs/zerolog"
)

// Warnings is where warnings are sent to.
// In many cases gpenc will continue to operate with e.g. incorrectly implemented io.Readers or io.Writers,
// however it does not silently put up with things that seem worrying.
var Warnings = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().
	Timestamp().
	Str("pkg", "gpenc").
	Logger()
