package testlog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Start routes the global logger through the test runner for one test.
func Start(t *testing.T) {
	t.Helper()
	log.Logger = zerolog.New(zerolog.NewTestWriter(t)).With().Timestamp().Logger()
	log.Debug().Str("test", t.Name()).Msg("start")
}
