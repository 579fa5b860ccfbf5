package editor

import (
	"github.com/roach88/asptool/internal/scenario"
	"github.com/roach88/asptool/internal/testutil"
)

// named builds a scenario with one enabled trigger per name.
func named(names ...string) *scenario.Scenario {
	return testutil.Scenario("test", names...)
}

type (
	reverseShuffler  = testutil.ReverseShuffler
	identityShuffler = testutil.IdentityShuffler
)
