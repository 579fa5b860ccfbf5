package testutil

import "github.com/roach88/asptool/internal/scenario"

// Scenario builds a scenario titled title with one enabled trigger per name.
func Scenario(title string, names ...string) *scenario.Scenario {
	sc := scenario.New(title)
	for _, name := range names {
		sc.AddTrigger(name, true)
	}
	return sc
}
