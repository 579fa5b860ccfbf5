package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_Steps(t *testing.T) {
	start := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	clock := NewClock(start, time.Second)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start.Add(time.Second), clock.Now())
	assert.Equal(t, start.Add(2*time.Second), clock.Now())
	assert.Equal(t, int64(3), clock.Calls())
}

func TestClock_ZeroStep(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewClock(start, 0)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start, clock.Now())
}

func TestClock_ThreadSafe(t *testing.T) {
	clock := NewClock(time.Unix(0, 0), time.Millisecond)
	const numGoroutines = 50
	const callsPerGoroutine = 20

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				clock.Now()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(numGoroutines*callsPerGoroutine), clock.Calls())
}

func TestFixedRunID(t *testing.T) {
	g := NewFixedRunID("run-42")
	assert.Equal(t, "run-42", g.Generate())
	assert.Equal(t, "run-42", g.Generate())

	assert.Equal(t, "test-run", NewFixedRunID("").Generate())
}

func TestShufflers(t *testing.T) {
	items := []string{"A", "B", "C", "D", "E"}
	swap := func(i, j int) { items[i], items[j] = items[j], items[i] }

	ReverseShuffler{}.Shuffle(len(items), swap)
	assert.Equal(t, []string{"E", "D", "C", "B", "A"}, items)

	IdentityShuffler{}.Shuffle(len(items), swap)
	assert.Equal(t, []string{"E", "D", "C", "B", "A"}, items)
}

func TestScenario(t *testing.T) {
	sc := Scenario("Sample", "A", "B")

	assert.Equal(t, "Sample", sc.Title)
	assert.Equal(t, []string{"A", "B"}, sc.Names())
	assert.Equal(t, []int{0, 1}, sc.DisplayOrder)
	assert.True(t, sc.Triggers[1].Enabled)
	assert.NoError(t, sc.Validate())
}
