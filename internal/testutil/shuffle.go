package testutil

// ReverseShuffler is a deterministic shuffler that reverses its input.
type ReverseShuffler struct{}

// Shuffle reverses the n elements through swap.
func (ReverseShuffler) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

// IdentityShuffler is a shuffler that leaves its input untouched.
type IdentityShuffler struct{}

// Shuffle does nothing.
func (IdentityShuffler) Shuffle(int, func(i, j int)) {}
