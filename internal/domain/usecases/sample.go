package usecases

import (
	"math/rand"
	"strings"
)

// SampleSeparator joins sampled identifiers.
const SampleSeparator = ", "

// Sample draws up to count distinct entries from pool without replacement
// and joins them with SampleSeparator. When count exceeds the pool the
// result is truncated to the whole pool in random order. The caller's
// slice is left untouched.
func Sample(pool []string, count int, rng *rand.Rand) string {
	if len(pool) == 0 || count <= 0 {
		return ""
	}

	remaining := make([]string, len(pool))
	copy(remaining, pool)

	picked := make([]string, 0, min(count, len(pool)))
	for len(picked) < count && len(remaining) > 0 {
		i := rng.Intn(len(remaining))
		picked = append(picked, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}

	return strings.Join(picked, SampleSeparator)
}
