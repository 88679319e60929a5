package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickReturnsPoolWord(t *testing.T) {
	w := Pick(nil)
	assert.Contains(t, pool, w)
}

func TestPickExcludesUsedWords(t *testing.T) {
	// Leave exactly one word available.
	used := append([]string(nil), pool[:len(pool)-1]...)
	last := pool[len(pool)-1]

	for i := 0; i < 20; i++ {
		assert.Equal(t, last, Pick(used))
	}
}

func TestPickFallsBackWhenPoolExhausted(t *testing.T) {
	used := append([]string(nil), pool...)
	w := Pick(used)
	assert.Contains(t, pool, w)
}

func TestPickDrainsWithoutRepeats(t *testing.T) {
	var used []string
	seen := make(map[string]bool)
	for range pool {
		w := Pick(used)
		assert.False(t, seen[w], "word %q repeated before pool exhaustion", w)
		seen[w] = true
		used = append(used, w)
	}
}
