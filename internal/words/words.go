// Package words holds the drawing word pool.
package words

import "math/rand"

var pool = []string{
	"apple", "banana", "cat", "dog", "house", "tree", "car", "plane", "star", "moon",
	"robot", "pizza", "guitar", "phone", "computer", "flower", "bicycle", "mountain", "river", "beach",
	"sun", "rainbow", "lion", "turtle", "dragon", "castle", "rocket", "camera", "book", "bread",
}

// Pick returns a random word not present in used. When every word has been
// used it falls back to a random word from the full pool instead of failing,
// so long sessions keep going with repeats.
func Pick(used []string) string {
	seen := make(map[string]bool, len(used))
	for _, w := range used {
		seen[w] = true
	}

	available := make([]string, 0, len(pool))
	for _, w := range pool {
		if !seen[w] {
			available = append(available, w)
		}
	}
	if len(available) == 0 {
		return pool[rand.Intn(len(pool))]
	}
	return available[rand.Intn(len(available))]
}
