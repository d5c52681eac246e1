package app

import (
	"math"

	"disc-quiz-service/internal/domain"
)

// Score tallies DISC letters into a percentage distribution.
// Letters outside D, I, S, C are ignored. With no countable letters every category is zero.
func Score(answers []domain.Letter) domain.Distribution {
	counts := make(map[domain.Category]int, len(domain.Categories))
	total := 0
	for _, letter := range answers {
		category, ok := domain.CategoryOf(letter)
		if !ok {
			continue
		}
		counts[category]++
		total++
	}

	var dist domain.Distribution
	if total == 0 {
		return dist
	}
	for _, category := range domain.Categories {
		dist.Set(category, round2(float64(counts[category])/float64(total)*100))
	}
	return dist
}

// round2 rounds half to even, so 3.125 becomes 3.12.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
