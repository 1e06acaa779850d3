// Package generator builds randomized question lists and card sets.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/vocabquest/internal/model"
)

// Generator produces randomized game content.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle permutes items in place with a Fisher–Yates shuffle.
func Shuffle[T any](g *Generator, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// SmartShuffle selects count spelling questions from pool.
// Words with earlier mistakes are weighted up by factor. Items are drawn without
// replacement; when count exceeds the pool a fresh round starts, never repeating
// the previous question back to back.
func (g *Generator) SmartShuffle(pool []model.VocabularyItem, count int, weak map[string]int, factor float64) []model.VocabularyItem {
	if len(pool) == 0 || count <= 0 {
		return nil
	}
	result := make([]model.VocabularyItem, 0, count)
	for len(result) < count {
		round := make([]model.VocabularyItem, len(pool))
		copy(round, pool)
		weights := make([]float64, len(round))
		for i, item := range round {
			weights[i] = 1.0 + float64(weak[item.Word])*factor
		}
		for len(round) > 0 && len(result) < count {
			prev := ""
			if len(result) > 0 {
				prev = result[len(result)-1].Word
			}
			idx := g.pickWeighted(allowedWeights(round, weights, prev))
			result = append(result, round[idx])
			round = append(round[:idx], round[idx+1:]...)
			weights = append(weights[:idx], weights[idx+1:]...)
		}
	}
	return result
}

// allowedWeights zeroes the weights of items that repeat prev or that would
// leave the rest of the round impossible to order without a repeat. When
// nothing qualifies it keeps only the first rule, then neither.
func allowedWeights(round []model.VocabularyItem, weights []float64, prev string) []float64 {
	counts := make(map[string]int, len(round))
	for _, item := range round {
		counts[item.Word]++
	}
	strict := make([]float64, len(weights))
	differ := make([]float64, len(weights))
	strictOK, differOK := false, false
	for i, item := range round {
		if prev != "" && item.Word == prev {
			continue
		}
		differ[i] = weights[i]
		differOK = true
		counts[item.Word]--
		if orderable(counts, len(round)-1, item.Word) {
			strict[i] = weights[i]
			strictOK = true
		}
		counts[item.Word]++
	}
	switch {
	case strictOK:
		return strict
	case differOK:
		return differ
	}
	return weights
}

// orderable reports whether n items with the given word counts can be laid
// out with no word twice in a row and without starting with after.
func orderable(counts map[string]int, n int, after string) bool {
	for word, k := range counts {
		limit := (n + 1) / 2
		if word == after {
			limit = n / 2
		}
		if k > limit {
			return false
		}
	}
	return true
}

func (g *Generator) pickWeighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := g.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

// RollDice returns times uniform rolls in [1, max]. A max below 1 rolls 1.
func (g *Generator) RollDice(max, times int) []int {
	if max < 1 {
		max = 1
	}
	rolls := make([]int, 0, times)
	for i := 0; i < times; i++ {
		rolls = append(rolls, g.rnd.Intn(max)+1)
	}
	return rolls
}
