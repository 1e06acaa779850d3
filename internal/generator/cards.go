package generator

import (
	"github.com/google/uuid"

	"github.com/verte-zerg/vocabquest/internal/model"
	"github.com/verte-zerg/vocabquest/internal/vocab"
)

// MatchingCards builds a shuffled set of up to count English/Chinese card pairs.
// Items sharing a word+POS identity or a Chinese definition are skipped first;
// a relaxed pass then fills the remainder by identity only. Fewer pairs are
// returned when the pool cannot supply count distinct identities.
func (g *Generator) MatchingCards(count int, pool []model.VocabularyItem) []model.MatchingCard {
	if count <= 0 || len(pool) == 0 {
		return nil
	}
	shuffled := make([]model.VocabularyItem, len(pool))
	copy(shuffled, pool)
	Shuffle(g, shuffled)

	selected := make([]model.VocabularyItem, 0, count)
	taken := make([]bool, len(shuffled))
	seenIdentity := map[string]struct{}{}
	seenChinese := map[string]struct{}{}

	for i, item := range shuffled {
		if len(selected) >= count {
			break
		}
		_, clean := vocab.ParseDefinition(item.Definition)
		identity := vocab.Identity(item)
		if _, ok := seenIdentity[identity]; ok {
			continue
		}
		if _, ok := seenChinese[clean]; ok {
			continue
		}
		seenIdentity[identity] = struct{}{}
		seenChinese[clean] = struct{}{}
		selected = append(selected, item)
		taken[i] = true
	}

	for i, item := range shuffled {
		if len(selected) >= count {
			break
		}
		if taken[i] {
			continue
		}
		identity := vocab.Identity(item)
		if _, ok := seenIdentity[identity]; ok {
			continue
		}
		seenIdentity[identity] = struct{}{}
		selected = append(selected, item)
	}

	wordCounts := map[string]int{}
	for _, item := range selected {
		wordCounts[item.Word]++
	}

	cards := make([]model.MatchingCard, 0, len(selected)*2)
	for _, item := range selected {
		pos, clean := vocab.ParseDefinition(item.Definition)
		english := item.Word
		if wordCounts[item.Word] > 1 {
			english = item.Word + "\n" + pos
		}
		key := item.Key()
		cards = append(cards,
			model.MatchingCard{ID: uuid.NewString(), Key: key, Content: english, Side: model.SideEnglish},
			model.MatchingCard{ID: uuid.NewString(), Key: key, Content: clean, Side: model.SideChinese},
		)
	}
	Shuffle(g, cards)
	return cards
}

// CloneShuffled returns an independently shuffled copy of cards.
func (g *Generator) CloneShuffled(cards []model.MatchingCard) []model.MatchingCard {
	out := make([]model.MatchingCard, len(cards))
	copy(out, cards)
	Shuffle(g, out)
	return out
}
