package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/vocabquest/internal/model"
)

func pairsByKey(t *testing.T, cards []model.MatchingCard) map[string][]model.MatchingCard {
	t.Helper()
	byKey := map[string][]model.MatchingCard{}
	for _, c := range cards {
		byKey[c.Key] = append(byKey[c.Key], c)
	}
	for key, pair := range byKey {
		require.Len(t, pair, 2, "key %q", key)
		assert.NotEqual(t, pair[0].Side, pair[1].Side, "key %q needs one card per side", key)
	}
	return byKey
}

func TestMatchingCardsCatAndDog(t *testing.T) {
	pool := []model.VocabularyItem{
		{Word: "cat", Definition: "(n.) 貓"},
		{Word: "dog", Definition: "(n.) 狗"},
	}
	cards := NewWithSeed(1).MatchingCards(2, pool)
	require.Len(t, cards, 4)

	byKey := pairsByKey(t, cards)
	require.Len(t, byKey, 2)
	contents := map[string]string{}
	for _, c := range cards {
		contents[c.Side.String()+":"+c.Content] = c.Key
	}
	assert.Equal(t, "cat(n.) 貓", contents["EN:cat"])
	assert.Equal(t, "cat(n.) 貓", contents["CN:貓"])
	assert.Equal(t, "dog(n.) 狗", contents["EN:dog"])
	assert.Equal(t, "dog(n.) 狗", contents["CN:狗"])

	ids := map[string]struct{}{}
	for _, c := range cards {
		ids[c.ID] = struct{}{}
		assert.False(t, c.Matched)
	}
	assert.Len(t, ids, 4, "card ids must be unique")
}

func TestMatchingCardsReturnsExactCount(t *testing.T) {
	var pool []model.VocabularyItem
	for i := 0; i < 30; i++ {
		pool = append(pool, model.VocabularyItem{Word: fmt.Sprintf("word%d", i), Definition: fmt.Sprintf("(n.) 定義%d", i)})
	}
	for seed := int64(0); seed < 20; seed++ {
		cards := NewWithSeed(seed).MatchingCards(12, pool)
		require.Len(t, cards, 24)
		assert.Len(t, pairsByKey(t, cards), 12)
	}
}

func TestMatchingCardsDedupesIdentityAndDefinition(t *testing.T) {
	pool := []model.VocabularyItem{
		{Word: "big", Definition: "(adj.) 大的"},
		{Word: "large", Definition: "(adj.) 大的"},
		{Word: "Cat", Definition: "(n.) 貓"},
		{Word: "cat", Definition: "(n.) 貓咪"},
		{Word: "sun", Definition: "(n.) 太陽"},
	}
	for seed := int64(0); seed < 50; seed++ {
		cards := NewWithSeed(seed).MatchingCards(3, pool)
		require.Len(t, cards, 6)
		english := map[string]bool{}
		chinese := map[string]bool{}
		for _, c := range cards {
			if c.Side == model.SideEnglish {
				assert.False(t, english[c.Content], "duplicate english %q", c.Content)
				english[c.Content] = true
			} else {
				assert.False(t, chinese[c.Content], "duplicate chinese %q", c.Content)
				chinese[c.Content] = true
			}
		}
	}
}

func TestMatchingCardsRelaxedPassFillsRemainder(t *testing.T) {
	pool := []model.VocabularyItem{
		{Word: "big", Definition: "(adj.) 大的"},
		{Word: "large", Definition: "(adj.) 大的"},
	}
	cards := NewWithSeed(3).MatchingCards(2, pool)
	require.Len(t, cards, 4, "definition dedup is relaxed when the pool is short")
	pairsByKey(t, cards)
}

func TestMatchingCardsShowsPosForRepeatedWords(t *testing.T) {
	pool := []model.VocabularyItem{
		{Word: "fish", Definition: "(n.) 魚"},
		{Word: "fish", Definition: "(v.) 釣魚"},
		{Word: "frog", Definition: "(n.) 青蛙"},
	}
	cards := NewWithSeed(7).MatchingCards(3, pool)
	require.Len(t, cards, 6)
	var english []string
	for _, c := range cards {
		if c.Side == model.SideEnglish {
			english = append(english, c.Content)
		}
	}
	assert.ElementsMatch(t, []string{"fish\n(n.)", "fish\n(v.)", "frog"}, english)
}

func TestMatchingCardsInsufficientPool(t *testing.T) {
	pool := []model.VocabularyItem{
		{Word: "cat", Definition: "(n.) 貓"},
		{Word: "CAT", Definition: "(n.) 貓"},
	}
	cards := NewWithSeed(1).MatchingCards(5, pool)
	assert.Len(t, cards, 2, "only one distinct identity is available")

	assert.Empty(t, NewWithSeed(1).MatchingCards(0, pool))
	assert.Empty(t, NewWithSeed(1).MatchingCards(3, nil))
}

func TestCloneShuffledKeepsContent(t *testing.T) {
	pool := []model.VocabularyItem{
		{Word: "cat", Definition: "(n.) 貓"},
		{Word: "dog", Definition: "(n.) 狗"},
		{Word: "sun", Definition: "(n.) 太陽"},
	}
	g := NewWithSeed(5)
	cards := g.MatchingCards(3, pool)
	clone := g.CloneShuffled(cards)
	assert.ElementsMatch(t, cards, clone)
	clone[0].Matched = true
	for _, c := range cards {
		assert.False(t, c.Matched, "clone must not alias the original")
	}
}
