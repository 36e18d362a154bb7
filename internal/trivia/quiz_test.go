package trivia

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pool(ids ...int) []Question {
	out := make([]Question, len(ids))
	for i, id := range ids {
		out[i] = Question{ID: id, Category: 5}
	}
	return out
}

func TestDrawNextNeverRepeats(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		q, result := drawNext(pool(1, 2, 3), []int{1, 2}, rng.Intn)
		require.Equal(t, drawPicked, result)
		assert.Equal(t, 3, q.ID)
	}
}

func TestDrawNextExhausted(t *testing.T) {
	q, result := drawNext(pool(1, 2, 3), []int{3, 1, 2, 2}, rand.Intn)
	assert.Nil(t, q)
	assert.Equal(t, drawExhausted, result)

	q, result = drawNext(pool(9), []int{9}, rand.Intn)
	assert.Nil(t, q)
	assert.Equal(t, drawExhausted, result)
}

func TestDrawNextEmptyPool(t *testing.T) {
	called := false
	q, result := drawNext(nil, []int{1}, func(n int) int {
		called = true
		return 0
	})
	assert.Nil(t, q)
	assert.Equal(t, drawEmptyPool, result)
	assert.False(t, called, "random source must not be consulted for an empty pool")
}

func TestDrawNextOnlyOffersUnseenCandidates(t *testing.T) {
	var offered []int
	_, result := drawNext(pool(1, 2, 3, 4, 5), []int{2, 4, 100}, func(n int) int {
		offered = append(offered, n)
		return n - 1
	})
	assert.Equal(t, drawPicked, result)
	assert.Equal(t, []int{3}, offered)
}

func TestDrawNextIsUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	counts := map[int]int{}
	const draws = 6000
	for i := 0; i < draws; i++ {
		q, _ := drawNext(pool(1, 2, 3, 4), []int{4}, rng.Intn)
		counts[q.ID]++
	}
	assert.Len(t, counts, 3)
	for id, n := range counts {
		assert.InDelta(t, draws/3, n, draws/10, "question %d drawn %d times", id, n)
	}
}
