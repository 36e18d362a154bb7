package trivia

// drawResult is the outcome of picking the next quiz question from a pool.
type drawResult int

const (
	drawPicked drawResult = iota
	drawExhausted
	drawEmptyPool
)

// drawNext picks uniformly among pool members whose id is not in previous.
// intn must return a value in [0, n).
func drawNext(pool []Question, previous []int, intn func(n int) int) (*Question, drawResult) {
	if len(pool) == 0 {
		return nil, drawEmptyPool
	}

	seen := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	remaining := make([]Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			remaining = append(remaining, q)
		}
	}
	if len(remaining) == 0 {
		return nil, drawExhausted
	}

	picked := remaining[intn(len(remaining))]
	return &picked, drawPicked
}
