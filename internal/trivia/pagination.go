package trivia

// Paginate returns the 1-based page of items with the given page size.
// Pages outside the collection yield an empty, non-nil slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 || len(items) == 0 {
		return []T{}
	}
	// Compare page counts before multiplying so huge pages cannot overflow.
	if page-1 > (len(items)-1)/size {
		return []T{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
