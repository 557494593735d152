// Package pagination implements page-numbered listings whose offset is
// corrected by the number of items the client deleted locally.
package pagination

// Skip returns the offset of page for the given page size after
// deletedDocCount items already shown to the client were removed.
// Pages start at 1; the result is never negative.
func Skip(page int, pageSize int, deletedDocCount int) int {
	if page < 1 {
		page = 1
	}
	if deletedDocCount < 0 {
		deletedDocCount = 0
	}

	skip := (page-1)*pageSize - deletedDocCount
	if skip < 0 {
		return 0
	}
	return skip
}

// State accumulates the pages of one listing on the client.
type State[T any] struct {
	Results         []T
	Page            int
	TotalDocs       int64
	DeletedDocCount int
}

// Merge folds a fetched page into s. Page 1 (or a nil state) starts over
// with totalDocs; later pages append and keep the known total.
func Merge[T any](s *State[T], page int, items []T, totalDocs int64) *State[T] {
	if s == nil || page <= 1 {
		return &State[T]{
			Results:   append([]T{}, items...),
			Page:      1,
			TotalDocs: totalDocs,
		}
	}

	return &State[T]{
		Results:         append(append([]T{}, s.Results...), items...),
		Page:            page,
		TotalDocs:       s.TotalDocs,
		DeletedDocCount: s.DeletedDocCount,
	}
}

// HasMore reports whether a "load more" request can return anything.
func (s *State[T]) HasMore() bool {
	return s != nil && s.TotalDocs > int64(len(s.Results))
}

func (s *State[T]) NextPage() int {
	if s == nil {
		return 1
	}
	return s.Page + 1
}

// Remove drops the item at i after it was deleted server-side. It returns
// true when the listing became empty while documents remain, in which case
// the caller should refetch page 1.
func (s *State[T]) Remove(i int) bool {
	if s == nil || i < 0 || i >= len(s.Results) {
		return false
	}

	s.Results = append(s.Results[:i:i], s.Results[i+1:]...)
	s.TotalDocs--
	s.DeletedDocCount++

	return len(s.Results) == 0 && s.TotalDocs > 0
}
