package pagination

// Mapper converts a persisted row into its response element. Implementations
// must be total and free of side effects; redaction of sensitive columns
// belongs here.
type Mapper[T any] interface {
	ToResponse() T
}

// MapAll maps every row through its Mapper. The result is never nil, so an
// empty page serializes as [].
func MapAll[E Mapper[T], T any](rows []E) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToResponse())
	}
	return out
}
