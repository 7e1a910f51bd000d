// Package pagination implements declarative, annotation-driven pagination.
//
// Entities opt fields into ordering with the struct tag `order`:
//
//	type User struct {
//		Name      string    `order:""`
//		CreatedAt time.Time `order:"default,desc"`
//	}
//
// The paginationgen command classifies those fields (see Classify) and emits a
// request type, a response type and a sort enum per entity. The generated code
// delegates its numeric semantics to the helpers in this package (PageOf,
// LimitOf, OffsetOf, Pages) so every entity shares the same defaults, which
// are installed once at startup through Configure.
//
// Sort tokens are the snake_case field names ("created_at"). Decoding is
// case-insensitive and ignores '_' and '-' separators, so "createdAt" and
// "CREATED-AT" resolve to the same field.
package pagination
