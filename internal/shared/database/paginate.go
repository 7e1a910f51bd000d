package database

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lighter/common/internal/pagination"
)

// Paginate returns a gorm scope applying the ordering and window of q.
// Tiebreakers (normally the primary key) follow the requested column in the
// same direction so windows stay stable when sort values repeat. Column
// tokens are quoted by the dialect, never interpolated.
func Paginate(q pagination.Query, tiebreakers ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Column != "" {
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Name: q.Column},
				Desc:   q.Direction.IsDescending(),
			})
		}
		for _, col := range tiebreakers {
			if col == "" || col == q.Column {
				continue
			}
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Name: col},
				Desc:   q.Direction.IsDescending(),
			})
		}
		if q.Offset > 0 {
			db = db.Offset(q.Offset)
		}
		if q.Limit > 0 {
			db = db.Limit(q.Limit)
		}
		return db
	}
}

// Search returns a gorm scope matching term case-insensitively against any
// of columns. An empty term leaves the query untouched.
func Search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(term) + "%"
		exprs := make([]clause.Expression, 0, len(columns))
		for _, col := range columns {
			exprs = append(exprs, clause.Expr{
				SQL:  "? ILIKE ?",
				Vars: []any{clause.Column{Name: col}, pattern},
			})
		}
		return db.Where(clause.Or(exprs...))
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
