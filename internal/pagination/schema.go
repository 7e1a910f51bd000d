package pagination

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// TagKey is the struct tag that opts a field into ordering.
//
//	`order:""`                  orderable
//	`order:"default"`           orderable, default sort field
//	`order:"default,desc"`      default sort field, descending by default
//	`order:"column=created_on"` orderable, explicit column token
//	`order:"-"`                 ignored
const TagKey = "order"

// Field is one declared field of an entity.
type Field struct {
	Name string
	Tag  reflect.StructTag
}

// Entity is the structural description of a paginated type: its name, the
// name of the type its rows are mapped to in responses, and its fields in
// declaration order.
type Entity struct {
	Name   string
	Output string
	Fields []Field
}

type annotation struct {
	orderable bool
	isDefault bool
	desc      bool
	column    string
}

func parseAnnotation(tag reflect.StructTag) (annotation, error) {
	value, ok := tag.Lookup(TagKey)
	if !ok || value == "-" {
		return annotation{}, nil
	}

	a := annotation{orderable: true}
	for _, opt := range strings.Split(value, ",") {
		opt = strings.TrimSpace(opt)
		switch {
		case opt == "":
		case opt == "default":
			a.isDefault = true
		case opt == "desc":
			a.desc = true
		case strings.HasPrefix(opt, "column="):
			a.column = strings.TrimSpace(strings.TrimPrefix(opt, "column="))
			if a.column == "" {
				return a, fmt.Errorf("empty column option")
			}
		default:
			return a, fmt.Errorf("unknown %s option %q", TagKey, opt)
		}
	}
	return a, nil
}

// SchemaOf describes the struct type of v using reflection. Exported fields of
// embedded structs are flattened in place, the way gorm and encoding/json see
// them.
func SchemaOf(v any) (Entity, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return Entity{}, &ConfigurationError{Entity: fmt.Sprintf("%T", v), Reason: "not a struct type"}
	}

	return Entity{Name: t.Name(), Fields: structFields(t)}, nil
}

func structFields(t reflect.Type) []Field {
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if _, tagged := f.Tag.Lookup(TagKey); !tagged && ft.Kind() == reflect.Struct {
				fields = append(fields, structFields(ft)...)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		fields = append(fields, Field{Name: f.Name, Tag: f.Tag})
	}
	return fields
}

// SnakeCase converts a Go identifier to its snake_case token. Initialisms are
// kept together: "UserID" becomes "user_id" and "HTTPStatus" "http_status".
func SnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)

	for i, r := range runes {
		if r == '-' || r == ' ' {
			r = '_'
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Normalize folds a token for comparison: lower case, separators removed.
func Normalize(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range strings.TrimSpace(token) {
		if r == '_' || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Lookup returns the index of the token in tokens that matches s after
// normalization.
func Lookup(tokens []string, s string) (int, bool) {
	needle := Normalize(s)
	if needle == "" {
		return 0, false
	}
	for i, token := range tokens {
		if Normalize(token) == needle {
			return i, true
		}
	}
	return 0, false
}
