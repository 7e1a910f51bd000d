package gen

const fileTemplateText = `// Code generated by paginationgen. DO NOT EDIT.

package {{.Package}}

import (
	"{{.Import}}"
)
{{range $e := .Entities}}{{if $e.HasRequest}}
// {{$e.Sort}} enumerates the fields {{$e.Name}} can be sorted by.
type {{$e.Sort}} uint8

const (
{{- range $i, $f := $e.Fields}}
	{{$f.Const}}{{if eq $i 0}} {{$e.Sort}} = iota{{end}}
{{- end}}
)

var {{$e.SortVar}}Tokens = [...]string{
{{- range $e.Fields}}
	{{quote .Token}},
{{- end}}
}

var {{$e.SortVar}}Columns = [...]string{
{{- range $e.Fields}}
	{{quote .Column}},
{{- end}}
}

// Default{{$e.Sort}} is used when a request names no sort field.
const Default{{$e.Sort}} = {{$e.DefaultConst}}

// Default{{$e.Name}}PaginationOrder is used when a request names no direction.
const Default{{$e.Name}}PaginationOrder = {{$e.DefaultDirection}}

// {{$e.Sort}}Values returns every {{$e.Sort}} in declaration order.
func {{$e.Sort}}Values() []{{$e.Sort}} {
	return []{{$e.Sort}}{
{{- range $e.Fields}}
		{{.Const}},
{{- end}}
	}
}

// Parse{{$e.Sort}} decodes a sort token. Unknown tokens yield a
// *pagination.ValidationError.
func Parse{{$e.Sort}}(s string) ({{$e.Sort}}, error) {
	i, ok := pagination.Lookup({{$e.SortVar}}Tokens[:], s)
	if !ok {
		return Default{{$e.Sort}}, &pagination.ValidationError{Param: "sort", Token: s}
	}
	return {{$e.Sort}}(i), nil
}

// IsValid reports whether s is a declared variant.
func (s {{$e.Sort}}) IsValid() bool {
	return int(s) < len({{$e.SortVar}}Tokens)
}

// String returns the sort token.
func (s {{$e.Sort}}) String() string {
	if !s.IsValid() {
		s = Default{{$e.Sort}}
	}
	return {{$e.SortVar}}Tokens[s]
}

// Column returns the column token handed to the persistence layer.
func (s {{$e.Sort}}) Column() string {
	if !s.IsValid() {
		s = Default{{$e.Sort}}
	}
	return {{$e.SortVar}}Columns[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s {{$e.Sort}}) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *{{$e.Sort}}) UnmarshalText(text []byte) error {
	v, err := Parse{{$e.Sort}}(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalParam lets gin bind the sort field from a query parameter.
func (s *{{$e.Sort}}) UnmarshalParam(param string) error {
	return s.UnmarshalText([]byte(param))
}

// {{$e.Request}} carries the raw pagination parameters of a {{$e.Name}} listing.
type {{$e.Request}} struct {
	PageParam   *int                  ` + "`" + `form:"page" json:"page,omitempty"` + "`" + `
	LimitParam  *int                  ` + "`" + `form:"limit" json:"limit,omitempty"` + "`" + `
	SearchParam *string               ` + "`" + `form:"search" json:"search,omitempty"` + "`" + `
	SortParam   *{{$e.Sort}}          ` + "`" + `form:"sort" json:"sort,omitempty" swaggertype:"string"` + "`" + `
	OrderParam  *pagination.Direction ` + "`" + `form:"order" json:"order,omitempty" swaggertype:"string" enums:"asc,desc"` + "`" + `
}

// Page returns the 1-based page number.
func (r *{{$e.Request}}) Page() int {
	if r == nil {
		return pagination.PageOf(nil)
	}
	return pagination.PageOf(r.PageParam)
}

// Limit returns the page size, defaulted and clamped.
func (r *{{$e.Request}}) Limit() int {
	if r == nil {
		return pagination.LimitOf(nil)
	}
	return pagination.LimitOf(r.LimitParam)
}

// Offset returns the number of rows preceding the page.
func (r *{{$e.Request}}) Offset() int {
	return pagination.OffsetOf(r.Page(), r.Limit())
}

// Search returns the search term as sent.
func (r *{{$e.Request}}) Search() (string, bool) {
	if r == nil {
		return "", false
	}
	return pagination.SearchOf(r.SearchParam)
}

// Sort returns the requested sort field, or Default{{$e.Sort}}.
func (r *{{$e.Request}}) Sort() {{$e.Sort}} {
	if r == nil || r.SortParam == nil || !r.SortParam.IsValid() {
		return Default{{$e.Sort}}
	}
	return *r.SortParam
}

// Order returns the requested direction, or Default{{$e.Name}}PaginationOrder.
func (r *{{$e.Request}}) Order() pagination.Direction {
	if r == nil || r.OrderParam == nil || !r.OrderParam.IsValid() {
		return Default{{$e.Name}}PaginationOrder
	}
	return *r.OrderParam
}

// Query bundles the resolved parameters for the persistence layer.
func (r *{{$e.Request}}) Query() pagination.Query {
	search, _ := r.Search()
	return pagination.Query{
		Offset:    r.Offset(),
		Limit:     r.Limit(),
		Column:    r.Sort().Column(),
		Direction: r.Order(),
		Search:    search,
	}
}
{{end}}{{if $e.HasResponse}}
// {{$e.Response}} is one page of {{$e.Name}} rows mapped to {{$e.Output}}.
type {{$e.Response}} struct {
	Total int64 ` + "`" + `json:"total" example:"451"` + "`" + `
	Page  int ` + "`" + `json:"page" example:"1"` + "`" + `
	Pages int64 ` + "`" + `json:"pages" example:"46"` + "`" + `
	Data  []{{$e.Output}} ` + "`" + `json:"data"` + "`" + `
}

// New{{$e.Response}} builds a page. Pages is derived from total and limit.
func New{{$e.Response}}(total int64, page, limit int, data []{{$e.Output}}) *{{$e.Response}} {
	if data == nil {
		data = []{{$e.Output}}{}
	}
	return &{{$e.Response}}{
		Total: total,
		Page:  page,
		Pages: pagination.Pages(total, limit),
		Data:  data,
	}
}
{{if $e.HasRequest}}
// {{$e.Response}}From maps rows to {{$e.Output}} and wraps them in a page
// shaped by req.
func {{$e.Response}}From(req *{{$e.Request}}, total int64, rows []*{{$e.Name}}) *{{$e.Response}} {
	return New{{$e.Response}}(total, req.Page(), req.Limit(), pagination.MapAll[*{{$e.Name}}, {{$e.Output}}](rows))
}
{{end}}{{end}}{{end}}`
