package gen

import (
	"bytes"
	"fmt"
	"text/template"
	"unicode"

	"golang.org/x/tools/imports"

	"github.com/lighter/common/internal/pagination"
)

// ImportPath is the import path generated code uses for the runtime helpers.
const ImportPath = "github.com/lighter/common/internal/pagination"

// maxVariants bounds the sort enum, which is backed by a uint8.
const maxVariants = 256

// reservedVariants are field names whose variant constant would collide with
// another generated identifier, e.g. UserPaginationSortValues.
var reservedVariants = map[string]bool{
	"Values": true,
}

// Options control rendering.
type Options struct {
	// Strict requires every entity to annotate its default order field.
	Strict bool
	// Filename is used when formatting; it only affects error messages.
	Filename string
}

type fieldData struct {
	Const  string
	Token  string
	Column string
}

type entityData struct {
	Name             string
	Sort             string
	SortVar          string
	Request          string
	Response         string
	Output           string
	Fields           []fieldData
	DefaultConst     string
	DefaultDirection string
	HasRequest       bool
	HasResponse      bool
}

type fileData struct {
	Package  string
	Import   string
	Entities []entityData
}

// Render classifies every target of pkg and returns the formatted source of
// the companion file. Classification failures are returned as
// *pagination.ConfigurationError.
func Render(pkg *Package, opts Options) ([]byte, error) {
	var classifyOpts []pagination.ClassifyOption
	if opts.Strict {
		classifyOpts = append(classifyOpts, pagination.RequireExplicitDefault())
	}

	data := fileData{Package: pkg.Name, Import: ImportPath}
	for _, target := range pkg.Targets {
		entity, err := buildEntity(target, classifyOpts)
		if err != nil {
			return nil, err
		}
		data.Entities = append(data.Entities, entity)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	filename := opts.Filename
	if filename == "" {
		filename = "pagination_gen.go"
	}
	src, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w\n%s", err, buf.String())
	}
	return src, nil
}

func buildEntity(target Target, classifyOpts []pagination.ClassifyOption) (entityData, error) {
	def, err := pagination.Classify(target.Entity, classifyOpts...)
	if err != nil {
		return entityData{}, err
	}
	if target.Response {
		if err := def.RequireOutput(); err != nil {
			return entityData{}, err
		}
	}
	if len(def.Fields) > maxVariants {
		return entityData{}, &pagination.ConfigurationError{
			Entity: def.Entity,
			Reason: fmt.Sprintf("too many orderable fields (%d > %d)", len(def.Fields), maxVariants),
		}
	}

	name := def.Entity
	e := entityData{
		Name:             name,
		Sort:             name + "PaginationSort",
		SortVar:          lowerFirst(name) + "PaginationSort",
		Request:          name + "PaginationRequest",
		Response:         name + "PaginationResponse",
		Output:           def.Output,
		DefaultDirection: "pagination.Ascending",
		HasRequest:       target.Request,
		HasResponse:      target.Response,
	}
	if def.DefaultDirection == pagination.Descending {
		e.DefaultDirection = "pagination.Descending"
	}
	for _, f := range def.Fields {
		if target.Request && reservedVariants[f.Name] {
			return entityData{}, &pagination.ConfigurationError{
				Entity: def.Entity,
				Field:  f.Name,
				Reason: fmt.Sprintf("field name collides with generated %s%s", e.Sort, f.Name),
			}
		}
		e.Fields = append(e.Fields, fieldData{
			Const:  e.Sort + f.Name,
			Token:  f.Token,
			Column: f.Column,
		})
	}
	e.DefaultConst = e.Fields[def.DefaultIndex].Const
	return e, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// OutputName returns the default output file name for the given type names.
func OutputName(types []string) string {
	if len(types) == 1 {
		return pagination.SnakeCase(types[0]) + "_pagination_gen.go"
	}
	return "pagination_gen.go"
}

var fileTemplate = template.Must(template.New("file").Funcs(template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}).Parse(fileTemplateText))
