// Package gen reads annotated entity structs from Go source and renders their
// pagination companion types.
package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/lighter/common/internal/pagination"
)

// Directive prefixes recognized in a type's doc comment.
const (
	RequestDirective  = "pagination:request"
	ResponseDirective = "pagination:response"
)

// Target is one entity selected for generation.
type Target struct {
	Entity   pagination.Entity
	Request  bool
	Response bool
	// Position of the type declaration, for error messages.
	Position token.Position
}

// Package is the parsed input of one generator run.
type Package struct {
	Name    string
	Dir     string
	Targets []Target
}

// ParseDir parses the non-test, non-generated Go files in dir. When types is
// empty every type carrying a pagination directive is selected; otherwise only
// the named types are, and a named type without directives gets a request.
func ParseDir(dir string, types []string) (*Package, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	sort.Strings(matches)

	fset := token.NewFileSet()
	var files []*ast.File
	for _, path := range matches {
		base := filepath.Base(path)
		if strings.HasSuffix(base, "_test.go") || strings.HasSuffix(base, "_gen.go") {
			continue
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Go source files in %s", dir)
	}

	pkg, err := collect(fset, files, types)
	if err != nil {
		return nil, err
	}
	pkg.Dir = dir
	return pkg, nil
}

// ParseSource parses a single in-memory file. It is the entry point for tests
// and editor integrations.
func ParseSource(filename string, src []byte, types []string) (*Package, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return collect(fset, []*ast.File{f}, types)
}

type typeDecl struct {
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
}

func collect(fset *token.FileSet, files []*ast.File, types []string) (*Package, error) {
	pkg := &Package{Name: files[0].Name.Name}
	structs := make(map[string]*ast.StructType)
	var decls []typeDecl

	for _, f := range files {
		if f.Name.Name != pkg.Name {
			return nil, fmt.Errorf("multiple packages: %s and %s", pkg.Name, f.Name.Name)
		}
		for _, d := range f.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, s := range gd.Specs {
				ts := s.(*ast.TypeSpec)
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				structs[ts.Name.Name] = st
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				decls = append(decls, typeDecl{spec: ts, doc: doc})
			}
		}
	}

	filtered := len(types) > 0
	wanted := make(map[string]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}
	missing := make(map[string]bool, len(types))
	for _, t := range types {
		missing[t] = true
	}

	for _, d := range decls {
		name := d.spec.Name.Name
		target := Target{Position: fset.Position(d.spec.Pos())}
		target.Entity.Name = name

		directives, err := parseDirectives(d.doc, &target)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target.Position, err)
		}
		switch {
		case filtered && !wanted[name]:
			continue
		case filtered && !directives:
			target.Request = true
		case !directives:
			continue
		}
		delete(missing, name)

		target.Entity.Fields = structFields(structs, structs[name], map[string]bool{name: true})
		pkg.Targets = append(pkg.Targets, target)
	}

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("struct types not found: %s", strings.Join(names, ", "))
	}
	return pkg, nil
}

func parseDirectives(doc *ast.CommentGroup, target *Target) (bool, error) {
	if doc == nil {
		return false, nil
	}
	found := false
	for _, c := range doc.List {
		text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
		switch {
		case text == RequestDirective:
			target.Request = true
			found = true
		case strings.HasPrefix(text, ResponseDirective):
			target.Response = true
			found = true
			for _, arg := range strings.Fields(strings.TrimPrefix(text, ResponseDirective)) {
				key, value, ok := strings.Cut(arg, "=")
				if !ok || key != "output" || value == "" {
					return found, fmt.Errorf("malformed %s argument %q", ResponseDirective, arg)
				}
				target.Entity.Output = value
			}
		}
	}
	return found, nil
}

// structFields lists the exported fields of st in declaration order.
// Untagged embedded structs declared in the same package are flattened.
func structFields(structs map[string]*ast.StructType, st *ast.StructType, visiting map[string]bool) []pagination.Field {
	var fields []pagination.Field
	for _, f := range st.Fields.List {
		tag := fieldTag(f)

		if len(f.Names) == 0 {
			name := embeddedName(f.Type)
			if _, tagged := tag.Lookup(pagination.TagKey); !tagged {
				if inner, ok := structs[name]; ok && !visiting[name] {
					visiting[name] = true
					fields = append(fields, structFields(structs, inner, visiting)...)
					delete(visiting, name)
					continue
				}
			}
			if ast.IsExported(name) {
				fields = append(fields, pagination.Field{Name: name, Tag: tag})
			}
			continue
		}

		for _, n := range f.Names {
			if n.IsExported() {
				fields = append(fields, pagination.Field{Name: n.Name, Tag: tag})
			}
		}
	}
	return fields
}

func fieldTag(f *ast.Field) reflect.StructTag {
	if f.Tag == nil {
		return ""
	}
	raw, err := strconv.Unquote(f.Tag.Value)
	if err != nil {
		return ""
	}
	return reflect.StructTag(raw)
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	}
	return ""
}
