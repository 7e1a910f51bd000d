package pagination

// OrderableField describes one field that callers may sort by.
type OrderableField struct {
	// Name is the Go field name, e.g. "CreatedAt".
	Name string
	// Token is the public sort token, e.g. "created_at".
	Token string
	// Column is the opaque column token handed to the persistence layer.
	Column string
	// Default marks the field used when no sort is requested.
	Default bool
}

// Definition is the classified pagination metadata of one entity.
type Definition struct {
	Entity           string
	Output           string
	Fields           []OrderableField
	DefaultIndex     int
	DefaultDirection Direction
}

type classifyOptions struct {
	requireDefault bool
}

// ClassifyOption customizes Classify.
type ClassifyOption func(*classifyOptions)

// RequireExplicitDefault makes Classify fail when no field is annotated
// `order:"default"` instead of falling back to the first orderable field.
func RequireExplicitDefault() ClassifyOption {
	return func(o *classifyOptions) {
		o.requireDefault = true
	}
}

// Classify walks the fields of e and returns its orderable fields in
// declaration order. It fails with a *ConfigurationError when no field is
// orderable, when more than one field claims to be the default, or when an
// annotation is malformed.
func Classify(e Entity, opts ...ClassifyOption) (*Definition, error) {
	var o classifyOptions
	for _, opt := range opts {
		opt(&o)
	}

	def := &Definition{
		Entity:       e.Name,
		Output:       e.Output,
		DefaultIndex: -1,
	}
	seen := make(map[string]string)

	for _, f := range e.Fields {
		a, err := parseAnnotation(f.Tag)
		if err != nil {
			return nil, &ConfigurationError{Entity: e.Name, Field: f.Name, Reason: err.Error()}
		}
		if !a.orderable {
			continue
		}

		token := SnakeCase(f.Name)
		key := Normalize(token)
		if other, dup := seen[key]; dup {
			return nil, &ConfigurationError{
				Entity: e.Name,
				Field:  f.Name,
				Reason: "sort token " + token + " collides with field " + other,
			}
		}
		seen[key] = f.Name

		if a.desc && !a.isDefault {
			return nil, &ConfigurationError{Entity: e.Name, Field: f.Name, Reason: "desc is only valid on the default field"}
		}
		if a.isDefault {
			if def.DefaultIndex >= 0 {
				return nil, &ConfigurationError{
					Entity: e.Name,
					Field:  f.Name,
					Reason: "multiple default order fields (also " + def.Fields[def.DefaultIndex].Name + ")",
				}
			}
			def.DefaultIndex = len(def.Fields)
			if a.desc {
				def.DefaultDirection = Descending
			}
		}

		column := a.column
		if column == "" {
			column = token
		}
		def.Fields = append(def.Fields, OrderableField{
			Name:    f.Name,
			Token:   token,
			Column:  column,
			Default: a.isDefault,
		})
	}

	if len(def.Fields) == 0 {
		return nil, &ConfigurationError{Entity: e.Name, Reason: "no orderable fields"}
	}
	if def.DefaultIndex < 0 {
		if o.requireDefault {
			return nil, &ConfigurationError{Entity: e.Name, Reason: "no field is annotated as the default order"}
		}
		def.DefaultIndex = 0
		def.Fields[0].Default = true
	}

	return def, nil
}

// Default returns the default sort field.
func (d *Definition) Default() OrderableField {
	return d.Fields[d.DefaultIndex]
}

// Tokens returns the sort tokens in declaration order.
func (d *Definition) Tokens() []string {
	tokens := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		tokens[i] = f.Token
	}
	return tokens
}

// Parse resolves a sort token to its field.
func (d *Definition) Parse(token string) (OrderableField, error) {
	i, ok := Lookup(d.Tokens(), token)
	if !ok {
		return OrderableField{}, &ValidationError{Param: "sort", Token: token}
	}
	return d.Fields[i], nil
}

// RequireOutput reports a *ConfigurationError when the definition has no
// response element type.
func (d *Definition) RequireOutput() error {
	if d.Output == "" {
		return &ConfigurationError{Entity: d.Entity, Reason: "response output type is not specified"}
	}
	return nil
}
