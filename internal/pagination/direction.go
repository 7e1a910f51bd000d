package pagination

import "strings"

// Direction is the sort direction enum shared by every paginated entity.
type Direction uint8

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection decodes "asc"/"desc" (or "ascending"/"descending"),
// ignoring case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, &ValidationError{Param: "order", Token: s}
}

// IsValid reports whether d is one of the two declared variants.
func (d Direction) IsValid() bool {
	return d == Ascending || d == Descending
}

// IsDescending reports whether d sorts from high to low.
func (d Direction) IsDescending() bool {
	return d == Descending
}

// String returns the query token, "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SQL returns the SQL keyword for d.
func (d Direction) SQL() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// UnmarshalParam lets gin bind the direction from a query parameter.
func (d *Direction) UnmarshalParam(param string) error {
	return d.UnmarshalText([]byte(param))
}
