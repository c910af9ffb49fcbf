package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrUnknownSortOrder = errors.New("unknown sort order")
	ErrUnknownColumn    = errors.New("unknown column")
	ErrUnknownViewMode  = errors.New("unknown view mode")
)

// SortField selects the attribute the projection orders by.
type SortField string

const (
	SortByFirstName SortField = "first_name"
	SortByLastName  SortField = "last_name"
	SortByEmail     SortField = "email"
)

// SortFields lists the sort fields in the order a UI cycles through them.
var SortFields = []SortField{SortByFirstName, SortByLastName, SortByEmail}

// Label is the human-readable name of the field.
func (f SortField) Label() string {
	switch f {
	case SortByLastName:
		return "Last Name"
	case SortByEmail:
		return "Email"
	default:
		return "First Name"
	}
}

// Next returns the field after f in SortFields, wrapping around.
func (f SortField) Next() SortField {
	for i, x := range SortFields {
		if x == f {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return SortByFirstName
}

// ParseSortField accepts wire names (first_name), camel case (firstName)
// and short forms (first, last).
func ParseSortField(s string) (SortField, error) {
	switch normalize(s) {
	case "firstname", "first":
		return SortByFirstName, nil
	case "lastname", "last":
		return SortByLastName, nil
	case "email", "mail":
		return SortByEmail, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortField, s)
}

// SortOrder is the direction of the projection.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Toggle flips the direction.
func (o SortOrder) Toggle() SortOrder {
	if o == Desc {
		return Asc
	}
	return Desc
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch normalize(s) {
	case "asc", "ascending", "up":
		return Asc, nil
	case "desc", "descending", "down":
		return Desc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortOrder, s)
}

// Column is a toggleable column of the list view. The actions column is not
// a Column: it is always rendered.
type Column string

const (
	ColumnAvatar    Column = "avatar"
	ColumnFirstName Column = "firstName"
	ColumnLastName  Column = "lastName"
	ColumnEmail     Column = "email"
)

// Columns lists the toggleable columns in display order.
var Columns = []Column{ColumnAvatar, ColumnFirstName, ColumnLastName, ColumnEmail}

// Valid reports whether c is one of Columns.
func (c Column) Valid() bool {
	return slices.Contains(Columns, c)
}

func (c Column) Label() string {
	switch c {
	case ColumnAvatar:
		return "Avatar"
	case ColumnFirstName:
		return "First Name"
	case ColumnLastName:
		return "Last Name"
	case ColumnEmail:
		return "Email"
	}
	return string(c)
}

// Value returns the cell text of c for u.
func (c Column) Value(u User) string {
	switch c {
	case ColumnAvatar:
		return u.AvatarURL
	case ColumnFirstName:
		return u.FirstName
	case ColumnLastName:
		return u.LastName
	case ColumnEmail:
		return u.Email
	}
	return ""
}

func ParseColumn(s string) (Column, error) {
	switch normalize(s) {
	case "avatar":
		return ColumnAvatar, nil
	case "firstname", "first":
		return ColumnFirstName, nil
	case "lastname", "last":
		return ColumnLastName, nil
	case "email", "mail":
		return ColumnEmail, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColumn, s)
}

// ColumnSet records which columns are visible.
type ColumnSet map[Column]bool

// AllColumns returns a set with every column visible.
func AllColumns() ColumnSet {
	s := make(ColumnSet, len(Columns))
	for _, c := range Columns {
		s[c] = true
	}
	return s
}

// Visible returns the visible columns in display order.
func (s ColumnSet) Visible() []Column {
	out := make([]Column, 0, len(Columns))
	for _, c := range Columns {
		if s[c] {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns an independent copy of s.
func (s ColumnSet) Clone() ColumnSet {
	out := make(ColumnSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ViewMode selects between the table and card renderings.
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)

func (m ViewMode) Toggle() ViewMode {
	if m == ViewGrid {
		return ViewList
	}
	return ViewGrid
}

func ParseViewMode(s string) (ViewMode, error) {
	switch normalize(s) {
	case "list", "table":
		return ViewList, nil
	case "grid", "cards":
		return ViewGrid, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownViewMode, s)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}
