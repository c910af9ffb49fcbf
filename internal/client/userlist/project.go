package userlist

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

// DefaultLocale is used when none is configured or the configured one does
// not parse.
const DefaultLocale = "en"

// Projector filters and sorts a page for display. The zero value sorts with
// DefaultLocale.
type Projector struct {
	Locale string
}

// Project is Projector{}.Project.
func Project(items []models.User, search string, field models.SortField, order models.SortOrder) []models.User {
	return Projector{}.Project(items, search, field, order)
}

// Project returns the users of items that match search, ordered by field.
// It never modifies items. Matching is a case-insensitive substring test over
// first name, last name and email; a blank query matches everything.
// Ordering is collation-aware and case-insensitive, and stable on ties in
// both directions.
func (p Projector) Project(items []models.User, search string, field models.SortField, order models.SortOrder) []models.User {
	out := filter(items, search)
	if len(out) < 2 {
		return out
	}

	col := collate.New(p.tag(), collate.IgnoreCase)
	cmp := func(a, b models.User) int {
		return col.CompareString(a.Field(field), b.Field(field))
	}
	if order == models.Desc {
		asc := cmp
		cmp = func(a, b models.User) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func (p Projector) tag() language.Tag {
	if p.Locale == "" {
		return language.English
	}
	t, err := language.Parse(p.Locale)
	if err != nil {
		return language.English
	}
	return t
}

func filter(items []models.User, search string) []models.User {
	out := make([]models.User, 0, len(items))
	if strings.TrimSpace(search) == "" {
		return append(out, items...)
	}

	q := strings.ToLower(search)
	for _, u := range items {
		if strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}
