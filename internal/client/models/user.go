// Package models defines client-side data models used by the userdir client.
package models

import (
	"fmt"
	"strings"
)

// User is a directory record as the client sees it.
type User struct {
	// ID is assigned by the directory service and never generated locally.
	ID int

	FirstName string
	LastName  string
	Email     string

	// AvatarURL is a display reference; the client does not own the image.
	AvatarURL string
}

// FullName joins first and last name the way every view shows it.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) String() string {
	return fmt.Sprintf("#%d %s <%s>", u.ID, u.FullName(), u.Email)
}

// Field returns the value of the sortable field f.
func (u User) Field(f SortField) string {
	switch f {
	case SortByLastName:
		return u.LastName
	case SortByEmail:
		return u.Email
	default:
		return u.FirstName
	}
}

// UserPatch carries the editable attributes of a User. An update replaces
// all four at once.
type UserPatch struct {
	FirstName string
	LastName  string
	Email     string
	AvatarURL string
}

// PatchOf returns the editable attributes of u.
func PatchOf(u User) UserPatch {
	return UserPatch{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, AvatarURL: u.AvatarURL}
}

// Apply returns u with every editable attribute replaced by p.
func (p UserPatch) Apply(u User) User {
	u.FirstName = p.FirstName
	u.LastName = p.LastName
	u.Email = p.Email
	u.AvatarURL = p.AvatarURL
	return u
}

// Page is one fetched batch of users.
type Page struct {
	// Number is 1-based.
	Number int
	// TotalPages is authoritative only for the response it came with.
	TotalPages int
	PerPage    int
	Total      int
	Items      []User
}
