package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/userlist"
)

var users = []models.User{
	{ID: 1, FirstName: "George", LastName: "Bluth", Email: "george.bluth@reqres.in", AvatarURL: "https://reqres.in/img/faces/1-image.jpg"},
	{ID: 2, FirstName: "Janet", LastName: "Weaver", Email: "janet.weaver@reqres.in", AvatarURL: "https://reqres.in/img/faces/2-image.jpg"},
}

func snapshot() userlist.Snapshot {
	return userlist.Snapshot{
		Page:       1,
		TotalPages: 2,
		Loaded:     true,
		Items:      users,
		Visible:    users,
		SortField:  models.SortByFirstName,
		SortOrder:  models.Asc,
		Columns:    models.AllColumns(),
		ViewMode:   models.ViewList,
		HasNext:    true,
	}
}

func plain(s string) string { return ansi.Strip(s) }

func TestUsers_Table(t *testing.T) {
	out := plain(New(200).Users(snapshot(), NoCursor))
	for _, want := range []string{"ID", "Avatar", "First Name", "Last Name", "Email", "Actions", "George", "janet.weaver@reqres.in"} {
		assert.Contains(t, out, want)
	}
}

func TestUsers_HiddenColumnsAndActionsStay(t *testing.T) {
	s := snapshot()
	s.Columns[models.ColumnEmail] = false
	s.Columns[models.ColumnAvatar] = false

	out := plain(New(200).Users(s, 0))
	assert.NotContains(t, out, "janet.weaver@reqres.in")
	assert.NotContains(t, out, "Avatar")
	assert.Contains(t, out, "Actions")
	assert.Contains(t, out, "Weaver")
}

func TestUsers_Empty(t *testing.T) {
	s := snapshot()
	s.Visible = nil
	assert.Equal(t, EmptyMessage, plain(New(80).Users(s, NoCursor)))
}

func TestUsers_Loading(t *testing.T) {
	s := userlist.Snapshot{Loading: true}
	assert.Equal(t, LoadingMessage, plain(New(80).Users(s, NoCursor)))
}

func TestUsers_Grid(t *testing.T) {
	s := snapshot()
	s.ViewMode = models.ViewGrid
	out := plain(New(200).Users(s, 1))

	assert.Contains(t, out, "George Bluth")
	assert.Contains(t, out, "Janet Weaver")
	assert.Contains(t, out, "#2")

	// both cards fit on one row at this width
	var both bool
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "George Bluth") && strings.Contains(line, "Janet Weaver") {
			both = true
		}
	}
	assert.True(t, both)
}

func TestGrid_NarrowStacks(t *testing.T) {
	out := plain(New(20).Grid(users, models.AllColumns(), NoCursor))
	for _, line := range strings.Split(out, "\n") {
		assert.False(t, strings.Contains(line, "George") && strings.Contains(line, "Janet"))
	}
}

func TestTable_TruncatesToWidth(t *testing.T) {
	out := New(40).Table(users, models.AllColumns(), NoCursor)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 40)
	}
}

func TestPager(t *testing.T) {
	s := snapshot()
	assert.Equal(t, "‹ Prev  Page 1 of 2  Next ›", plain(New(80).Pager(s)))
	assert.Empty(t, New(80).Pager(userlist.Snapshot{}))
	assert.Equal(t, "Page 3 of 7", PageLabel(3, 7))
}

func TestSummary(t *testing.T) {
	s := snapshot()
	s.Search = "jan"
	s.SortOrder = models.Desc
	s.Columns[models.ColumnAvatar] = false

	out := plain(New(80).Summary(s))
	assert.Contains(t, out, "sort: First Name (desc)")
	assert.Contains(t, out, `search: "jan"`)
	assert.Contains(t, out, "hidden columns: 1")

	s.Search = "   "
	assert.NotContains(t, plain(New(80).Summary(s)), "search")
}

func TestColumns(t *testing.T) {
	cols := models.AllColumns()
	cols[models.ColumnLastName] = false
	assert.Equal(t, "1 [x] Avatar\n2 [x] First Name\n3 [ ] Last Name\n4 [x] Email", New(80).Columns(cols))
}

func TestDetail(t *testing.T) {
	r := New(80)
	out := plain(r.Detail(users[1], nil))
	assert.Contains(t, out, "Janet Weaver (#2)")
	assert.Contains(t, out, "janet.weaver@reqres.in")
	assert.NotContains(t, out, "→")

	form := models.PatchOf(users[1])
	form.FirstName = "Jan"
	out = plain(r.Detail(users[1], &form))
	assert.Contains(t, out, "→ Jan")
	assert.Contains(t, out, "editing")
}

func TestDeletePrompt(t *testing.T) {
	out := plain(New(80).DeletePrompt(users[0]))
	assert.Contains(t, out, ConfirmDelete)
	assert.Contains(t, out, "George Bluth")
}
