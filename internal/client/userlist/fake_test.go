package userlist

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

// fakeService serves pages from memory. A non-nil gate on a page number
// blocks ListUsers for that page until the test sends on it.
type fakeService struct {
	mu sync.Mutex

	pages   map[int]models.Page
	listErr error
	gates   map[int]chan struct{}
	fetches []int

	deleteErr error
	deleted   []int
	delGate   chan struct{}
}

func newFakeService(totalPages int, perPage int) *fakeService {
	f := &fakeService{pages: map[int]models.Page{}, gates: map[int]chan struct{}{}}
	id := 1
	for n := 1; n <= totalPages; n++ {
		p := models.Page{Number: n, TotalPages: totalPages, PerPage: perPage}
		for i := 0; i < perPage; i++ {
			p.Items = append(p.Items, models.User{ID: id, FirstName: "User", LastName: string(rune('A' + id%26)), Email: "u@example.com"})
			id++
		}
		f.pages[n] = p
	}
	return f
}

func (f *fakeService) ListUsers(ctx context.Context, page int) (models.Page, error) {
	f.mu.Lock()
	f.fetches = append(f.fetches, page)
	gate := f.gates[page]
	err := f.listErr
	p := f.pages[page]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return models.Page{}, ctx.Err()
		}
	}
	if err != nil {
		return models.Page{}, err
	}
	return p, nil
}

func (f *fakeService) DeleteUser(ctx context.Context, id int) error {
	f.mu.Lock()
	gate := f.delGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeService) Fetches() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.fetches...)
}

func (f *fakeService) setListErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

func (f *fakeService) gate(page int) chan struct{} {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[page] = ch
	f.mu.Unlock()
	return ch
}

func (f *fakeService) setPage(p models.Page) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[p.Number] = p
}
