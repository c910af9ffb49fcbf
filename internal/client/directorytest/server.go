// Package directorytest provides an in-memory fake of the remote directory
// service for tests. It speaks the same JSON shapes as the real API.
package directorytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// Token is returned by a successful login.
	Token = "QpwL5tke4Pnpja7X4"

	DefaultPerPage = 6
)

// Credentials accepted by /login unless overridden.
const (
	Email    = "eve.holt@reqres.in"
	Password = "cityslicka"
)

type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// Server is a fake directory service. Its zero value is not usable; call New.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	users   map[int]User
	perPage int
	calls   map[string]int
	headers []http.Header

	// Failures maps "METHOD /path" route patterns to a forced status code,
	// e.g. "GET /users" -> 500.
	failures map[string]int
	// gates lets a test hold a route until it sends on the channel.
	gates map[string]chan struct{}
}

// New starts a fake seeded with users.
func New(users ...User) *Server {
	s := &Server{
		users:    make(map[int]User, len(users)),
		perPage:  DefaultPerPage,
		calls:    map[string]int{},
		failures: map[string]int{},
		gates:    map[string]chan struct{}{},
	}
	for _, u := range users {
		s.users[u.ID] = u
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/login", s.login)
	r.Get("/users", s.listUsers)
	r.Get("/users/{id}", s.getUser)
	r.Put("/users/{id}", s.updateUser)
	r.Delete("/users/{id}", s.deleteUser)

	s.Server = httptest.NewServer(r)
	return s
}

// Seed returns n users with ids 1..n.
func Seed(n int) []User {
	out := make([]User, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, User{
			ID:        i,
			Email:     "user" + strconv.Itoa(i) + "@example.com",
			FirstName: "First" + strconv.Itoa(i),
			LastName:  "Last" + strconv.Itoa(i),
			Avatar:    "https://example.com/img/" + strconv.Itoa(i) + ".jpg",
		})
	}
	return out
}

func (s *Server) SetPerPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.perPage = n
}

// Fail forces every request matching route ("GET /users", "DELETE /users/{id}")
// to answer with status. Status 0 clears the failure.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, route)
		return
	}
	s.failures[route] = status
}

// Hold makes requests on route block until the returned release func is
// called once per held request.
func (s *Server) Hold(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[route] = ch
	s.mu.Unlock()
	return func() { ch <- struct{}{} }
}

// Calls reports how many requests hit route.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// LastHeader returns the headers of the most recent request.
func (s *Server) LastHeader() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.headers) == 0 {
		return nil
	}
	return s.headers[len(s.headers)-1]
}

// User returns the stored user with id.
func (s *Server) User(id int) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// enter counts the call and applies any configured gate or failure. It
// returns false when the response has already been written.
func (s *Server) enter(w http.ResponseWriter, r *http.Request, route string) bool {
	s.mu.Lock()
	s.calls[route]++
	s.headers = append(s.headers, r.Header.Clone())
	gate := s.gates[route]
	status := s.failures[route]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return false
		}
	}
	if status != 0 {
		writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
		return false
	}
	return true
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, r, "POST /login") {
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing email or username"})
		return
	}
	if req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing password"})
		return
	}
	if req.Email != Email || req.Password != Password {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": Token})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, r, "GET /users") {
		return
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	s.mu.Lock()
	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	perPage := s.perPage
	total := len(ids)
	totalPages := (total + perPage - 1) / perPage
	data := []User{}
	for i := (page - 1) * perPage; i < page*perPage && i < total; i++ {
		data = append(data, s.users[ids[i]])
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"page":        page,
		"per_page":    perPage,
		"total":       total,
		"total_pages": totalPages,
		"data":        data,
	})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, r, "GET /users/{id}") {
		return
	}
	u, ok := s.lookup(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": u})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, r, "PUT /users/{id}") {
		return
	}
	u, ok := s.lookup(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	var req User
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	req.ID = u.ID
	s.mu.Lock()
	s.users[u.ID] = req
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"avatar":     req.Avatar,
		"updatedAt":  "2025-01-01T00:00:00.000Z",
	})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, r, "DELETE /users/{id}") {
		return
	}
	u, ok := s.lookup(r)
	if ok {
		s.mu.Lock()
		delete(s.users, u.ID)
		s.mu.Unlock()
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(r *http.Request) (User, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return User{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
