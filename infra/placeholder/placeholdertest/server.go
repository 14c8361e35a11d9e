// Package placeholdertest serves an in-memory JSONPlaceholder API for tests.
package placeholdertest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/CrestNiraj12/authordir/domain"
)

// Fixture is the data the fake API serves.
type Fixture struct {
	Users    []domain.User
	Posts    []domain.Post
	Comments []domain.Comment
}

// Sample returns one author with one post and no comments.
func Sample() Fixture {
	return Fixture{
		Users: []domain.User{{
			ID:   1,
			Name: "Leanne",
			Company: domain.Company{
				Name:        "Acme",
				CatchPhrase: "Go",
			},
		}},
		Posts: []domain.Post{{ID: 1, UserID: 1, Title: "T", Body: "B"}},
	}
}

// API is a running fake API. Failures can be injected per request path.
type API struct {
	mu      sync.Mutex
	fixture Fixture
	status  map[string]int
	corrupt map[string]bool
	hits    map[string]int
	server  *httptest.Server
}

// New starts a fake API serving f. It is shut down when the test ends.
func New(t testing.TB, f Fixture) *API {
	t.Helper()
	a := &API{
		fixture: f,
		status:  make(map[string]int),
		corrupt: make(map[string]bool),
		hits:    make(map[string]int),
	}
	a.server = httptest.NewServer(a.Handler())
	t.Cleanup(a.server.Close)
	return a
}

// URL returns the API root.
func (a *API) URL() string {
	return a.server.URL
}

// Fail makes every request to path answer with status.
func (a *API) Fail(path string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status[path] = status
}

// Corrupt makes every request to path answer 200 with a body that is not JSON.
func (a *API) Corrupt(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.corrupt[path] = true
}

// Hits returns how many requests reached path.
func (a *API) Hits(path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[path]
}

// Total returns how many requests reached the API.
func (a *API) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, v := range a.hits {
		n += v
	}
	return n
}

// Handler returns the router without starting a server.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(a.inject)
	r.Get("/users", a.listUsers)
	r.Get("/users/{id}", a.getUser)
	r.Get("/posts", a.listPosts)
	r.Get("/comments", a.listComments)
	return r
}

func (a *API) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.hits[r.URL.Path]++
		status := a.status[r.URL.Path]
		corrupt := a.corrupt[r.URL.Path]
		a.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		if corrupt {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("not-json"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type wireCompany struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
}

type wireUser struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Company  wireCompany `json:"company"`
}

type wirePost struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type wireComment struct {
	ID     int    `json:"id"`
	PostID int    `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

func toWireUser(u domain.User) wireUser {
	return wireUser{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Company:  wireCompany{Name: u.Company.Name, CatchPhrase: u.Company.CatchPhrase},
	}
}

func (a *API) listUsers(w http.ResponseWriter, _ *http.Request) {
	out := make([]wireUser, 0, len(a.fixture.Users))
	for _, u := range a.fixture.Users {
		out = append(out, toWireUser(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	for _, u := range a.fixture.Users {
		if u.ID == id {
			writeJSON(w, http.StatusOK, toWireUser(u))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, struct{}{})
}

func (a *API) listPosts(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.Atoi(r.URL.Query().Get("userId"))
	out := make([]wirePost, 0)
	for _, p := range a.fixture.Posts {
		if userID != 0 && p.UserID != userID {
			continue
		}
		out = append(out, wirePost{ID: p.ID, UserID: p.UserID, Title: p.Title, Body: p.Body})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) listComments(w http.ResponseWriter, r *http.Request) {
	postID, _ := strconv.Atoi(r.URL.Query().Get("postId"))
	out := make([]wireComment, 0)
	for _, c := range a.fixture.Comments {
		if postID != 0 && c.PostID != postID {
			continue
		}
		out = append(out, wireComment{ID: c.ID, PostID: c.PostID, Name: c.Name, Email: c.Email, Body: c.Body})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
