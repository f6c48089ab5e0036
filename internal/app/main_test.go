package app_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/user-management-console/internal/app"
	"github.com/nekogravitycat/user-management-console/internal/user"
)

// fakeUsersAPI mimics the mock REST API: reads serve a fixed list,
// writes succeed without persisting anything.
type fakeUsersAPI struct {
	mu       sync.Mutex
	users    []user.User
	failing  map[string]bool // method -> respond 500
	requests []string
	bodies   map[string][]byte
}

func newFakeUsersAPI() *fakeUsersAPI {
	return &fakeUsersAPI{
		users: []user.User{
			{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz", Company: user.Company{Name: "Romaguera-Crona"}},
			{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv", Company: user.Company{Name: "Deckow-Crist"}},
			{ID: 3, Name: "Clementine Bauch", Email: "Nathan@yesenia.net", Company: user.Company{Name: "Romaguera-Jacobson"}},
		},
		failing: map[string]bool{},
		bodies:  map[string][]byte{},
	}
}

func (f *fakeUsersAPI) fail(method string, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[method] = on
}

func (f *fakeUsersAPI) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeUsersAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	f.requests = append(f.requests, key)
	body, _ := io.ReadAll(r.Body)
	f.bodies[key] = body

	if f.failing[r.Method] {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/users":
		json.NewEncoder(w).Encode(f.users)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/users/"):
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/users/"))
		for _, u := range f.users {
			if u.ID == id {
				json.NewEncoder(w).Encode(u)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "{}")
	case r.Method == http.MethodPost && r.URL.Path == "/users":
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": 11}`)
	default:
		io.WriteString(w, "{}")
	}
}

// testClient drives the router like a browser: it keeps the session cookie.
type testClient struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newTestEnv(t *testing.T, cfg app.Config) (*testClient, *fakeUsersAPI) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := newFakeUsersAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	cfg.UsersAPIBaseURL = srv.URL
	cfg.HTTPClient = srv.Client()
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "test-secret"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 30 * time.Minute
	}

	container := app.NewContainer(cfg)
	return &testClient{t: t, router: container.Router}, api
}

func (c *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == app.SessionCookieName {
			if ck.MaxAge < 0 {
				c.cookie = nil
			} else {
				c.cookie = ck
			}
		}
	}
	return w
}

func (c *testClient) executeRequest(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody []byte
	switch b := body.(type) {
	case nil:
	case json.RawMessage:
		reqBody = b
	default:
		reqBody, _ = json.Marshal(b)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *testClient) submitForm(path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	return c.do(req)
}

func (c *testClient) getPage(path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html")
	return c.do(req)
}

// screenState mirrors the JSON shape returned by /v1/screen.
type screenState struct {
	Rows []struct {
		ID         int    `json:"id"`
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		Email      string `json:"email"`
		Department string `json:"department"`
		Editing    bool   `json:"editing"`
	} `json:"rows"`
	Query     string `json:"query"`
	EditingID *int   `json:"editing_id"`
	Draft     struct {
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		Email      string `json:"email"`
		Department string `json:"department"`
	} `json:"draft"`
	Error string `json:"error"`
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) screenState {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var st screenState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	return st
}
