package web_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stickyboard/internal/platform"
	"github.com/aretw0/stickyboard/internal/web"
	"github.com/aretw0/stickyboard/pkg/core"
	"github.com/aretw0/stickyboard/pkg/remote"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	users := []remote.User{{ID: 1, Username: "Bret"}, {ID: 2, Username: "Antonette"}}
	posts := []remote.Post{{ID: 1, UserID: 1}, {ID: 2, UserID: 2}}
	todos := []remote.Todo{
		{ID: 5, UserID: 1, Title: "a", Completed: true},
		{ID: 7, UserID: 2, Title: "b", Completed: false},
	}
	write := func(w http.ResponseWriter, v any) { _ = json.NewEncoder(w).Encode(v) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) { write(w, users) })
	mux.HandleFunc("GET /posts", func(w http.ResponseWriter, r *http.Request) { write(w, posts) })
	mux.HandleFunc("GET /todos", func(w http.ResponseWriter, r *http.Request) { write(w, todos) })
	mux.HandleFunc("GET /users/2", func(w http.ResponseWriter, r *http.Request) { write(w, users[1]) })
	mux.HandleFunc("GET /users/2/posts", func(w http.ResponseWriter, r *http.Request) { write(w, posts[1:]) })
	mux.HandleFunc("GET /users/2/todos", func(w http.ResponseWriter, r *http.Request) { write(w, todos[1:]) })
	mux.HandleFunc("GET /weather", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "Cairo" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"city not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"name":"Cairo","main":{"temp":30,"humidity":10},"weather":[{"description":"sunny","icon":"01d"}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type env struct {
	srv    *httptest.Server
	app    *platform.App
	client *http.Client
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := fakeAPI(t)
	app, err := platform.New("",
		platform.WithAdapter("memory"),
		platform.WithRemote(api.URL, 0),
		platform.WithWeather(api.URL, "key", ""),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	srv := httptest.NewServer(web.NewRouter(app, ""))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &env{srv: srv, app: app, client: client}
}

func (e *env) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (e *env) login(t *testing.T, username, password string) *http.Response {
	t.Helper()
	resp, err := e.client.PostForm(e.srv.URL+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestRouting(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = e.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = e.do(t, http.MethodGet, "/dashboard/users/2", nil)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, body := e.do(t, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"404 - Not found"}`, string(body))
}

func TestLoginGate(t *testing.T) {
	e := newEnv(t)

	resp := e.login(t, "youssef", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = e.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode, "access remains denied")

	resp = e.login(t, " youssef ", "marzouk2024")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	resp, body := e.do(t, http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"authenticated":true}`, string(body))

	resp, body = e.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash struct {
		Users struct {
			Data []remote.User `json:"data"`
		} `json:"users"`
		Weather struct {
			Data remote.Report `json:"data"`
		} `json:"weather"`
	}
	require.NoError(t, json.Unmarshal(body, &dash))
	assert.Len(t, dash.Users.Data, 2)
	assert.Equal(t, "Cairo", dash.Weather.Data.City)

	resp, _ = e.do(t, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp, _ = e.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestSessionsOnlyTrackLogins(t *testing.T) {
	e := newEnv(t)
	anon := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	for _, path := range []string{"/nope", "/", "/login", "/dashboard"} {
		for i := 0; i < 50; i++ {
			resp, err := anon.Get(e.srv.URL + path)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Empty(t, resp.Cookies())
		}
	}
	assert.Zero(t, e.app.Sessions.Len())

	e.login(t, "youssef", "wrong")
	assert.Zero(t, e.app.Sessions.Len())

	e.login(t, "youssef", "marzouk2024")
	assert.Equal(t, 1, e.app.Sessions.Len())
	e.login(t, "youssef", "marzouk2024")
	assert.Equal(t, 1, e.app.Sessions.Len(), "a second login replaces the first session")

	resp, _ := e.do(t, http.MethodGet, "/dashboard/notes", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	e.do(t, http.MethodPost, "/logout", nil)
	assert.Zero(t, e.app.Sessions.Len())
}

func TestNotes(t *testing.T) {
	e := newEnv(t)
	e.login(t, "youssef", "marzouk2024")

	resp, body := e.do(t, http.MethodPost, "/dashboard/notes", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Note cannot be empty"}`, string(body))
	assert.Equal(t, 0, e.app.Board.Len())

	resp, _ = e.do(t, http.MethodPost, "/dashboard/notes", map[string]string{"text": "call mom", "priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = e.do(t, http.MethodPost, "/dashboard/notes", map[string]string{"text": " call mom ", "priority": "important"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var note core.Note
	require.NoError(t, json.Unmarshal(body, &note))
	assert.Equal(t, "call mom", note.Text)
	assert.Equal(t, core.PriorityImportant, note.Priority)

	resp, _ = e.do(t, http.MethodPut, "/dashboard/notes/"+note.ID+"/priority", map[string]string{"priority": "delayed"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = e.do(t, http.MethodGet, "/dashboard/notes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Notes  []core.Note                   `json:"notes"`
		Groups map[core.Priority][]core.Note `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Notes, 1)
	assert.Len(t, list.Groups[core.PriorityDelayed], 1)
	assert.Empty(t, list.Groups[core.PriorityImportant])

	resp, _ = e.do(t, http.MethodDelete, "/dashboard/notes/"+note.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = e.do(t, http.MethodDelete, "/dashboard/notes/"+note.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "removing an absent note is a no-op")
	assert.Equal(t, 0, e.app.Board.Len())
}

func TestUserDetailAndToggle(t *testing.T) {
	e := newEnv(t)
	e.login(t, "youssef", "marzouk2024")

	resp, body := e.do(t, http.MethodGet, "/dashboard/users/2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"username":"Antonette"`)
	assert.Contains(t, string(body), `"completed":false`)

	resp, _ = e.do(t, http.MethodGet, "/dashboard/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = e.do(t, http.MethodPost, "/dashboard/users/2/todos/7/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"completed":true`)
	assert.Equal(t, core.Overrides{7: true}, e.app.Todos.Load(context.Background()))

	resp, _ = e.do(t, http.MethodPost, "/dashboard/users/2/todos/99/toggle", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = e.do(t, http.MethodGet, "/dashboard/analytics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Stats struct {
			MostCompletedTodos struct {
				User  remote.User `json:"user"`
				Count int         `json:"count"`
			} `json:"mostCompletedTodos"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	// Both users now have one completed todo; user 1 was counted first.
	assert.Equal(t, 1, got.Stats.MostCompletedTodos.Count)
	assert.Equal(t, 1, got.Stats.MostCompletedTodos.User.ID)
}

func TestWeather(t *testing.T) {
	e := newEnv(t)
	e.login(t, "youssef", "marzouk2024")

	resp, body := e.do(t, http.MethodGet, "/dashboard/weather", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"city":"Cairo"`)

	resp, body = e.do(t, http.MethodGet, "/dashboard/weather?city=Atlantis", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"City not found"}`, string(body))
}

func TestAnalyticsStream(t *testing.T) {
	e := newEnv(t)
	e.login(t, "youssef", "marzouk2024")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.srv.URL+"/dashboard/analytics/stream", nil)
	require.NoError(t, err)
	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	next := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if data, ok := strings.CutPrefix(line, "data:"); ok {
				return data
			}
		}
	}

	first := next()
	assert.Contains(t, first, `"count":1`)
	require.Eventually(t, func() bool {
		return e.app.Hub.Subscribers(core.TopicTodosUpdated) == 1
	}, time.Second, 10*time.Millisecond)

	_, err = e.app.Todos.Set(ctx, 5, false)
	require.NoError(t, err)

	var second struct {
		Stats struct {
			MostCompletedTodos struct {
				Count int `json:"count"`
			} `json:"mostCompletedTodos"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(next()), &second))
	assert.Equal(t, 0, second.Stats.MostCompletedTodos.Count, "the only completed todo was overridden")
	cancel()
}

func TestServer_ShutdownEndsStreams(t *testing.T) {
	e := newEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	server := web.NewServer(ctx, ln.Addr().String(), e.app, "")
	served := make(chan error, 1)
	go func() { served <- server.Serve(ln) }()

	base := "http://" + ln.Addr().String()
	resp, err := e.client.PostForm(base+"/login", url.Values{
		"username": {"youssef"},
		"password": {"marzouk2024"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err = e.client.Get(base + "/dashboard/analytics/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, "stats")

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 3*time.Second)
	defer stop()
	require.NoError(t, server.Shutdown(shutdownCtx), "open stream must not hold shutdown")
	assert.ErrorIs(t, <-served, http.ErrServerClosed)
}
