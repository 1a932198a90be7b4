package frontend

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/mdayat/todo-app/configs"
	"github.com/mdayat/todo-app/internal/render"
	"github.com/mdayat/todo-app/internal/todoclient"
	"github.com/rs/zerolog"
)

type storedTodo struct {
	Id        int64  `json:"id"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// memoryStore is a minimal todo API that records the requests it serves.
type memoryStore struct {
	mu       sync.Mutex
	nextId   int64
	todos    []storedTodo
	requests []string
}

func (m *memoryStore) router() http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			m.mu.Lock()
			m.requests = append(m.requests, req.Method+" "+req.URL.Path)
			m.mu.Unlock()
			next.ServeHTTP(res, req)
		})
	})

	router.Get("/api/todos", func(res http.ResponseWriter, req *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()

		todos := make([]storedTodo, 0, len(m.todos))
		for i := len(m.todos) - 1; i >= 0; i-- {
			todos = append(todos, m.todos[i])
		}
		json.NewEncoder(res).Encode(todos)
	})

	router.Post("/api/todos", func(res http.ResponseWriter, req *http.Request) {
		var body struct {
			Task string `json:"task"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Task == "" {
			http.Error(res, "bad request", http.StatusBadRequest)
			return
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		m.nextId++
		m.todos = append(m.todos, storedTodo{Id: m.nextId, Task: body.Task})
		res.WriteHeader(http.StatusCreated)
	})

	router.Put("/api/todos/{todoId}", func(res http.ResponseWriter, req *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if i := m.index(chi.URLParam(req, "todoId")); i >= 0 {
			m.todos[i].Completed = !m.todos[i].Completed
			return
		}
		http.Error(res, "not found", http.StatusNotFound)
	})

	router.Delete("/api/todos/{todoId}", func(res http.ResponseWriter, req *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if i := m.index(chi.URLParam(req, "todoId")); i >= 0 {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			return
		}
		http.Error(res, "not found", http.StatusNotFound)
	})

	return router
}

func (m *memoryStore) index(todoId string) int {
	id, err := strconv.ParseInt(todoId, 10, 64)
	if err != nil {
		return -1
	}
	for i, todo := range m.todos {
		if todo.Id == id {
			return i
		}
	}
	return -1
}

func (m *memoryStore) takeRequests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	requests := m.requests
	m.requests = nil
	return requests
}

type testEnv struct {
	store  *memoryStore
	server *httptest.Server
	client *http.Client
}

// newBrowser returns a client with its own cookie jar that does not follow
// redirects.
func newBrowser(t *testing.T, server *httptest.Server) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}

	return &http.Client{
		Transport: server.Client().Transport,
		Jar:       jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) as(client *http.Client) *testEnv {
	return &testEnv{store: e.store, server: e.server, client: client}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	zerolog.SetGlobalLevel(zerolog.Disabled)

	store := &memoryStore{}
	storeServer := httptest.NewServer(store.router())
	t.Cleanup(storeServer.Close)

	renderer, err := render.New(configs.DefaultUI())
	if err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}

	todoStore := todoclient.NewHTTPStore(storeServer.URL)
	newClient := func() *todoclient.TodoClient {
		return todoclient.New(todoStore, todoclient.NewViewModel())
	}

	server := httptest.NewServer(NewRouter(newClient, renderer))
	t.Cleanup(server.Close)

	return &testEnv{store: store, server: server, client: newBrowser(t, server)}
}

func (e *testEnv) get(t *testing.T, path string) (int, string) {
	t.Helper()

	res, err := e.client.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}
	return res.StatusCode, string(body)
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()

	res, err := e.client.PostForm(e.server.URL+path, form)
	if err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, res.StatusCode)
	}
	if location := res.Header.Get("Location"); location != "/" {
		t.Fatalf("expected redirect to /, got %q", location)
	}
	return res
}

func TestIndex(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.get(t, "/")
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}

	if !strings.Contains(body, "No tasks yet. Add one above!") {
		t.Errorf("expected empty placeholder in page")
	}

	if diff := cmp.Diff([]string{"GET /api/todos"}, env.store.takeRequests()); diff != "" {
		t.Error(diff)
	}

	env.get(t, "/")
	if diff := cmp.Diff([]string{"GET /api/todos"}, env.store.takeRequests()); diff != "" {
		t.Errorf("a page view after a shown reload should load again: %s", diff)
	}
}

func TestCreateTodo(t *testing.T) {
	env := newTestEnv(t)

	env.post(t, "/todos", url.Values{"task": {"  buy <milk>  "}})
	if diff := cmp.Diff([]string{"POST /api/todos", "GET /api/todos"}, env.store.takeRequests()); diff != "" {
		t.Error(diff)
	}

	_, body := env.get(t, "/")
	if requests := env.store.takeRequests(); len(requests) != 0 {
		t.Errorf("expected the mutation's reload to be displayed, got extra requests %v", requests)
	}

	if !strings.Contains(body, "buy &lt;milk&gt;") {
		t.Errorf("expected escaped task in page")
	}

	if !strings.Contains(body, `name="task" value=""`) {
		t.Errorf("expected input field to be cleared")
	}
}

func TestCreateTodoRejectsBlank(t *testing.T) {
	env := newTestEnv(t)

	env.post(t, "/todos", url.Values{"task": {"   "}})
	if requests := env.store.takeRequests(); len(requests) != 0 {
		t.Errorf("expected no store requests, got %v", requests)
	}

	_, body := env.get(t, "/")
	if !strings.Contains(body, `role="alert">Please enter a task<`) {
		t.Errorf("expected input rejection alert")
	}

	_, body = env.get(t, "/")
	if strings.Contains(body, "Please enter a task") {
		t.Errorf("alert should only be shown once")
	}
}

func TestToggleTodo(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/todos", url.Values{"task": {"a"}})
	env.store.takeRequests()

	env.post(t, "/todos/1/toggle", nil)
	if diff := cmp.Diff([]string{"PUT /api/todos/1", "GET /api/todos"}, env.store.takeRequests()); diff != "" {
		t.Error(diff)
	}

	_, body := env.get(t, "/")
	if !strings.Contains(body, `class="todo-item completed"`) {
		t.Errorf("expected completed row")
	}

	env.post(t, "/todos/99/toggle", nil)
	if diff := cmp.Diff([]string{"PUT /api/todos/99"}, env.store.takeRequests()); diff != "" {
		t.Error(diff)
	}

	_, body = env.get(t, "/")
	if strings.Contains(body, `role="alert"`) {
		t.Errorf("failed toggle should not alert")
	}
}

func TestDeleteTodo(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/todos", url.Values{"task": {"a"}})
	env.store.takeRequests()

	status, body := env.get(t, "/todos/1/delete")
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if !strings.Contains(body, "Are you sure you want to delete this task?") {
		t.Errorf("expected confirmation prompt")
	}
	if requests := env.store.takeRequests(); len(requests) != 0 {
		t.Errorf("confirmation page should not touch the store, got %v", requests)
	}

	env.post(t, "/todos/1/delete", url.Values{"confirm": {"no"}})
	if requests := env.store.takeRequests(); len(requests) != 0 {
		t.Errorf("declined delete should send nothing, got %v", requests)
	}

	env.post(t, "/todos/1/delete", nil)
	if requests := env.store.takeRequests(); len(requests) != 0 {
		t.Errorf("unanswered delete should send nothing, got %v", requests)
	}

	env.post(t, "/todos/1/delete", url.Values{"confirm": {"yes"}})
	if diff := cmp.Diff([]string{"DELETE /api/todos/1", "GET /api/todos"}, env.store.takeRequests()); diff != "" {
		t.Error(diff)
	}

	_, body = env.get(t, "/")
	if !strings.Contains(body, "No tasks yet. Add one above!") {
		t.Errorf("expected empty list after delete")
	}
}

func TestLoadFailureKeepsPreviousList(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.Disabled)

	unreachable := httptest.NewServer(http.NotFoundHandler())
	unreachable.Close()

	renderer, err := render.New(configs.DefaultUI())
	if err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}

	newClient := func() *todoclient.TodoClient {
		view := todoclient.NewViewModel()
		view.Replace([]todoclient.Todo{{ID: "1", Task: "kept"}})
		view.Take()
		return todoclient.New(todoclient.NewHTTPStore(unreachable.URL), view)
	}

	server := httptest.NewServer(NewRouter(newClient, renderer))
	defer server.Close()

	res, err := newBrowser(t, server).Get(server.URL + "/")
	if err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}
	defer res.Body.Close()

	page, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("wasn't expecting error, got: %v", err)
	}

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, res.StatusCode)
	}
	if !strings.Contains(string(page), ">kept<") {
		t.Errorf("expected previous list to stay after failed load")
	}
	if strings.Contains(string(page), `role="alert"`) {
		t.Errorf("failed load should not alert")
	}
}

func TestStaticAssets(t *testing.T) {
	env := newTestEnv(t)

	for _, asset := range []string{"/static/app.js", "/static/app.css"} {
		status, body := env.get(t, asset)
		if status != http.StatusOK {
			t.Errorf("%s: expected status %d, got %d", asset, http.StatusOK, status)
		}
		if body == "" {
			t.Errorf("%s: empty body", asset)
		}
	}

	status, _ := env.get(t, "/static/missing.js")
	if status != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, status)
	}
}

func TestSessionsAreSeparate(t *testing.T) {
	env := newTestEnv(t)
	alice := env
	bob := env.as(newBrowser(t, env.server))

	alice.post(t, "/todos", url.Values{"task": {"   "}})

	_, body := bob.get(t, "/")
	if strings.Contains(body, "Please enter a task") {
		t.Errorf("another visitor's alert leaked into this page")
	}

	_, body = alice.get(t, "/")
	if !strings.Contains(body, `role="alert">Please enter a task<`) {
		t.Errorf("expected the rejection alert for the visitor who submitted")
	}

	alice.post(t, "/todos", url.Values{"task": {"shared"}})
	env.store.takeRequests()

	_, body = bob.get(t, "/")
	if !strings.Contains(body, ">shared<") {
		t.Errorf("expected the stored todo on every visitor's page")
	}
	if diff := cmp.Diff([]string{"GET /api/todos"}, env.store.takeRequests()); diff != "" {
		t.Errorf("another visitor's reload should not count as shown here: %s", diff)
	}

	_, body = alice.get(t, "/")
	if !strings.Contains(body, ">shared<") {
		t.Errorf("expected the created todo after the redirect")
	}
	if requests := env.store.takeRequests(); len(requests) != 0 {
		t.Errorf("expected the mutation's reload to be displayed, got extra requests %v", requests)
	}
}

func TestSessionsExpire(t *testing.T) {
	created := 0
	sessions := newSessions(func() *todoclient.TodoClient {
		created++
		return todoclient.New(todoclient.NewHTTPStore("http://127.0.0.1:0"), todoclient.NewViewModel())
	})

	now := time.Unix(0, 0)
	sessions.now = func() time.Time { return now }

	res := httptest.NewRecorder()
	sessions.acquire(res, httptest.NewRequest(http.MethodGet, "/", nil)).mu.Unlock()

	cookies := res.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookie {
		t.Fatalf("expected a %s cookie, got %v", sessionCookie, cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	sessions.acquire(httptest.NewRecorder(), req).mu.Unlock()
	if created != 1 {
		t.Errorf("expected the session to be reused, got %d clients", created)
	}

	now = now.Add(sessionIdleTimeout + time.Second)
	sessions.acquire(httptest.NewRecorder(), req).mu.Unlock()
	if created != 2 {
		t.Errorf("expected an idle session to be replaced, got %d clients", created)
	}
	if n := sessions.len(); n != 1 {
		t.Errorf("expected 1 live session, got %d", n)
	}
}
