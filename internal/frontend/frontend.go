// Package frontend serves the browser user interface. Pages are rendered on
// the server from the TodoClient's view model; user actions arrive as form
// posts and are answered with a redirect back to the list.
package frontend

import (
	"bytes"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/mdayat/todo-app/internal/middlewares"
	"github.com/mdayat/todo-app/internal/render"
	"github.com/mdayat/todo-app/internal/todoclient"
	"github.com/rs/zerolog/log"
)

type Handler interface {
	Index(res http.ResponseWriter, req *http.Request)
	CreateTodo(res http.ResponseWriter, req *http.Request)
	ToggleTodo(res http.ResponseWriter, req *http.Request)
	ConfirmDelete(res http.ResponseWriter, req *http.Request)
	DeleteTodo(res http.ResponseWriter, req *http.Request)
}

type frontend struct {
	sessions *sessions
	renderer *render.Renderer
}

func NewHandler(newClient ClientFactory, renderer *render.Renderer) Handler {
	return &frontend{
		sessions: newSessions(newClient),
		renderer: renderer,
	}
}

func NewRouter(newClient ClientFactory, renderer *render.Renderer) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.CleanPath)
	router.Use(chiMiddleware.RealIP)
	router.Use(middlewares.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(httprate.LimitByIP(300, 1*time.Minute))
	router.Use(chiMiddleware.Heartbeat("/ping"))

	handler := NewHandler(newClient, renderer)
	router.Get("/", handler.Index)
	router.Post("/todos", handler.CreateTodo)
	router.Post("/todos/{todoId}/toggle", handler.ToggleTodo)
	router.Get("/todos/{todoId}/delete", handler.ConfirmDelete)
	router.Post("/todos/{todoId}/delete", handler.DeleteTodo)
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS()))))

	return router
}

// Index shows the session's list. The store is only read when the current
// items were already shown, so the reload done by a mutation is the one the
// following page displays.
func (f frontend) Index(res http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := log.Ctx(ctx).With().Logger()

	sess := f.sessions.acquire(res, req)
	defer sess.mu.Unlock()

	view := sess.client.View()
	if view.Stale() {
		sess.client.Load(ctx)
	}

	var buf bytes.Buffer
	if err := f.renderer.Page(&buf, view.Take()); err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to render page")
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeHTML(res, buf.Bytes())
	logger.Info().Int("status_code", http.StatusOK).Msg("successfully rendered todos")
}

func (f frontend) CreateTodo(res http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	sess := f.sessions.acquire(res, req)
	defer sess.mu.Unlock()

	text := req.PostFormValue("task")
	sess.client.View().SetInput(text)
	sess.client.Create(ctx, text)

	redirectHome(res, req)
}

func (f frontend) ToggleTodo(res http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := log.Ctx(ctx).With().Logger()

	todoId, err := todoIdParam(req)
	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("invalid todo id")
		http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	sess := f.sessions.acquire(res, req)
	defer sess.mu.Unlock()

	sess.client.Toggle(ctx, todoId)
	redirectHome(res, req)
}

// ConfirmDelete is the confirmation step for browsers without scripts.
func (f frontend) ConfirmDelete(res http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := log.Ctx(ctx).With().Logger()

	todoId, err := todoIdParam(req)
	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("invalid todo id")
		http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	sess := f.sessions.acquire(res, req)
	defer sess.mu.Unlock()

	todo := todoclient.Todo{ID: todoId}
	for _, item := range sess.client.View().Items() {
		if item.ID == todoId {
			todo = item
			break
		}
	}

	var buf bytes.Buffer
	if err := f.renderer.Confirm(&buf, todo); err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to render confirmation")
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeHTML(res, buf.Bytes())
}

func (f frontend) DeleteTodo(res http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := log.Ctx(ctx).With().Logger()

	todoId, err := todoIdParam(req)
	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("invalid todo id")
		http.Error(res, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	sess := f.sessions.acquire(res, req)
	defer sess.mu.Unlock()

	accepted := req.PostFormValue("confirm") == "yes"
	sess.client.Delete(todoclient.WithConfirmation(ctx, accepted), todoId)

	redirectHome(res, req)
}

func todoIdParam(req *http.Request) (todoclient.ID, error) {
	todoId, err := url.PathUnescape(chi.URLParam(req, "todoId"))
	if err != nil {
		return "", err
	}
	return todoclient.ID(todoId), nil
}

func redirectHome(res http.ResponseWriter, req *http.Request) {
	http.Redirect(res, req, "/", http.StatusSeeOther)
}

func writeHTML(res http.ResponseWriter, body []byte) {
	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	res.Header().Set("Cache-Control", "no-store")
	res.WriteHeader(http.StatusOK)
	res.Write(body)
}
