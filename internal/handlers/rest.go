package handlers

import (
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/mdayat/todo-app/configs"
	"github.com/mdayat/todo-app/internal/middlewares"
	"github.com/mdayat/todo-app/internal/services"
)

func NewRestHandler(configs configs.Configs, todoService services.TodoServicer) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.CleanPath)
	router.Use(chiMiddleware.RealIP)
	router.Use(middlewares.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(httprate.LimitByIP(100, 1*time.Minute))

	options := cors.Options{
		AllowedOrigins: strings.Split(configs.Env.AllowedOrigins, ","),
		AllowedMethods: []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"User-Agent", "Content-Type", "Accept", "Accept-Encoding", "Accept-Language", "Cache-Control", "Connection", "Host", "Origin", "Referer"},
		ExposedHeaders: []string{"Content-Length", "Location"},
		MaxAge:         300,
	}
	router.Use(cors.Handler(options))
	router.Use(chiMiddleware.Heartbeat("/ping"))

	todoHandler := NewTodoHandler(configs, todoService)
	router.Route("/api/todos", func(r chi.Router) {
		r.Get("/", todoHandler.GetTodos)
		r.Post("/", todoHandler.CreateTodo)
		r.Put("/{todoId}", todoHandler.ToggleTodo)
		r.Delete("/{todoId}", todoHandler.DeleteTodo)
	})

	return router
}
