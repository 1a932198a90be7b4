package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mdayat/todo-app/configs"
	"github.com/mdayat/todo-app/internal/dtos"
	"github.com/mdayat/todo-app/internal/httputil"
	"github.com/mdayat/todo-app/internal/services"
	"github.com/mdayat/todo-app/repository"
	"github.com/rs/zerolog/log"
)

type TodoHandler interface {
	GetTodos(res http.ResponseWriter, req *http.Request)
	CreateTodo(res http.ResponseWriter, req *http.Request)
	ToggleTodo(res http.ResponseWriter, req *http.Request)
	DeleteTodo(res http.ResponseWriter, req *http.Request)
}

type todo struct {
	configs configs.Configs
	service services.TodoServicer
}

func NewTodoHandler(configs configs.Configs, service services.TodoServicer) TodoHandler {
	return &todo{
		configs: configs,
		service: service,
	}
}

const (
	emptyTaskMessage    = "Task cannot be empty"
	todoNotFoundMessage = "Todo not found"
)

func (t todo) GetTodos(res http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := log.Ctx(ctx).With().Logger()

	todos, err := t.service.SelectTodos(ctx)
	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to select todos")
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resBody := make([]dtos.TodoResponse, 0, len(todos))
	for _, todo := range todos {
		resBody = append(resBody, newTodoResponse(todo))
	}

	params := httputil.SendSuccessResponseParams{
		StatusCode: http.StatusOK,
		ResBody:    resBody,
	}

	if err := httputil.SendSuccessResponse(res, params); err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to send success response")
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Info().Int("status_code", http.StatusOK).Int("count", len(resBody)).Msg("successfully got todos")
}

func (t todo) CreateTodo(res http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := log.Ctx(ctx).With().Logger()

	var reqBody dtos.CreateTodoRequest
	if err := httputil.DecodeAndValidate(req, t.configs.Validate, &reqBody); err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusBadRequest).Msg("invalid request body")
		t.sendError(res, req, http.StatusBadRequest, emptyTaskMessage)
		return
	}

	todo, err := t.service.InsertTodo(ctx, reqBody.Task)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTask) || isCheckViolation(err) {
			logger.Error().Err(err).Caller().Int("status_code", http.StatusBadRequest).Msg("empty task")
			t.sendError(res, req, http.StatusBadRequest, emptyTaskMessage)
		} else {
			logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to insert todo")
			http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	params := httputil.SendSuccessResponseParams{
		StatusCode: http.StatusCreated,
		ResBody:    newTodoResponse(todo),
	}

	res.Header().Set("Location", fmt.Sprintf("%s/api/todos/%d", t.configs.Env.OriginURL, todo.ID))
	if err := httputil.SendSuccessResponse(res, params); err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to send success response")
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Info().Int("status_code", http.StatusCreated).Int64("todo_id", todo.ID).Msg("successfully created todo")
}

func (t todo) ToggleTodo(res http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := log.Ctx(ctx).With().Logger()

	todoId, err := strconv.ParseInt(chi.URLParam(req, "todoId"), 10, 64)
	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("todo not found")
		t.sendError(res, req, http.StatusNotFound, todoNotFoundMessage)
		return
	}

	todo, err := t.service.ToggleTodo(ctx, todoId)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("todo not found")
			t.sendError(res, req, http.StatusNotFound, todoNotFoundMessage)
		} else {
			logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to toggle todo")
			http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	params := httputil.SendSuccessResponseParams{
		StatusCode: http.StatusOK,
		ResBody: dtos.ToggleTodoResponse{
			Id:        todo.ID,
			Completed: todo.Completed,
		},
	}

	if err := httputil.SendSuccessResponse(res, params); err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to send success response")
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Info().Int("status_code", http.StatusOK).Int64("todo_id", todo.ID).Msg("successfully toggled todo")
}

func (t todo) DeleteTodo(res http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := log.Ctx(ctx).With().Logger()

	todoId, err := strconv.ParseInt(chi.URLParam(req, "todoId"), 10, 64)
	if err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("todo not found")
		t.sendError(res, req, http.StatusNotFound, todoNotFoundMessage)
		return
	}

	if err := t.service.DeleteTodo(ctx, todoId); err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			logger.Error().Err(err).Caller().Int("status_code", http.StatusNotFound).Msg("todo not found")
			t.sendError(res, req, http.StatusNotFound, todoNotFoundMessage)
		} else {
			logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to delete todo")
			http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	params := httputil.SendSuccessResponseParams{
		StatusCode: http.StatusOK,
		ResBody:    dtos.MessageResponse{Message: "Todo deleted"},
	}

	if err := httputil.SendSuccessResponse(res, params); err != nil {
		logger.Error().Err(err).Caller().Int("status_code", http.StatusInternalServerError).Msg("failed to send success response")
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Info().Int("status_code", http.StatusOK).Int64("todo_id", todoId).Msg("successfully deleted todo")
}

func (t todo) sendError(res http.ResponseWriter, req *http.Request, statusCode int, message string) {
	if err := httputil.SendErrorResponse(res, statusCode, message); err != nil {
		log.Ctx(req.Context()).Error().Err(err).Caller().Msg("failed to send error response")
	}
}

func newTodoResponse(todo repository.Todo) dtos.TodoResponse {
	return dtos.TodoResponse{
		Id:        todo.ID,
		Task:      todo.Task,
		Completed: todo.Completed,
	}
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation
}
