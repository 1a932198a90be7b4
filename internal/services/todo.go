package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/mdayat/todo-app/configs"
	"github.com/mdayat/todo-app/internal/dbutil"
	"github.com/mdayat/todo-app/internal/retryutil"
	"github.com/mdayat/todo-app/repository"
)

var (
	ErrEmptyTask    = errors.New("task cannot be empty")
	ErrTodoNotFound = errors.New("todo not found")
)

type TodoServicer interface {
	SelectTodos(ctx context.Context) ([]repository.Todo, error)
	InsertTodo(ctx context.Context, task string) (repository.Todo, error)
	ToggleTodo(ctx context.Context, todoId int64) (repository.Todo, error)
	DeleteTodo(ctx context.Context, todoId int64) error
}

type todo struct {
	configs configs.Configs
}

func NewTodoService(configs configs.Configs) TodoServicer {
	return &todo{
		configs: configs,
	}
}

func (t todo) SelectTodos(ctx context.Context) ([]repository.Todo, error) {
	return retryutil.RetryWithData(ctx, func() ([]repository.Todo, error) {
		return t.configs.Db.Queries.SelectTodos(ctx)
	})
}

func (t todo) InsertTodo(ctx context.Context, task string) (repository.Todo, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return repository.Todo{}, ErrEmptyTask
	}

	return retryutil.RetryUnsentWithData(ctx, func() (repository.Todo, error) {
		return t.configs.Db.Queries.InsertTodo(ctx, task)
	})
}

func (t todo) ToggleTodo(ctx context.Context, todoId int64) (repository.Todo, error) {
	retryableFunc := func(qtx *repository.Queries) (repository.Todo, error) {
		current, err := qtx.SelectTodoForUpdate(ctx, todoId)
		if err != nil {
			return repository.Todo{}, err
		}

		return qtx.UpdateTodoCompleted(ctx, repository.UpdateTodoCompletedParams{
			ID:        current.ID,
			Completed: !current.Completed,
		})
	}

	toggled, err := dbutil.RetryableTxWithData(ctx, t.configs.Db.Conn, t.configs.Db.Queries, retryableFunc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Todo{}, ErrTodoNotFound
		}
		return repository.Todo{}, fmt.Errorf("failed to toggle todo: %w", err)
	}

	return toggled, nil
}

func (t todo) DeleteTodo(ctx context.Context, todoId int64) error {
	deleted, err := retryutil.RetryUnsentWithData(ctx, func() (int64, error) {
		return t.configs.Db.Queries.DeleteTodo(ctx, todoId)
	})

	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if deleted == 0 {
		return ErrTodoNotFound
	}

	return nil
}
