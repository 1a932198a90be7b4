package main

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mdayat/todo-app/configs"
	"github.com/mdayat/todo-app/internal/retryutil"
	"github.com/mdayat/todo-app/repository"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var sampleTasks = []string{
	"Read the onboarding notes",
	"Buy milk",
	"Water the plants",
	"Book dentist appointment",
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}
	logger := log.With().Caller().Logger()

	env, err := configs.LoadEnv()
	if err != nil {
		logger.Fatal().Err(err).Send()
	}

	if err := env.Check(configs.NewValidate(), "DatabaseURL"); err != nil {
		logger.Fatal().Err(err).Send()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	db, err := configs.NewDb(ctx, env.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}
	defer db.Close()

	// Seed "todos" table
	for _, task := range sampleTasks {
		todo, err := retryutil.RetryUnsentWithData(ctx, func() (repository.Todo, error) {
			return db.Queries.InsertTodo(ctx, task)
		})

		if err != nil {
			logger.Fatal().Err(err).Str("task", task).Msg("failed to seed todos table")
		}

		logger.Info().Int64("todo_id", todo.ID).Str("task", todo.Task).Msg("seeded todo")
	}
}
