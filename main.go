package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/mdayat/todo-app/configs"
	"github.com/mdayat/todo-app/internal"
	"github.com/mdayat/todo-app/internal/handlers"
	"github.com/mdayat/todo-app/internal/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

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

	validate := configs.NewValidate()
	if err := env.Check(validate, configs.StoreFields...); err != nil {
		logger.Fatal().Err(err).Send()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := configs.NewDb(ctx, env.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}
	defer db.Close()

	configs := configs.Configs{
		Env:      env,
		Db:       db,
		Validate: validate,
	}

	todoService := services.NewTodoService(configs)
	router := handlers.NewRestHandler(configs, todoService)

	rest := internal.NewRestService(net.JoinHostPort("", env.Port), router)
	if err := rest.Start(ctx); err != nil {
		logger.Fatal().Err(err).Send()
	}
}
