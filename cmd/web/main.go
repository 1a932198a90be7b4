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
	"github.com/mdayat/todo-app/internal/frontend"
	"github.com/mdayat/todo-app/internal/render"
	"github.com/mdayat/todo-app/internal/todoclient"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}
	logger := log.With().Caller().Logger()
	zerolog.DefaultContextLogger = &logger

	env, err := configs.LoadEnv()
	if err != nil {
		logger.Fatal().Err(err).Send()
	}

	if err := env.Check(configs.NewValidate(), configs.ClientFields...); err != nil {
		logger.Fatal().Err(err).Send()
	}

	ui, err := configs.LoadUI(env.UIConfig)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}

	renderer, err := render.New(ui)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}

	messages := todoclient.Messages{
		EmptyTask:     ui.EmptyTask,
		CreateFailed:  ui.CreateFailed,
		ConfirmDelete: ui.ConfirmDelete,
	}

	store := todoclient.NewHTTPStore(env.StoreURL)
	newClient := func() *todoclient.TodoClient {
		return todoclient.New(store, todoclient.NewViewModel(), todoclient.WithMessages(messages))
	}
	router := frontend.NewRouter(newClient, renderer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rest := internal.NewRestService(net.JoinHostPort("", env.WebPort), router)
	if err := rest.Start(ctx); err != nil {
		logger.Fatal().Err(err).Send()
	}
}
