package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/mdayat/todo-app/configs"
	"github.com/mdayat/todo-app/internal/todoclient"
	"github.com/mdayat/todo-app/internal/tui"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	env, err := configs.LoadEnv()
	if err != nil {
		return err
	}

	if err := env.Check(configs.NewValidate(), configs.ClientFields...); err != nil {
		return err
	}

	ui, err := configs.LoadUI(env.UIConfig)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs only go to a file when asked.
	var out io.Writer = io.Discard
	if env.LogFile != "" {
		f, err := os.OpenFile(env.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		out = f
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}
	logger := zerolog.New(out).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	store := todoclient.NewHTTPStore(env.StoreURL)
	messages := todoclient.Messages{
		EmptyTask:     ui.EmptyTask,
		CreateFailed:  ui.CreateFailed,
		ConfirmDelete: ui.ConfirmDelete,
	}
	client := todoclient.New(store, todoclient.NewViewModel(), todoclient.WithMessages(messages))

	return tui.Run(ctx, client, ui)
}
