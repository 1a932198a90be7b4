package internal

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type RestServicer interface {
	Start(ctx context.Context) error
}

type rest struct {
	addr    string
	handler http.Handler
}

func NewRestService(addr string, handler http.Handler) RestServicer {
	return &rest{
		addr:    addr,
		handler: handler,
	}
}

// Start serves until ctx is done, then drains in-flight requests for up to
// ten seconds.
func (r rest) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              r.addr,
		Handler:           r.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", r.addr).Msg("listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
