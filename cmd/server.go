package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mdobak/go-xerrors"
)

func (app *application) serve(handler http.Handler) error {
	server := &http.Server{
		Addr:         app.config.Server.Addr,
		Handler:      handler,
		ReadTimeout:  app.config.Server.ReadTimeoutDuration(),
		WriteTimeout: app.config.Server.WriteTimeoutDuration(),
		IdleTimeout:  app.config.Server.IdleTimeoutDuration(),
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	shutdownError := make(chan error, 1)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("Shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeoutDuration())
		defer cancel()

		shutdownError <- server.Shutdown(ctx)
	}()

	app.logger.Info("Starting server", "addr", server.Addr)

	err := server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return xerrors.New(err)
	}

	if err := <-shutdownError; err != nil {
		return xerrors.New(err)
	}

	app.logger.Info("Stopped server", "addr", server.Addr)
	return nil
}
