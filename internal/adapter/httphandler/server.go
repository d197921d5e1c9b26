package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const handlerTimeoutMargin = 5 * time.Second

// handlerTimeout outlasts one store request, so a slow backend is reported
// as an unknown outcome rather than a bare 503.
func handlerTimeout(storeTimeout time.Duration) time.Duration {
	return max(storeTimeout, 0) + handlerTimeoutMargin
}

type HTTPServer struct {
	httpServer *http.Server
}

// NewHTTPServer serves handler on addr. storeTimeout is the longest a
// single store request may take.
func NewHTTPServer(
	addr string, handler http.Handler, storeTimeout time.Duration,
) HTTPServer {
	handler = http.TimeoutHandler(
		handler, handlerTimeout(storeTimeout), "unavailable",
	)
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
	return HTTPServer{s}
}

func (s HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	log := slog.With("op", op)

	defer stopFn()
	log.Info("listening", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		log.Error("unexpected servers shutdown", "err", err)
	}
}

func (s HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	log.Info("closing http server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Error("failed to shutdown gracefully", "err", err)
	}
	log.Info("http server is closed")
}
