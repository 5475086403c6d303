package report

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves a rendered report directory over HTTP, logging each
// request through log.
func Handler(log *zap.Logger, dir string) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(requestLogger(log))
	r.Handle("/*", http.FileServer(http.Dir(dir)))
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			log.Info("request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Duration("took", time.Since(start)))
		})
	}
}

// Serve blocks serving dir on addr until ctx is canceled, then shuts
// the server down gracefully.
func Serve(ctx context.Context, log *zap.Logger, dir, addr string) error {
	if log == nil {
		log = zap.NewNop()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(log, dir),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("serving report", zap.String("addr", addr), zap.String("dir", dir))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
