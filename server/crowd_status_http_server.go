package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type CrowdStatusHttpServer struct {
	router         *Router
	muxRouter      *mux.Router
	port           string
	allowedOrigins []string

	ready chan struct{}
	addr  string
}

func NewCrowdStatusHttpServer(router *Router, muxRouter *mux.Router, port string, allowedOrigins []string) *CrowdStatusHttpServer {
	return &CrowdStatusHttpServer{
		router:         router,
		muxRouter:      muxRouter,
		port:           port,
		allowedOrigins: allowedOrigins,
		ready:          make(chan struct{}),
	}
}

// Ready is closed once Start has bound its listener.
func (s *CrowdStatusHttpServer) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the bound address. It is empty before Ready is closed.
func (s *CrowdStatusHttpServer) Addr() string {
	select {
	case <-s.ready:
		return s.addr
	default:
		return ""
	}
}

// Handler returns the routed handler wrapped in CORS.
func (s *CrowdStatusHttpServer) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.muxRouter)
}

// Start serves until SIGINT/SIGTERM or ctx is done, then shuts down gracefully.
func (s *CrowdStatusHttpServer) Start(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	s.addr = ln.Addr().String()
	close(s.ready)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", slog.String("addr", s.addr))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	case <-ctx.Done():
	}
	slog.Info("shutting down the server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("server exiting")
	return nil
}
