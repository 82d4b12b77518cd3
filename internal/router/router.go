package router

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mock-metrics/internal/config"
	"mock-metrics/internal/domain"
	"mock-metrics/internal/endpoints"
	"mock-metrics/internal/util"
)

const (
	RequestIDHeader = "X-Request-ID"
	PrometheusPath  = "/internal/prometheus"

	maxRequestIDLen = 128
)

func NewRouter(svc *Service) *mux.Router {
	r := mux.NewRouter()

	addRoutes(r, svc)

	r.MethodNotAllowedHandler = http.HandlerFunc(endpoints.MethodNotAllowed)
	r.Use(requestIDMiddleware, accessLogMiddleware(svc), recoveryMiddleware(svc.Logger))

	return r
}

// NewHandler is the router wrapped in CORS handling. Preflight requests
// never reach the router.
func NewHandler(svc *Service) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(svc.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet}),
		handlers.AllowedHeaders(append([]string{RequestIDHeader}, svc.AllowedHeaders...)),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
	return cors(NewRouter(svc))
}

func addRoutes(r *mux.Router, svc *Service) {
	metricsHandler := &endpoints.Metrics{}
	metricsHandler.Init(svc.Source, svc.Logger)

	r.HandleFunc("/metrics", metricsHandler.GetMetricsHandler).Methods(http.MethodGet)
	r.HandleFunc("/healthz", endpoints.Healthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", endpoints.Readyz).Methods(http.MethodGet)
	r.Handle(PrometheusPath, svc.Metrics.Handler()).Methods(http.MethodGet)

	if svc.Variant == domain.VariantPerRequest {
		r.HandleFunc("/", endpoints.Root).Methods(http.MethodGet)
	}
}

func NewServer(handler http.Handler, cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Run listens on cfg.Addr and serves until ctx is cancelled.
func Run(ctx context.Context, cfg config.ServerConfig, svc *Service) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", cfg.Addr, err)
	}
	return Serve(ctx, ln, cfg, svc)
}

// Serve runs the HTTP server and, for the ticker variant, the counter
// ticker. Cancelling ctx stops the ticker and shuts the server down
// within cfg.ShutdownTimeout.
func Serve(ctx context.Context, ln net.Listener, cfg config.ServerConfig, svc *Service) error {
	server := NewServer(NewHandler(svc), cfg)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		svc.Logger.LogEvent(util.LOG_LEVEL_INFO, "Listening on", ln.Addr().String(), "variant", string(svc.Variant))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	})

	if svc.Ticker != nil {
		g.Go(func() error {
			return svc.Ticker.Run(ctx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		svc.Logger.LogEvent(util.LOG_LEVEL_INFO, "Shutting down server...")
		return gracefulShutdown(server, cfg.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		svc.Logger.LogEvent(util.LOG_LEVEL_ERROR, "Server stopped with error:", err)
		return err
	}
	svc.Logger.LogEvent(util.LOG_LEVEL_INFO, "Server stopped gracefully.")
	return nil
}

func gracefulShutdown(server *http.Server, maximumTime time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), maximumTime)
	defer cancel()

	return server.Shutdown(ctx)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// validRequestID accepts up to maxRequestIDLen characters from
// [A-Za-z0-9._:-].
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.' || c == ':':
		default:
			return false
		}
	}
	return true
}

func accessLogMiddleware(svc *Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					path = tmpl
				}
			}
			svc.Metrics.RecordRequest(path, r.Method, m.Code, m.Duration)

			svc.Logger.LogFields(util.LOG_LEVEL_DEBUG, "Request",
				zap.String("method", r.Method),
				zap.String("uri", r.RequestURI),
				zap.Int("status", m.Code),
				zap.Duration("duration", m.Duration),
				zap.String("request_id", r.Header.Get(RequestIDHeader)),
			)
		})
	}
}

func recoveryMiddleware(logger *util.MetricsLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.LogFields(util.LOG_LEVEL_ERROR, "http panic",
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Any("panic", rec),
						zap.ByteString("stack", debug.Stack()),
					)
					endpoints.InternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
