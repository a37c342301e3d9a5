package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"pagewise/features/assist"
	"pagewise/features/mcp"
	"pagewise/features/run"
	"pagewise/features/stats"
	"pagewise/internal/auth"
	"pagewise/internal/config"
	"pagewise/internal/corpus"
	"pagewise/internal/events"
	"pagewise/internal/flow"
	"pagewise/internal/middleware"
	"pagewise/internal/prompt"
	"pagewise/internal/runlog"
	"pagewise/internal/worker"
)

type App struct {
	Handler     http.Handler
	Dispatcher  *flow.Dispatcher
	RunConsumer *worker.RunConsumer

	port    int
	closers []io.Closer
}

// New wires the flow core and its HTTP surface. producer may be nil, in which
// case run events are only written to the run log.
func New(
	cfg *config.Config,
	db *sql.DB,
	gen flow.Generator,
	producer events.Producer,
	logger *slog.Logger,
) (*App, error) {
	if db == nil {
		return nil, fmt.Errorf("app: nil database")
	}
	if gen == nil {
		return nil, fmt.Errorf("app: nil generator")
	}

	a := &App{port: cfg.ServerPort}

	// Run recording
	runLog, closer, err := runlog.NewFileLogger(cfg.RunLogPath)
	if err != nil {
		logger.Warn("failed to create run logger, falling back to stdout", "error", err)
		runLog = runlog.NewLogger(os.Stdout)
	} else {
		a.closers = append(a.closers, closer)
	}
	recorders := flow.Recorders{runLog}
	if cfg.EnableRunEvents && producer != nil {
		recorders = append(recorders, events.NewPublisher(producer))
	}

	// Flow core
	accessor := corpus.NewAccessor(corpus.NewPostgresStore(db))
	assembler := prompt.NewAssembler(cfg.ResponseLanguage)
	service := flow.NewService(accessor, gen, assembler)
	a.Dispatcher = flow.NewDispatcher(service, recorders)

	// Feature: Runs
	runRepo := run.NewPostgresRepo(db)
	runHandler := run.NewHandler(runRepo)
	statsHandler := stats.NewHandler(runRepo)
	a.RunConsumer = worker.NewRunConsumer(runRepo)

	// Middleware: CORS
	enableCORS := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
	authn := middleware.Authenticate(auth.NewVerifier(cfg.AuthSecret))
	protected := func(h http.Handler) http.Handler {
		return middleware.CorrelationID(enableCORS(authn(h)))
	}

	// Routes
	mux := http.NewServeMux()

	assist.NewHandler(a.Dispatcher, cfg.MaxRequestBytes).Register(mux, protected)

	mux.Handle("GET /runs", protected(http.HandlerFunc(runHandler.List)))
	mux.Handle("GET /stats", protected(http.HandlerFunc(statsHandler.GetStats)))

	mcpHandler := mcp.NewHandler(a.Dispatcher)
	mux.Handle("/mcp", protected(mcpHandler.HTTPHandler("/mcp")))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	a.Handler = mux
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.close()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.port),
		Handler: a.Handler,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", a.port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			slog.Warn("failed to close resource", "error", err)
		}
	}
}
