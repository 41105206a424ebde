package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"pitch-reports/benchmark"
	"pitch-reports/logger"
	"pitch-reports/mailer"
	"pitch-reports/render"
	"pitch-reports/report"
	"pitch-reports/roster"
	"pitch-reports/warehouse"
)

type Server struct {
	config     *Config
	router     *mux.Router
	httpServer *http.Server

	warehouse  *warehouse.Conn
	pitches    *warehouse.PitchStore
	benchmarks *benchmark.Cache
	roster     *roster.Store
	assembler  *report.Assembler
	renderer   *render.Renderer
	mailer     *mailer.Mailer
}

func NewServer(ctx context.Context, config *Config) (*Server, error) {
	ch, err := warehouse.NewConn(ctx, config.ClickHouseDSN)
	if err != nil {
		return nil, err
	}

	rosterStore, err := roster.Connect(ctx, config.PostgresURL)
	if err != nil {
		ch.Close()
		return nil, err
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		ch.Close()
		rosterStore.Close()
		return nil, err
	}

	benchmarks := benchmark.NewCache(warehouse.NewBenchmarkStore(ch))

	s := &Server{
		config:     config,
		router:     mux.NewRouter(),
		warehouse:  ch,
		pitches:    warehouse.NewPitchStore(ch),
		benchmarks: benchmarks,
		roster:     rosterStore,
		assembler:  report.NewAssembler(benchmarks),
		renderer:   renderer,
	}

	if config.EmailEnabled() {
		s.mailer = mailer.New(mailer.Config{
			Host:     config.SMTPHost,
			Port:     config.SMTPPort,
			Username: config.SMTPUsername,
			Password: config.SMTPPassword,
			From:     config.SMTPFrom,
		})
	} else {
		logger.Warn("smtp not configured, report email delivery disabled")
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.rootHandler).Methods("GET")
	s.router.Handle("/metrics", metricsHandler()).Methods("GET")

	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", s.healthHandler).Methods("GET")
	api.HandleFunc("/dates", s.getDatesHandler).Methods("GET")
	api.HandleFunc("/pitchers", s.getPitchersHandler).Methods("GET")
	api.HandleFunc("/pitchers/{name}/report", s.getReportHandler).Methods("GET")
	api.HandleFunc("/pitchers/{name}/report.pdf", s.getReportPDFHandler).Methods("GET")
	api.HandleFunc("/stats", s.getStatsHandler).Methods("GET")
	api.HandleFunc("/reports/email", s.emailReportsHandler).Methods("POST")

	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)
}

func (s *Server) Start() error {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         86400,
	})

	handler := c.Handler(s.router)

	s.httpServer = &http.Server{
		Addr:         s.config.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("starting pitch reports server", "addr", s.config.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("shutting down pitch reports server")

	s.warehouse.Close()
	s.roster.Close()

	return s.httpServer.Shutdown(ctx)
}

// Middleware
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		elapsed := time.Since(start)
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		observeRequest(r.Method, route, lrw.statusCode, elapsed)
		logger.Info("request",
			"method", r.Method,
			"path", r.RequestURI,
			"status", lrw.statusCode,
			"duration", elapsed.String())
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered", "error", err, "path", r.URL.Path)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func main() {
	config, err := LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := NewServer(ctx, config)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	server.benchmarks.StartCleanup(ctx)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
