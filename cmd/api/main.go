package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookclub/internal/config"
	apphttp "bookclub/internal/http"
	"bookclub/internal/httpx"
	"bookclub/internal/platform/googlebooks"
	"bookclub/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.MustLoad()
	setupLogger(cfg)

	dbPool := mustOpenDB(cfg.DatabaseDSN)
	defer dbPool.Close()

	bookRepo := store.NewBookPG(dbPool)
	ratingRepo := store.NewRatingPG(dbPool)
	statusRepo := store.NewReadingStatusPG(dbPool)
	libraryRepo := store.NewLibraryPG(dbPool)

	remote := googlebooks.NewClient(
		cfg.GoogleBooks.BaseURL,
		cfg.GoogleBooks.APIKey,
		cfg.GoogleBooks.MaxResults,
		cfg.GoogleBooks.RPS,
		cfg.GoogleBooks.Timeout,
	)

	bookHandler := apphttp.NewBookHandler(bookRepo, statusRepo, ratingRepo, libraryRepo, remote)
	searchHandler := apphttp.NewSearchHandler(bookRepo, remote)
	topHandler := apphttp.NewTopHandler(bookRepo, remote)
	ratingHandler := apphttp.NewRatingHandler(ratingRepo)
	statusHandler := apphttp.NewReadingStatusHandler(statusRepo)
	favoriteHandler := apphttp.NewFavoriteHandler(bookRepo)
	libraryHandler := apphttp.NewLibraryHandler(libraryRepo)

	optionalAuth := httpx.OptionalAuthMiddleware(cfg.JWTSecret)
	requireAuth := httpx.AuthMiddleware(cfg.JWTSecret)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Handle("/books", optionalAuth(http.HandlerFunc(bookHandler.List)))
	router.Handle("/books/", optionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		routeBook(w, r, bookHandler, ratingHandler, statusHandler, favoriteHandler)
	})))

	router.Handle("/search", optionalAuth(http.HandlerFunc(searchHandler.Search)))
	router.Handle("/top", optionalAuth(http.HandlerFunc(topHandler.List)))

	libraryMux := http.NewServeMux()
	libraryMux.HandleFunc("/library", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			libraryHandler.Add(w, r)
		case http.MethodGet:
			libraryHandler.List(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	libraryMux.HandleFunc("/library/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		libraryHandler.Remove(w, r)
	})
	router.Handle("/library", requireAuth(libraryMux))
	router.Handle("/library/", requireAuth(libraryMux))

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	var handler http.Handler = router
	handler = rateLimit.Middleware(handler)
	handler = httpx.RequestSizeLimitMiddleware(1 << 20)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.CORSMiddleware(cfg.CORS.AllowedOrigins)(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("starting server", slog.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", slog.String("error", err.Error()))
	}
}

// routeBook dispatches /books/{id} and its sub-resources.
func routeBook(
	w http.ResponseWriter,
	r *http.Request,
	books *apphttp.BookHandler,
	ratings *apphttp.RatingHandler,
	statuses *apphttp.ReadingStatusHandler,
	favorites *apphttp.FavoriteHandler,
) {
	switch {
	case hasAction(r.URL.Path, "rating"):
		switch r.Method {
		case http.MethodPost:
			ratings.Upsert(w, r)
		case http.MethodGet:
			ratings.Get(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case hasAction(r.URL.Path, "reviews"):
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		ratings.ListReviews(w, r)
	case hasAction(r.URL.Path, "reading-status"):
		switch r.Method {
		case http.MethodPost:
			statuses.Upsert(w, r)
		case http.MethodGet:
			statuses.Get(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case hasAction(r.URL.Path, "favorite"):
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		favorites.Set(w, r)
	default:
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		books.Get(w, r)
	}
}

func hasAction(path, action string) bool {
	trimmed := path
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == '/' {
		trimmed = trimmed[:len(trimmed)-1]
	}
	suffix := "/" + action
	return len(trimmed) > len(suffix) && trimmed[len(trimmed)-len(suffix):] == suffix
}

func setupLogger(cfg *config.Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warning", "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		slog.Error("cannot create db pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		slog.Error("cannot ping database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("database connection OK")
	return pool
}
