package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/zjurelinac/East/src/auth"
	"github.com/zjurelinac/East/src/handler"
	"github.com/zjurelinac/East/src/repository"
)

// NewRouter assembles the API routes.
func NewRouter() chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("\"/healthcheck\" error")
		}
	})

	r.Get("/docs", handler.DocsHandler())
	r.Post("/users", handler.DefaultRegisterHandler())
	r.Post("/login", handler.DefaultLoginHandler())
	r.Get("/users/{id}", handler.DefaultGetUserHandler())
	r.Get("/articles", handler.DefaultSearchArticlesHandler())
	r.Get("/articles/{id}", handler.DefaultGetArticleHandler())

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(repository.NewUserRepository()))

		r.Post("/users/password", handler.DefaultChangePasswordHandler())
		r.Post("/articles", handler.DefaultCreateArticleHandler())
		r.Post("/articles/{id}/publish", handler.DefaultPublishArticleHandler())
		r.Post("/articles/{id}/comments", handler.DefaultCreateCommentHandler())
	})

	return r
}

func StartServer(port string) {
	r := NewRouter()

	// Graceful server
	// Server setup
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), GetConfig().ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
