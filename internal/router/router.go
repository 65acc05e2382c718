package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"gemini-chat-backend/internal/handlers"
	"gemini-chat-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	allowedOrigins []string,
	log *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.CORS(allowedOrigins))

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
	})

	return r
}
