package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/avezina/todostack/internal/api/handlers"
	"github.com/avezina/todostack/internal/auth"
	"github.com/avezina/todostack/internal/services"
)

// newBaseRouter creates a chi router with the middleware stack and CORS
// policy shared by both services.
func newBaseRouter(allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	return r
}

// NewUserRouter configures the user-service routes.
func NewUserRouter(db *sql.DB, userService services.UserServiceProvider, tokens *auth.TokenManager, allowedOrigin string) *chi.Mux {
	r := newBaseRouter(allowedOrigin)

	userHandler := handlers.NewUserHandler(userService, tokens)

	r.Get("/api/health", healthHandler(db))
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
	})

	return r
}

// NewTodoRouter configures the todo-service routes. Every todo route sits
// behind the bearer-token middleware.
func NewTodoRouter(db *sql.DB, todoService services.TodoServiceProvider, tokens *auth.TokenManager, allowedOrigin string) *chi.Mux {
	r := newBaseRouter(allowedOrigin)

	todoHandler := handlers.NewTodoHandler(todoService)

	r.Get("/api/health", healthHandler(db))
	r.Route("/api/todos", func(r chi.Router) {
		r.Use(tokens.Middleware())
		r.Post("/", todoHandler.Create)
		r.Get("/", todoHandler.List)
		r.Patch("/{id}", todoHandler.Update)
		r.Delete("/{id}", todoHandler.Delete)
	})

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "database unreachable", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
