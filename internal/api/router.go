package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/perchapp/perch-be/internal/api/handlers"
	"github.com/perchapp/perch-be/internal/auth"
	"github.com/perchapp/perch-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.Service,
	authService services.AuthServiceProvider,
	userService services.UserServiceProvider,
	inviteService services.InviteServiceProvider,
	postService services.PostServiceProvider,
	followService services.FollowServiceProvider,
	feedService services.FeedServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	systemHandler := handlers.NewSystemHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, followService, postService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	postHandler := handlers.NewPostHandler(postService, feedService)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Get("/health", systemHandler.Health)
		r.Get("/status", systemHandler.Status)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Everything else requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())

			r.Get("/me", userHandler.GetMe)
			r.Put("/me", userHandler.UpdateMe)

			r.Route("/invites", func(r chi.Router) {
				r.Get("/", inviteHandler.List)
				r.Post("/", inviteHandler.Create)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", postHandler.Feed)
				r.Post("/", postHandler.Create)
				r.Get("/all", postHandler.Explore)
				r.Route("/{postID}", func(r chi.Router) {
					r.Delete("/", postHandler.Delete)
					r.Post("/like", postHandler.ToggleLike)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.Search)
				r.Route("/{userID}", func(r chi.Router) {
					r.Get("/", userHandler.Get)
					r.Get("/posts", userHandler.GetPosts)
					r.Get("/followers", userHandler.GetFollowers)
					r.Get("/following", userHandler.GetFollowing)
					r.Post("/follow", userHandler.ToggleFollow)
				})
			})
		})
	})

	return r
}
