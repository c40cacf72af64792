package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/courtside/badminton-scoring/handlers"
	"github.com/courtside/badminton-scoring/middleware"
	"github.com/courtside/badminton-scoring/models"
)

// SetupRoutes wires the full HTTP surface. Reads and the scoreboard socket
// are public; every mutation requires an operator token.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	matchHandler *handlers.MatchHandler,
	scoreHandler *handlers.ScoreHandler,
	courtHandler *handlers.CourtHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	operators := middleware.Authorize(models.RoleOperator, models.RoleAdmin)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/courts", courtHandler.List)
	router.Get("/dashboard", courtHandler.Dashboard)

	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeWs)

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.List)
		r.Get("/{matchID}", matchHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(operators)

			r.Post("/", matchHandler.Create)
			r.Put("/{matchID}", matchHandler.Update)

			r.Post("/{matchID}/start", scoreHandler.Start)
			r.Post("/{matchID}/score", scoreHandler.Score)
			r.Post("/{matchID}/undo", scoreHandler.Undo)
			r.Post("/{matchID}/reset", scoreHandler.Reset)
			r.Post("/{matchID}/switch-side", scoreHandler.SwitchSide)
			r.Post("/{matchID}/change-set", scoreHandler.ChangeSet)
			r.Post("/{matchID}/server", scoreHandler.SelectInitialServer)
			r.Post("/{matchID}/receiver", scoreHandler.SelectInitialReceiver)
			r.Post("/{matchID}/force-win", scoreHandler.ForceWin)
			r.Post("/{matchID}/finish", scoreHandler.Finish)
			r.Post("/{matchID}/scoreboard", scoreHandler.ToggleScoreboard)
			r.Post("/{matchID}/focus", scoreHandler.Focus)
			r.Post("/{matchID}/shuttles", scoreHandler.AdjustShuttles)
		})
	})
}
