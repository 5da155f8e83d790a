package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/greentable/site-backend/handlers"
	"github.com/greentable/site-backend/middleware"
	"github.com/greentable/site-backend/models"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	imageHandler *handlers.ImageHandler,
	tournamentHandler *handlers.TournamentHandler,
	leadHandler *handlers.LeadHandler,
	contactHandler *handlers.ContactHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Post("/auth/login", authHandler.Login)

	// Public site surface
	router.Get("/site-images", imageHandler.ListSiteImages)
	router.Get("/site-images/{slot}", imageHandler.GetSiteImage)
	router.Get("/tournaments", tournamentHandler.ListTournaments)
	router.Get("/tournaments/schedule", tournamentHandler.GetSchedule)
	router.Get("/tournaments/today", tournamentHandler.GetToday)
	router.Post("/leads", leadHandler.CreateLead)
	router.Get("/contact", contactHandler.GetContact)
	router.Get("/ws/{room}", webSocketHandler.ServeWs)

	// Admin panel surface
	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))
		r.Use(middleware.Authorize(string(models.RoleAdmin)))

		r.Get("/images", imageHandler.ListGallery)
		r.Post("/images", imageHandler.UploadImage)
		r.Delete("/images", imageHandler.DeleteImage)
		r.Put("/site-images/{slot}", imageHandler.SaveSiteImage)

		r.Get("/leads", leadHandler.ListLeads)

		r.Post("/tournaments", tournamentHandler.CreateTournament)
		r.Put("/tournaments/{tournamentID}", tournamentHandler.UpdateTournament)
		r.Delete("/tournaments/{tournamentID}", tournamentHandler.DeleteTournament)

		r.Put("/contact", contactHandler.SaveContact)
	})
}
