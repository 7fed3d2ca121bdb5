package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes registers the unauthenticated site routes and the login
// endpoint.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/", handlers.healthHandler.banner())
	r.Get("/health", handlers.healthHandler.health())

	r.Get("/projects", handlers.projectHandler.listPublic())
	r.Get("/projects/{projectID}", handlers.projectHandler.getPublic())
	r.Get("/skills", handlers.skillHandler.listPublic())
	r.Get("/certificates", handlers.certificateHandler.listPublic())

	r.Post("/contact", handlers.contactHandler.submitContact())

	r.Post("/admin/auth/login", handlers.authHandler.loginAdmin())
}

// setupAdminRoutes registers every route behind the bearer token gate.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Get("/admin/auth/verify", handlers.authHandler.verifyToken())

		r.Route("/admin/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.listAdmin())
			r.Post("/", handlers.projectHandler.createProject())
			r.Get("/{projectID}", handlers.projectHandler.getAdmin())
			r.Put("/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
		})

		r.Route("/admin/skills", func(r chi.Router) {
			r.Get("/", handlers.skillHandler.listAdmin())
			r.Post("/", handlers.skillHandler.createSkill())
			r.Get("/{skillID}", handlers.skillHandler.getAdmin())
			r.Put("/{skillID}", handlers.skillHandler.updateSkill())
			r.Delete("/{skillID}", handlers.skillHandler.deleteSkill())
		})

		r.Route("/admin/certificates", func(r chi.Router) {
			r.Get("/", handlers.certificateHandler.listAdmin())
			r.Post("/", handlers.certificateHandler.createCertificate())
			r.Get("/{certificateID}", handlers.certificateHandler.getAdmin())
			r.Put("/{certificateID}", handlers.certificateHandler.updateCertificate())
			r.Delete("/{certificateID}", handlers.certificateHandler.deleteCertificate())
		})

		r.Get("/admin/messages", handlers.messageHandler.listMessages())
		r.Put("/admin/messages/{messageID}/status", handlers.messageHandler.updateStatus())
		r.Delete("/admin/messages/{messageID}", handlers.messageHandler.deleteMessage())

		r.Get("/admin/dashboard/stats", handlers.dashboardHandler.getStats())
	})
}
