package api

import (
	"time"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, m *metrics, startupTime time.Time) *routeHandlers {
	db := deps.Database

	return &routeHandlers{
		healthHandler:      newHealthHandler(db, startupTime),
		projectHandler:     newProjectHandler(db.ProjectRepo()),
		skillHandler:       newSkillHandler(db.SkillRepo()),
		certificateHandler: newCertificateHandler(db.CertificateRepo()),
		contactHandler:     newContactHandler(db.MessageRepo(), deps.Notifier, m),
		messageHandler:     newMessageHandler(db.MessageRepo()),
		authHandler:        newAuthHandler(deps.Auth, m),
		dashboardHandler:   newDashboardHandler(db),
	}
}
