package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sanketkurve/portfolio-backend/database"
	"github.com/sanketkurve/portfolio-backend/errs"
)

type dashboardHandler struct {
	responder Responder
	logger    zerolog.Logger
	database  database.Database
}

func newDashboardHandler(db database.Database) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder: NewResponder(logger),
		logger:    logger,
		database:  db,
	}
}

// getStats returns live collection counts.
// @Summary Dashboard statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Router /api/admin/dashboard/stats [get]
func (h dashboardHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.database.Stats(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("count", "dashboard stats", err))
			return
		}
		h.responder.WriteJSON(w, stats)
	}
}
