package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler      healthHandler
	projectHandler     projectHandler
	skillHandler       skillHandler
	certificateHandler certificateHandler
	contactHandler     contactHandler
	messageHandler     messageHandler
	authHandler        authHandler
	dashboardHandler   dashboardHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// messageResponse is the body of deletes and status updates.
type messageResponse struct {
	Message string `json:"message" example:"Project deleted successfully"`
}
