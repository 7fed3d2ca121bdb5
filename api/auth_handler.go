package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sanketkurve/portfolio-backend/auth"
	"github.com/sanketkurve/portfolio-backend/errs"
	"github.com/sanketkurve/portfolio-backend/models"
)

// loginService checks admin credentials and issues tokens.
type loginService interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
}

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	login     loginService
	metrics   *metrics
}

func newAuthHandler(login loginService, m *metrics) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		login:     login,
		metrics:   m,
	}
}

type verifyResponse struct {
	Valid bool           `json:"valid"`
	User  *auth.Identity `json:"user"`
}

// loginAdmin exchanges credentials for a bearer token. Unknown usernames and
// wrong passwords get the same 401 body.
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Admin credentials"
// @Success 200 {object} auth.LoginResult
// @Failure 401 {object} ErrorResponse
// @Router /api/admin/auth/login [post]
func (h authHandler) loginAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials models.LoginRequest
		if err := decodeAndValidate(w, r, &credentials); err != nil {
			h.metrics.loginAttempts.WithLabelValues("rejected").Inc()
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.login.Login(r.Context(), credentials.Username, credentials.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.metrics.loginAttempts.WithLabelValues("invalid").Inc()
			h.logger.Warn().Str("username", credentials.Username).Msg("failed admin login")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}
		if err != nil {
			h.metrics.loginAttempts.WithLabelValues("error").Inc()
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("login failed", err))
			return
		}

		h.metrics.loginAttempts.WithLabelValues("success").Inc()
		h.logger.Info().Str("username", result.Username).Msg("admin logged in")
		h.responder.WriteJSON(w, result)
	}
}

// verifyToken echoes the identity resolved by the auth middleware.
// @Router /api/admin/auth/verify [get]
func (h authHandler) verifyToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := ctxGetIdentity(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		h.responder.WriteJSON(w, verifyResponse{Valid: true, User: identity})
	}
}
