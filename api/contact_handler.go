package api

import (
	"net"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sanketkurve/portfolio-backend/database"
	"github.com/sanketkurve/portfolio-backend/models"
)

// ContactNotifier is told about every stored contact message.
type ContactNotifier interface {
	MessageReceived(msg models.Message)
}

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.MessageRepo
	notifier    ContactNotifier
	metrics     *metrics
}

func newContactHandler(messageRepo *database.MessageRepo, notifier ContactNotifier, m *metrics) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
		notifier:    notifier,
		metrics:     m,
	}
}

// submitContact stores a contact form message and hands it to the notifier.
// The response does not wait for email delivery.
// @Summary Submit contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body models.MessageInput true "Contact message"
// @Success 201 {object} models.Message
// @Failure 400 {object} ErrorResponse
// @Router /api/contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.MessageInput
		if err := decodeAndValidate(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		meta := models.RequestMeta{
			IP:        clientIP(r),
			UserAgent: r.UserAgent(),
		}

		message, err := h.messageRepo.Create(r.Context(), input, meta)
		if err != nil {
			h.responder.WriteError(w, repoError("create", "message", err))
			return
		}

		h.metrics.contactMessages.Inc()
		h.logger.Info().Str("messageId", message.ID.String()).Str("from", message.Email).Msg("new message received")

		if h.notifier != nil {
			h.notifier.MessageReceived(*message)
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, message)
	}
}

// clientIP is the host part of RemoteAddr. Proxy headers only count when
// the RealIP middleware is enabled (TRUST_PROXY=true).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
