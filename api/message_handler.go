package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sanketkurve/portfolio-backend/database"
	"github.com/sanketkurve/portfolio-backend/errs"
	"github.com/sanketkurve/portfolio-backend/models"
)

type messageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.MessageRepo
}

func newMessageHandler(messageRepo *database.MessageRepo) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
	}
}

// listMessages returns the inbox, newest first
// @Summary List contact messages
// @Tags Messages
// @Produce json
// @Success 200 {array} models.Message
// @Router /api/admin/messages [get]
func (h messageHandler) listMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.messageRepo.ListAdmin(r.Context())
		if err != nil {
			h.responder.WriteError(w, repoError("list", "messages", err))
			return
		}
		h.responder.WriteJSON(w, messages)
	}
}

// updateStatus sets a message status from the ?status= query parameter or
// a {"status": ...} body. Values outside unread/read/archived are stored as
// given.
// @Router /api/admin/messages/{messageID}/status [put]
func (h messageHandler) updateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := parseID(chi.URLParam(r, "messageID"), "message")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		status := r.URL.Query().Get("status")
		if status == "" {
			var update models.StatusUpdate
			if err := decodeAndValidate(w, r, &update); err != nil {
				if errs.IsMalformedPayloadError(err) {
					err = errs.NewMissingRequiredFieldError("status")
				}
				h.responder.WriteError(w, err)
				return
			}
			status = update.Status
		}

		if err := h.messageRepo.SetStatus(r.Context(), messageID, status); err != nil {
			h.responder.WriteError(w, repoError("update", "message", err))
			return
		}

		audit(r.Context(), h.logger, "message.status:"+status, messageID.String())
		h.responder.WriteJSON(w, messageResponse{Message: "Status updated successfully"})
	}
}

// @Router /api/admin/messages/{messageID} [delete]
func (h messageHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := parseID(chi.URLParam(r, "messageID"), "message")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.messageRepo.Delete(r.Context(), messageID); err != nil {
			h.responder.WriteError(w, repoError("delete", "message", err))
			return
		}

		audit(r.Context(), h.logger, "message.delete", messageID.String())
		h.responder.WriteJSON(w, messageResponse{Message: "Message deleted successfully"})
	}
}
