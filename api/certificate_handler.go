package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sanketkurve/portfolio-backend/database"
	"github.com/sanketkurve/portfolio-backend/models"
)

type certificateHandler struct {
	responder       Responder
	logger          zerolog.Logger
	certificateRepo *database.CertificateRepo
}

func newCertificateHandler(certificateRepo *database.CertificateRepo) certificateHandler {
	logger := log.With().Str("handlerName", "certificateHandler").Logger()

	return certificateHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		certificateRepo: certificateRepo,
	}
}

// listPublic returns visible certificates by priority
// @Summary List certificates
// @Tags Certificates
// @Produce json
// @Success 200 {array} models.Certificate
// @Router /api/certificates [get]
func (h certificateHandler) listPublic() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificates, err := h.certificateRepo.ListPublic(r.Context())
		if err != nil {
			h.responder.WriteError(w, repoError("list", "certificates", err))
			return
		}
		h.responder.WriteJSON(w, certificates)
	}
}

func (h certificateHandler) listAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificates, err := h.certificateRepo.ListAdmin(r.Context())
		if err != nil {
			h.responder.WriteError(w, repoError("list", "certificates", err))
			return
		}
		h.responder.WriteJSON(w, certificates)
	}
}

func (h certificateHandler) getAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := parseID(chi.URLParam(r, "certificateID"), "certificate")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		certificate, err := h.certificateRepo.FindByID(r.Context(), certificateID)
		if err != nil {
			h.responder.WriteError(w, repoError("find", "certificate", err))
			return
		}
		h.responder.WriteJSON(w, certificate)
	}
}

// @Summary Create certificate
// @Tags Certificates
// @Router /api/admin/certificates [post]
func (h certificateHandler) createCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.CertificateInput
		if err := decodeAndValidate(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		certificate, err := h.certificateRepo.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, repoError("create", "certificate", err))
			return
		}

		audit(r.Context(), h.logger, "certificate.create", certificate.ID.String())
		h.responder.WriteJSONStatus(w, http.StatusCreated, certificate)
	}
}

func (h certificateHandler) updateCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := parseID(chi.URLParam(r, "certificateID"), "certificate")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.CertificatePatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		certificate, err := h.certificateRepo.Update(r.Context(), certificateID, patch)
		if err != nil {
			h.responder.WriteError(w, repoError("update", "certificate", err))
			return
		}

		audit(r.Context(), h.logger, "certificate.update", certificateID.String())
		h.responder.WriteJSON(w, certificate)
	}
}

func (h certificateHandler) deleteCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := parseID(chi.URLParam(r, "certificateID"), "certificate")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.certificateRepo.Delete(r.Context(), certificateID); err != nil {
			h.responder.WriteError(w, repoError("delete", "certificate", err))
			return
		}

		audit(r.Context(), h.logger, "certificate.delete", certificateID.String())
		h.responder.WriteJSON(w, messageResponse{Message: "Certificate deleted successfully"})
	}
}
