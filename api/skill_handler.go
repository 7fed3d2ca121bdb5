package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sanketkurve/portfolio-backend/database"
	"github.com/sanketkurve/portfolio-backend/models"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
}

func newSkillHandler(skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
	}
}

// listPublic returns visible skills, lowest order first
// @Summary List skills
// @Tags Skills
// @Produce json
// @Success 200 {array} models.Skill
// @Router /api/skills [get]
func (h skillHandler) listPublic() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.ListPublic(r.Context())
		if err != nil {
			h.responder.WriteError(w, repoError("list", "skills", err))
			return
		}
		h.responder.WriteJSON(w, skills)
	}
}

func (h skillHandler) listAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.ListAdmin(r.Context())
		if err != nil {
			h.responder.WriteError(w, repoError("list", "skills", err))
			return
		}
		h.responder.WriteJSON(w, skills)
	}
}

func (h skillHandler) getAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := parseID(chi.URLParam(r, "skillID"), "skill")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.skillRepo.FindByID(r.Context(), skillID)
		if err != nil {
			h.responder.WriteError(w, repoError("find", "skill", err))
			return
		}
		h.responder.WriteJSON(w, skill)
	}
}

// createSkill creates a new skill; level defaults to 50
// @Summary Create skill
// @Tags Skills
// @Accept json
// @Param skill body models.SkillInput true "Skill data"
// @Success 201 {object} models.Skill
// @Router /api/admin/skills [post]
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.SkillInput
		if err := decodeAndValidate(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.skillRepo.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, repoError("create", "skill", err))
			return
		}

		audit(r.Context(), h.logger, "skill.create", skill.ID.String())
		h.responder.WriteJSONStatus(w, http.StatusCreated, skill)
	}
}

func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := parseID(chi.URLParam(r, "skillID"), "skill")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.SkillPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.skillRepo.Update(r.Context(), skillID, patch)
		if err != nil {
			h.responder.WriteError(w, repoError("update", "skill", err))
			return
		}

		audit(r.Context(), h.logger, "skill.update", skillID.String())
		h.responder.WriteJSON(w, skill)
	}
}

func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := parseID(chi.URLParam(r, "skillID"), "skill")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Delete(r.Context(), skillID); err != nil {
			h.responder.WriteError(w, repoError("delete", "skill", err))
			return
		}

		audit(r.Context(), h.logger, "skill.delete", skillID.String())
		h.responder.WriteJSON(w, messageResponse{Message: "Skill deleted successfully"})
	}
}
