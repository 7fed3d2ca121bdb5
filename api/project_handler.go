package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sanketkurve/portfolio-backend/database"
	"github.com/sanketkurve/portfolio-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// listPublic returns visible projects in insertion order
// @Summary List projects
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Router /api/projects [get]
func (h projectHandler) listPublic() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.ListPublic(r.Context())
		if err != nil {
			h.responder.WriteError(w, repoError("list", "projects", err))
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// getPublic returns one visible project
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse
// @Router /api/projects/{projectID} [get]
func (h projectHandler) getPublic() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(chi.URLParam(r, "projectID"), "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.GetPublic(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, repoError("find", "project", err))
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// listAdmin returns every project, hidden ones included, newest first
// @Router /api/admin/projects [get]
func (h projectHandler) listAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.ListAdmin(r.Context())
		if err != nil {
			h.responder.WriteError(w, repoError("list", "projects", err))
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// @Router /api/admin/projects/{projectID} [get]
func (h projectHandler) getAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(chi.URLParam(r, "projectID"), "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, repoError("find", "project", err))
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.ProjectInput true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/admin/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.ProjectInput
		if err := decodeAndValidate(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, repoError("create", "project", err))
			return
		}

		audit(r.Context(), h.logger, "project.create", project.ID.String())
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// updateProject applies a partial update; absent and null fields are kept
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body models.ProjectPatch true "Fields to change"
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(chi.URLParam(r, "projectID"), "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.ProjectPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Update(r.Context(), projectID, patch)
		if err != nil {
			h.responder.WriteError(w, repoError("update", "project", err))
			return
		}

		audit(r.Context(), h.logger, "project.update", projectID.String())
		h.responder.WriteJSON(w, project)
	}
}

// @Router /api/admin/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(chi.URLParam(r, "projectID"), "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, repoError("delete", "project", err))
			return
		}

		audit(r.Context(), h.logger, "project.delete", projectID.String())
		h.responder.WriteJSON(w, messageResponse{Message: "Project deleted successfully"})
	}
}
