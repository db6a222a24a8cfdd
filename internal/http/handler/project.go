package handler

import (
	"net/http"
	"strings"

	"openupload/internal/auth"
	"openupload/internal/domain/apikey"
	"openupload/internal/domain/project"
	"openupload/pkg/validator"

	"github.com/labstack/echo/v4"
)

type ProjectHandler struct {
	projectRepo ProjectRepository
	fileRepo    FileRepository
	keyRepo     APIKeyLister
	blobs       BlobStore
}

func NewProjectHandler(projectRepo ProjectRepository, fileRepo FileRepository, keyRepo APIKeyLister, blobs BlobStore) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		fileRepo:    fileRepo,
		keyRepo:     keyRepo,
		blobs:       blobs,
	}
}

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ProjectDetailResponse carries the project together with its API keys.
// Key hashes never serialize.
type ProjectDetailResponse struct {
	*project.Project
	Keys []*apikey.APIKey `json:"keys"`
}

func (h *ProjectHandler) CreateProject(c echo.Context) error {
	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return err
	}

	var req CreateProjectRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := validator.ProjectName(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if req.Description != nil {
		if err := validator.Description(*req.Description); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
	}

	proj, err := h.projectRepo.Create(c.Request().Context(), project.CreateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		OwnerSubject: principal.User.Subject,
	})

	if err != nil {
		c.Logger().Errorf("Failed to create project: %v", err)
		return respondError(c, http.StatusInternalServerError, msgCreateProjectFail)
	}

	return c.JSON(http.StatusCreated, proj)
}

func (h *ProjectHandler) ListProjects(c echo.Context) error {
	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return err
	}

	projects, err := h.projectRepo.ListByOwner(c.Request().Context(), principal.User.Subject)
	if err != nil {
		c.Logger().Errorf("Failed to list projects for %s: %v", principal.User.Subject, err)
		return respondError(c, http.StatusInternalServerError, msgListProjectsFail)
	}

	if projects == nil {
		projects = []*project.Project{}
	}

	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := parseUUIDParam(c, paramID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	proj, err := h.projectRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeOwner(c, proj.OwnerSubject); err != nil {
		return err
	}

	keys, err := h.keyRepo.ListByOwner(c.Request().Context(), proj.OwnerSubject, &proj.ID)
	if err != nil {
		c.Logger().Errorf("Failed to list keys for project %s: %v", proj.ID, err)
		return respondError(c, http.StatusInternalServerError, msgGetProjectFail)
	}
	if keys == nil {
		keys = []*apikey.APIKey{}
	}

	return c.JSON(http.StatusOK, ProjectDetailResponse{
		Project: proj,
		Keys:    keys,
	})
}

// DeleteProject removes the row first, letting the cascade take keys, files,
// and usage with it, then sweeps the blobs. A blob that fails to delete is
// logged and left behind as an orphan.
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := parseUUIDParam(c, paramID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	proj, err := h.projectRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeOwner(c, proj.OwnerSubject); err != nil {
		return err
	}

	keys, err := h.fileRepo.StorageKeysByProject(c.Request().Context(), proj.ID)
	if err != nil {
		c.Logger().Errorf("Failed to list blobs for project %s: %v", proj.ID, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteProjectFail)
	}

	if err := h.projectRepo.Delete(c.Request().Context(), proj.ID); err != nil {
		return err
	}

	for _, key := range keys {
		if err := h.blobs.Delete(c.Request().Context(), key); err != nil {
			c.Logger().Warnf("Failed to delete blob %s for project %s: %v", key, proj.ID, err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProjectHandler) ProjectStats(c echo.Context) error {
	id, err := parseUUIDParam(c, paramID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	proj, err := h.projectRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeOwner(c, proj.OwnerSubject); err != nil {
		return err
	}

	stats, err := h.fileRepo.StatsByProject(c.Request().Context(), proj.ID)
	if err != nil {
		c.Logger().Errorf("Failed to compute stats for project %s: %v", proj.ID, err)
		return respondError(c, http.StatusInternalServerError, msgProjectStatsFail)
	}

	return c.JSON(http.StatusOK, stats)
}

// ProjectInfo serves the API-key surface: the bound project is the only one
// the key can see.
func (h *ProjectHandler) ProjectInfo(c echo.Context) error {
	grant, err := auth.GetGrant(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, grant.Project)
}
