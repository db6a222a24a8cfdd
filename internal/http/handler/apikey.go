package handler

import (
	"net/http"

	"openupload/internal/auth"
	"openupload/internal/domain/apikey"
	apperrors "openupload/pkg/errors"
	"openupload/pkg/token"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type APIKeyHandler struct {
	keyRepo     APIKeyRepository
	projectRepo ProjectGetter
}

func NewAPIKeyHandler(keyRepo APIKeyRepository, projectRepo ProjectGetter) *APIKeyHandler {
	return &APIKeyHandler{
		keyRepo:     keyRepo,
		projectRepo: projectRepo,
	}
}

type CreateAPIKeyRequest struct {
	ProjectID string `json:"project_id"`
}

type CreateAPIKeyResponse struct {
	APIKey string         `json:"api_key"`
	Key    *apikey.APIKey `json:"key"`
}

// CreateAPIKey issues a new key for an owned project. The secret token is in
// the response and nowhere else; only its hash is stored.
func (h *APIKeyHandler) CreateAPIKey(c echo.Context) error {
	var req CreateAPIKeyRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	proj, err := h.projectRepo.GetByID(c.Request().Context(), projectID)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeOwner(c, proj.OwnerSubject); err != nil {
		return err
	}

	secret, err := token.GenerateAPIKey()
	if err != nil {
		c.Logger().Errorf("Failed to generate API key token: %v", err)
		return respondError(c, http.StatusInternalServerError, msgCreateAPIKeyFail)
	}

	key, err := h.keyRepo.Create(c.Request().Context(), apikey.CreateAPIKeyInput{
		ProjectID:    proj.ID,
		OwnerSubject: proj.OwnerSubject,
		KeyHash:      auth.HashKey(secret),
		KeyPrefix:    token.DisplayPrefix(secret),
	})

	if err != nil {
		c.Logger().Errorf("Failed to create API key for project %s: %v", proj.ID, err)
		return respondError(c, http.StatusInternalServerError, msgCreateAPIKeyFail)
	}

	return c.JSON(http.StatusCreated, CreateAPIKeyResponse{APIKey: secret, Key: key})
}

// ListAPIKeys returns the caller's keys. A project filter that points at a
// missing or foreign project reads as not found.
func (h *APIKeyHandler) ListAPIKeys(c echo.Context) error {
	subject, err := auth.CallerSubject(c)
	if err != nil {
		return err
	}

	var projectID *uuid.UUID
	if raw := c.QueryParam(queryProjectID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
		}

		proj, err := h.projectRepo.GetByID(c.Request().Context(), id)
		if err != nil {
			return err
		}
		if proj.OwnerSubject != subject {
			return apperrors.NotFound(msgAPIKeyNotFound)
		}

		projectID = &id
	}

	keys, err := h.keyRepo.ListByOwner(c.Request().Context(), subject, projectID)
	if err != nil {
		c.Logger().Errorf("Failed to list API keys for %s: %v", subject, err)
		return respondError(c, http.StatusInternalServerError, msgListAPIKeysFail)
	}

	if keys == nil {
		keys = []*apikey.APIKey{}
	}

	return c.JSON(http.StatusOK, keys)
}

func (h *APIKeyHandler) DeleteAPIKey(c echo.Context) error {
	id, err := parseUUIDParam(c, paramID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidAPIKeyID)
	}

	key, err := h.keyRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeOwner(c, key.OwnerSubject); err != nil {
		return err
	}

	if err := h.keyRepo.Delete(c.Request().Context(), key.ID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// VerifyAPIKey lets an owner check a secret token. Unknown, inactive, and
// foreign keys all read as not found so the endpoint cannot be used to probe.
func (h *APIKeyHandler) VerifyAPIKey(c echo.Context) error {
	subject, err := auth.CallerSubject(c)
	if err != nil {
		return err
	}

	secret := c.QueryParam(queryAPIKey)
	if secret == "" {
		return respondError(c, http.StatusBadRequest, msgAPIKeyRequired)
	}

	key, err := h.keyRepo.GetByHash(c.Request().Context(), auth.HashKey(secret))
	if err != nil || key.OwnerSubject != subject || !key.IsActive {
		return apperrors.NotFound(msgAPIKeyNotFound)
	}

	return c.JSON(http.StatusOK, key)
}
