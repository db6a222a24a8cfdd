package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"openupload/internal/auth"
	"openupload/internal/domain/file"
	"openupload/internal/storage"
	apperrors "openupload/pkg/errors"
	"openupload/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type FileHandler struct {
	fileRepo    FileRepository
	projectRepo ProjectGetter
	blobs       BlobStore
}

func NewFileHandler(fileRepo FileRepository, projectRepo ProjectGetter, blobs BlobStore) *FileHandler {
	return &FileHandler{
		fileRepo:    fileRepo,
		projectRepo: projectRepo,
		blobs:       blobs,
	}
}

// UploadFile serves the bearer surface: the target project comes from the
// form and must be owned by the caller.
func (h *FileHandler) UploadFile(c echo.Context) error {
	projectID, err := uuid.Parse(c.FormValue(formFieldProjectID))
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

	return h.storeUpload(c, proj.ID, proj.OwnerSubject)
}

// UploadFileByKey serves the API-key surface: the key's bound project is the
// only possible target.
func (h *FileHandler) UploadFileByKey(c echo.Context) error {
	grant, err := auth.GetGrant(c)
	if err != nil {
		return err
	}

	return h.storeUpload(c, grant.Project.ID, grant.User.Subject)
}

// storeUpload writes the blob before the row. When the row insert fails the
// blob is removed so neither side outlives the other; a crash in between
// leaves an orphaned blob, which is tolerated.
func (h *FileHandler) storeUpload(c echo.Context, projectID uuid.UUID, ownerSubject string) error {
	fileHeader, err := c.FormFile(formFieldFile)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgFileFieldRequired)
	}

	if err := validator.FileName(fileHeader.Filename); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	mimeType := fileHeader.Header.Get(echo.HeaderContentType)
	if err := validator.ContentType(mimeType); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if mimeType == "" {
		mimeType = echo.MIMEOctetStream
	}

	src, err := fileHeader.Open()
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgFileFieldRequired)
	}
	defer src.Close()

	storageKey := storage.BuildKey(projectID, fileHeader.Filename, time.Now())

	size, err := h.blobs.Save(c.Request().Context(), storageKey, src)
	if err != nil {
		c.Logger().Errorf("Failed to store blob %s: %v", storageKey, err)
		return respondError(c, http.StatusInternalServerError, msgUploadFileFail)
	}

	record, err := h.fileRepo.Create(c.Request().Context(), file.CreateFileInput{
		ProjectID:    projectID,
		OwnerSubject: ownerSubject,
		Filename:     fileHeader.Filename,
		SizeBytes:    size,
		MimeType:     mimeType,
		StorageKey:   storageKey,
	})

	if err != nil {
		if deleteErr := h.blobs.Delete(c.Request().Context(), storageKey); deleteErr != nil {
			c.Logger().Errorf("Failed to rollback blob %s after insert failure: %v", storageKey, deleteErr)
		}
		c.Logger().Errorf("Failed to create file record for %s: %v", storageKey, err)
		return respondError(c, http.StatusInternalServerError, msgUploadFileFail)
	}

	return c.JSON(http.StatusCreated, record)
}

// ListFiles serves the bearer surface, scoped to one owned project.
func (h *FileHandler) ListFiles(c echo.Context) error {
	raw := c.QueryParam(queryProjectID)
	if raw == "" {
		return respondError(c, http.StatusBadRequest, msgProjectIDRequired)
	}

	projectID, err := uuid.Parse(raw)
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

	return h.listProject(c, proj.ID)
}

// ListFilesByKey serves the API-key surface, implicitly scoped to the bound
// project.
func (h *FileHandler) ListFilesByKey(c echo.Context) error {
	grant, err := auth.GetGrant(c)
	if err != nil {
		return err
	}

	return h.listProject(c, grant.Project.ID)
}

func (h *FileHandler) listProject(c echo.Context, projectID uuid.UUID) error {
	skip, limit := parseSkipLimit(c)

	files, err := h.fileRepo.List(c.Request().Context(), file.ListFilesFilter{
		ProjectID: projectID,
		Limit:     limit,
		Offset:    skip,
	})
	if err != nil {
		c.Logger().Errorf("Failed to list files for project %s: %v", projectID, err)
		return respondError(c, http.StatusInternalServerError, msgListFilesFail)
	}

	if files == nil {
		files = []*file.File{}
	}

	return c.JSON(http.StatusOK, files)
}

// DeleteFile serves the bearer surface: ownership is checked against the
// caller's subject.
func (h *FileHandler) DeleteFile(c echo.Context) error {
	record, err := h.getFileByParam(c)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeOwner(c, record.OwnerSubject); err != nil {
		return err
	}

	return h.removeFile(c, record)
}

// DeleteFileByKey serves the API-key surface: the file must belong to the
// key's bound project.
func (h *FileHandler) DeleteFileByKey(c echo.Context) error {
	grant, err := auth.GetGrant(c)
	if err != nil {
		return err
	}

	record, err := h.getFileByParam(c)
	if err != nil {
		return err
	}

	if record.ProjectID != grant.Project.ID {
		return apperrors.Forbidden("access denied")
	}

	return h.removeFile(c, record)
}

func (h *FileHandler) getFileByParam(c echo.Context) (*file.File, error) {
	id, err := parseUUIDParam(c, paramID)
	if err != nil {
		return nil, apperrors.NotFound(msgFileNotFound)
	}

	return h.fileRepo.GetByID(c.Request().Context(), id)
}

// removeFile deletes the blob best-effort, then the row. A blob already gone
// from the store does not block the row deletion.
func (h *FileHandler) removeFile(c echo.Context, record *file.File) error {
	if err := h.blobs.Delete(c.Request().Context(), record.StorageKey); err != nil {
		c.Logger().Warnf("Failed to delete blob %s: %v", record.StorageKey, err)
	}

	if err := h.fileRepo.Delete(c.Request().Context(), record.ID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DownloadFile is the public surface. A row whose blob has vanished reads as
// not found, same as a missing row.
func (h *FileHandler) DownloadFile(c echo.Context) error {
	id, err := parseUUIDParam(c, paramID)
	if err != nil {
		return apperrors.NotFound(msgFileNotFound)
	}

	record, err := h.fileRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	blob, err := h.blobs.Open(c.Request().Context(), record.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound(msgFileNotFound)
		}
		c.Logger().Errorf("Failed to open blob %s: %v", record.StorageKey, err)
		return apperrors.Dependency(msgFileNotFound, err)
	}
	defer blob.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", record.Filename))

	return c.Stream(http.StatusOK, record.MimeType, blob)
}
