package handler

import (
	"net/http"
	"time"

	"openupload/internal/auth"
	"openupload/internal/usage"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UsageHandler struct {
	usageReader UsageReader
	fileRepo    FileRepository
}

func NewUsageHandler(usageReader UsageReader, fileRepo FileRepository) *UsageHandler {
	return &UsageHandler{
		usageReader: usageReader,
		fileRepo:    fileRepo,
	}
}

type DashboardStatsResponse struct {
	StorageUsedBytes  int64   `json:"storage_used_bytes"`
	StorageLimitBytes int64   `json:"storage_limit_bytes"`
	TotalFiles        int64   `json:"total_files"`
	RequestsLast30d   int64   `json:"requests_last_30d"`
	RequestsChangePct float64 `json:"requests_change_pct"`
}

// DashboardStats compares the trailing thirty days of traffic against the
// thirty days before that.
func (h *UsageHandler) DashboardStats(c echo.Context) error {
	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return err
	}
	subject := principal.User.Subject
	ctx := c.Request().Context()

	storageStats, err := h.fileRepo.StatsByOwner(ctx, subject)
	if err != nil {
		c.Logger().Errorf("Failed to compute storage stats for %s: %v", subject, err)
		return respondError(c, http.StatusInternalServerError, msgDashboardFail)
	}

	now := time.Now()
	windowStart := now.AddDate(0, 0, -dashboardWindowDays)
	previousStart := now.AddDate(0, 0, -2*dashboardWindowDays)

	current, err := h.usageReader.CountInWindow(ctx, subject, windowStart, now)
	if err != nil {
		c.Logger().Errorf("Failed to count usage for %s: %v", subject, err)
		return respondError(c, http.StatusInternalServerError, msgDashboardFail)
	}

	previous, err := h.usageReader.CountInWindow(ctx, subject, previousStart, windowStart)
	if err != nil {
		c.Logger().Errorf("Failed to count prior usage for %s: %v", subject, err)
		return respondError(c, http.StatusInternalServerError, msgDashboardFail)
	}

	return c.JSON(http.StatusOK, DashboardStatsResponse{
		StorageUsedBytes:  storageStats.TotalStorage,
		StorageLimitBytes: StorageLimitBytes,
		TotalFiles:        storageStats.TotalFiles,
		RequestsLast30d:   current,
		RequestsChangePct: usage.ChangePercent(previous, current),
	})
}

func (h *UsageHandler) UsageByDay(c echo.Context) error {
	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return err
	}

	days, err := parseDays(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	stats, err := h.usageReader.StatsByDay(c.Request().Context(), principal.User.Subject, days)
	if err != nil {
		c.Logger().Errorf("Failed to aggregate usage for %s: %v", principal.User.Subject, err)
		return respondError(c, http.StatusInternalServerError, msgUsageStatsFail)
	}

	if stats == nil {
		stats = []*usage.DayStat{}
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *UsageHandler) UsageDetails(c echo.Context) error {
	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return err
	}

	filter := usage.Filter{OwnerSubject: principal.User.Subject}

	if raw := c.QueryParam(queryProjectID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
		}
		filter.ProjectID = &id
	}

	if raw := c.QueryParam(queryAPIKeyID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidAPIKeyID)
		}
		filter.APIKeyID = &id
	}

	start, err := parseDateQuery(c.QueryParam(queryStartDate))
	if err != nil {
		return handleHTTPError(c, err)
	}
	end, err := parseDateQuery(c.QueryParam(queryEndDate))
	if err != nil {
		return handleHTTPError(c, err)
	}
	filter.Start = start
	filter.End = end

	filter.Offset, filter.Limit = parseSkipLimit(c)

	events, err := h.usageReader.Details(c.Request().Context(), filter)
	if err != nil {
		c.Logger().Errorf("Failed to list usage events for %s: %v", principal.User.Subject, err)
		return respondError(c, http.StatusInternalServerError, msgUsageStatsFail)
	}

	if events == nil {
		events = []*usage.Event{}
	}

	return c.JSON(http.StatusOK, events)
}

// KeyUsageStats serves the API-key surface: a key can see its own traffic
// summary and nothing else.
func (h *UsageHandler) KeyUsageStats(c echo.Context) error {
	grant, err := auth.GetGrant(c)
	if err != nil {
		return err
	}

	days, err := parseDays(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	stats, err := h.usageReader.StatsForKey(c.Request().Context(), grant.Key.ID, days)
	if err != nil {
		c.Logger().Errorf("Failed to compute usage stats for key %s: %v", grant.Key.ID, err)
		return respondError(c, http.StatusInternalServerError, msgUsageStatsFail)
	}

	return c.JSON(http.StatusOK, stats)
}
