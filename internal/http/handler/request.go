package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON          = "application/json"
	maxStrictBodyBytes int64 = 1 << 20 // Keep parser bound below the global body limit.
)

func bindStrictJSON(c echo.Context, dst interface{}) error {
	if !strings.HasPrefix(strings.ToLower(c.Request().Header.Get(echo.HeaderContentType)), contentTypeJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	body := io.LimitReader(c.Request().Body, maxStrictBodyBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	return nil
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// parseSkipLimit reads pagination query params, clamping limit to the allowed
// range.
func parseSkipLimit(c echo.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam(querySkip))
	if skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(c.QueryParam(queryLimit))
	if err != nil || limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return skip, limit
}

// parseDays reads the trailing-window query param, defaulting when absent.
func parseDays(c echo.Context) (int, error) {
	raw := c.QueryParam(queryDays)
	if raw == "" {
		return defaultUsageDays, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, msgInvalidDays)
	}

	return days, nil
}

// parseDateQuery accepts either a date or a full RFC 3339 timestamp.
func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}

	return nil, echo.NewHTTPError(http.StatusBadRequest, msgInvalidDateFilter)
}
