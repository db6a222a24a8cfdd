package handler

import (
	"net/http"

	"openupload/internal/auth"
	"openupload/internal/domain/user"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

type MeResponse struct {
	User  *user.User `json:"user"`
	Name  string     `json:"name"`
	Roles []string   `json:"roles"`
}

// Me returns the stored user row plus the live claims from the token. The
// row's email is never re-synced from the provider, so the two can diverge.
func (h *UserHandler) Me(c echo.Context) error {
	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MeResponse{
		User:  principal.User,
		Name:  principal.Claims.Name,
		Roles: principal.Claims.Roles,
	})
}
