package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// UserHandler serves the profile endpoints and the admin user views.
type UserHandler struct {
	users ports.UserService
	audit ports.AuditService
}

func NewUserHandler(users ports.UserService, audit ports.AuditService) *UserHandler {
	return &UserHandler{users: users, audit: audit}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Registered Administrator"`
}

// Me returns the caller's profile.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.PublicProfile
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	profile, err := h.users.Profile(c.Request().Context(), p.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateMe changes the caller's display name and, optionally, the avatar.
//
// @Summary      Update profile
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name    formData  string  true   "Display name"
// @Param        avatar  formData  file    false  "Avatar image"
// @Success      200  {object}  domain.PublicProfile
// @Failure      400  {object}  map[string]string
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	avatar, closeAvatar, err := formUpload(c, "avatar")
	if err != nil {
		return err
	}
	defer closeAvatar()

	profile, err := h.users.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		UserID: p.SubjectID,
		Name:   c.FormValue("name"),
		Avatar: avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ChangePassword replaces the caller's password.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /users/me/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.users.ChangePassword(c.Request().Context(), p.SubjectID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns one page of users, searchable by name or email.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q     query  string  false  "Search over name and email"
// @Param        page  query  int     false  "Page number (1-based)"
// @Success      200  {object}  domain.Page[domain.PublicProfile]
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	req, err := pageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.users.ListUsers(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// ChangeRole sets a user's role.
//
// @Summary      Change user role
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                true  "User ID"
// @Param        body  body  changeRoleRequest  true  "New role"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/role [put]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return domain.NewValidationError("role must be Registered or Administrator")
	}

	if err := h.users.ChangeRole(c.Request().Context(), p, id, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a user account.
//
// @Summary      Delete user
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  int  true  "User ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.users.DeleteUser(c.Request().Context(), p, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Audit lists the most recent audit events performed by or on a user.
//
// @Summary      User audit trail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User ID"
// @Success      200  {array}  domain.AuditEvent
// @Router       /users/{id}/audit [get]
func (h *UserHandler) Audit(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	events, err := h.audit.ListForUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
