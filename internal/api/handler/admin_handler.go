package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ireserve/ireserve-api/internal/api/metrics"
	"github.com/ireserve/ireserve-api/internal/core/domain"
	"github.com/ireserve/ireserve-api/internal/core/ports"
)

// AdminHandler exposes the admin auth flows and the super-admin-gated CRUD.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type registerAdminRequest struct {
	ProfilePicture string `json:"profile_picture"`
	Firstname      string `json:"firstname" validate:"required"`
	MiddleInitial  string `json:"middle_initial" validate:"omitempty,max=1"`
	Lastname       string `json:"lastname" validate:"required"`
	Username       string `json:"username" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	IsSuperAdmin   bool   `json:"isSuperAdmin"`
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateAdminRequest struct {
	ProfilePicture *string `json:"profile_picture"`
	Firstname      *string `json:"firstname"`
	MiddleInitial  *string `json:"middle_initial" validate:"omitempty,max=1"`
	Lastname       *string `json:"lastname"`
	Username       *string `json:"username"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Password       *string `json:"password" validate:"omitempty,min=6"`
	IsSuperAdmin   *bool   `json:"isSuperAdmin"`
	Status         *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type loginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type adminResponse struct {
	Message string        `json:"message"`
	Admin   *domain.Admin `json:"admin"`
}

// Register creates a new admin account. No tokens are issued.
//
// @Summary      Register a new admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      registerAdminRequest  true  "Admin registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/admin/register [post]
func (h *AdminHandler) Register(c echo.Context) error {
	var req registerAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := h.service.Register(c.Request().Context(), ports.RegisterAdminInput{
		ProfilePicture: req.ProfilePicture,
		Firstname:      req.Firstname,
		MiddleInitial:  req.MiddleInitial,
		Lastname:       req.Lastname,
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		IsSuperAdmin:   req.IsSuperAdmin,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("admin", "failure").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("admin", "success").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "Admin registered successfully"})
}

// Login authenticates an admin and returns an access/refresh token pair.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	pair, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("admin", "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("admin", "success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Message:      "Login successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Profile returns the authenticated admin's own record, password excluded.
//
// @Summary      Admin profile
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Admin
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/admin/profile [get]
func (h *AdminHandler) Profile(c echo.Context) error {
	subjectID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	admin, err := h.service.Profile(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// Refresh exchanges a registered refresh token for a new access token.
//
// @Summary      Refresh admin access token
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Refresh token"
// @Success      200   {object}  accessTokenResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/admin/refresh [post]
func (h *AdminHandler) Refresh(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	access, err := h.service.Refresh(c.Request().Context(), req.Token)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("admin", "rejected").Inc()
		return err
	}

	metrics.RefreshTotal.WithLabelValues("admin", "success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	return c.JSON(http.StatusOK, accessTokenResponse{AccessToken: access})
}

// Logout revokes the refresh token. Succeeds regardless of prior membership.
//
// @Summary      Admin logout
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Refresh token"
// @Success      200   {object}  messageResponse
// @Router       /api/v1/admin/logout [post]
func (h *AdminHandler) Logout(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Logout(c.Request().Context(), req.Token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// List returns all admin accounts, passwords excluded.
//
// @Summary      List admins
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Admin
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/admin [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

// Get returns a single admin by id.
//
// @Summary      Get admin by ID
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Admin ID"
// @Success      200  {object}  domain.Admin
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/admin/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	admin, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// Update applies a partial update to an admin account.
//
// @Summary      Update admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Admin ID"
// @Param        body  body      updateAdminRequest  true  "Fields to update"
// @Success      200   {object}  adminResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/admin/{id} [put]
func (h *AdminHandler) Update(c echo.Context) error {
	var req updateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateAdminInput{
		ProfilePicture: req.ProfilePicture,
		Firstname:      req.Firstname,
		MiddleInitial:  req.MiddleInitial,
		Lastname:       req.Lastname,
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		IsSuperAdmin:   req.IsSuperAdmin,
		Status:         req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Message: "Admin updated successfully", Admin: admin})
}

// Deactivate soft-deletes an admin by moving it to the inactive status.
//
// @Summary      Deactivate admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Admin ID"
// @Success      200  {object}  adminResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/admin/{id} [delete]
func (h *AdminHandler) Deactivate(c echo.Context) error {
	admin, err := h.service.Deactivate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Message: "Admin deactivated successfully", Admin: admin})
}
