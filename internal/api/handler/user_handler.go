package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ireserve/ireserve-api/internal/api/metrics"
	"github.com/ireserve/ireserve-api/internal/core/domain"
	"github.com/ireserve/ireserve-api/internal/core/ports"
)

// UserHandler exposes the user auth flows and the admin-gated user CRUD.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type registerUserRequest struct {
	IDNumber      string  `json:"id_number" validate:"required"`
	Firstname     string  `json:"firstname" validate:"required"`
	MiddleInitial string  `json:"middle_initial" validate:"omitempty,max=1"`
	Lastname      string  `json:"lastname" validate:"required"`
	ProgramCourse string  `json:"program_course"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=6"`
	UserType      string  `json:"user_type" validate:"omitempty,oneof=student faculty"`
	RemainingTime *string `json:"remaining_time"`
}

type userLoginRequest struct {
	IDNumber string `json:"id_number" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	IDNumber      *string `json:"id_number"`
	Firstname     *string `json:"firstname"`
	MiddleInitial *string `json:"middle_initial" validate:"omitempty,max=1"`
	Lastname      *string `json:"lastname"`
	ProgramCourse *string `json:"program_course"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Password      *string `json:"password" validate:"omitempty,min=6"`
	UserType      *string `json:"user_type" validate:"omitempty,oneof=student faculty"`
	RemainingTime *string `json:"remaining_time"`
}

type userResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// Register creates a new user account. Students must supply remaining_time;
// the check runs before any write. No tokens are issued.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "User registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/auth/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := h.service.Register(c.Request().Context(), ports.RegisterUserInput{
		IDNumber:      req.IDNumber,
		Firstname:     req.Firstname,
		MiddleInitial: req.MiddleInitial,
		Lastname:      req.Lastname,
		ProgramCourse: req.ProgramCourse,
		Email:         req.Email,
		Password:      req.Password,
		UserType:      req.UserType,
		RemainingTime: req.RemainingTime,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("user", "failure").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("user", "success").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

// Login authenticates a user by id_number and returns a token pair. The
// access token carries the user_type claim.
//
// @Summary      User login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      userLoginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/auth/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req userLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	pair, err := h.service.Login(c.Request().Context(), req.IDNumber, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("user", "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("user", "success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Message:      "Login successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Profile returns the authenticated user's own record, password excluded.
//
// @Summary      User profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/auth/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	subjectID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Refresh exchanges a registered refresh token for a new access token.
//
// @Summary      Refresh user access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Refresh token"
// @Success      200   {object}  accessTokenResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/auth/refresh [post]
func (h *UserHandler) Refresh(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	access, err := h.service.Refresh(c.Request().Context(), req.Token)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("user", "rejected").Inc()
		return err
	}

	metrics.RefreshTotal.WithLabelValues("user", "success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	return c.JSON(http.StatusOK, accessTokenResponse{AccessToken: access})
}

// Logout revokes the refresh token. Succeeds regardless of prior membership.
//
// @Summary      User logout
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Refresh token"
// @Success      200   {object}  messageResponse
// @Router       /api/v1/auth/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Logout(c.Request().Context(), req.Token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// List returns all non-deleted users, passwords excluded.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns a single user by id. Soft-deleted users are not found.
//
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update applies a partial update to a user account.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		IDNumber:      req.IDNumber,
		Firstname:     req.Firstname,
		MiddleInitial: req.MiddleInitial,
		Lastname:      req.Lastname,
		ProgramCourse: req.ProgramCourse,
		Email:         req.Email,
		Password:      req.Password,
		UserType:      req.UserType,
		RemainingTime: req.RemainingTime,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete soft-deletes a user; the record stays in the store flagged deleted.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.service.SoftDelete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Message: "User deleted successfully", User: user})
}
