package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/softstep/shop/internal/logging"
	"github.com/softstep/shop/internal/service"
	"github.com/softstep/shop/internal/transport"
)

type UserHTTP struct {
	Svc *service.AccountService
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	result, err := h.Svc.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		Message: "Login successful",
		Role:    result.Role,
		Token:   result.AccessToken,
	})
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.Svc.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list users failed", "error", err)
		return respondError(c, err)
	}

	resp := make([]transport.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, transport.UserResponse{ID: u.ID, Username: u.Username, Role: u.Role})
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *UserHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	user, err := h.Svc.Create(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		l.Warn("create_user_error", "username", req.Username, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, transport.UserResponse{ID: user.ID, Username: user.Username, Role: user.Role})
}

func (h *UserHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		l.Warn("update_user_error", "status", 400, "reason", "invalid id", "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid user id"})
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_user_error", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	if err := h.Svc.Update(ctx, uint(id), req.Password, req.Role); err != nil {
		l.Warn("update_user_error", "userID", id, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "User updated successfully"})
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		l.Warn("delete_user_error", "status", 400, "reason", "invalid id", "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid user id"})
	}

	if err := h.Svc.Delete(ctx, uint(id)); err != nil {
		l.Error("delete_user_error", "userID", id, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "User deleted"})
}
