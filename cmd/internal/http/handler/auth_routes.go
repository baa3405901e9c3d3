package handler

import (
	"context"
	"net/http"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/contract"
	"fostercare/cmd/internal/utils"
	"fostercare/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AuthService interface {
	SignUp(ctx context.Context, req *contract.SignupRequest) (*contract.SignupResponse, apierror.ErrorResponse)
	ConfirmSignup(ctx context.Context, req *contract.ConfirmSignupRequest) apierror.ErrorResponse
	ResendConfirmation(ctx context.Context, req *contract.ResendConfirmRequest) apierror.ErrorResponse
	Login(ctx context.Context, req *contract.LoginRequest) (*contract.LoginResponse, *backend.Session, apierror.ErrorResponse)
	Logout(ctx context.Context, accessToken string) apierror.ErrorResponse
	Session(ctx context.Context, accessToken string) (*contract.SessionResponse, apierror.ErrorResponse)
	User(ctx context.Context, accessToken string) (*contract.UserResponse, apierror.ErrorResponse)
}

type DefaultAuthRoute struct {
	AuthService AuthService
}

func NewAuthRoute(authService AuthService) *DefaultAuthRoute {
	return &DefaultAuthRoute{AuthService: authService}
}

func (a *DefaultAuthRoute) SignUp(c echo.Context) error {
	var req contract.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	user, apierr := a.AuthService.SignUp(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, user)
}

func (a *DefaultAuthRoute) ConfirmSignup(c echo.Context) error {
	var req contract.ConfirmSignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := a.AuthService.ConfirmSignup(c.Request().Context(), &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (a *DefaultAuthRoute) ResendConfirmation(c echo.Context) error {
	var req contract.ResendConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := a.AuthService.ResendConfirmation(c.Request().Context(), &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (a *DefaultAuthRoute) Login(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	tokens, _, apierr := a.AuthService.Login(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, tokens)
}

func (a *DefaultAuthRoute) Logout(c echo.Context) error {
	token := utils.TokenFromRequest(c)
	if token == "" {
		apierr := apierror.UnauthorizedError
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := a.AuthService.Logout(c.Request().Context(), token); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *DefaultAuthRoute) GetSession(c echo.Context) error {
	sess, apierr := a.AuthService.Session(c.Request().Context(), utils.TokenFromRequest(c))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, sess)
}

func (a *DefaultAuthRoute) GetUser(c echo.Context) error {
	user, apierr := a.AuthService.User(c.Request().Context(), utils.TokenFromRequest(c))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, user)
}
