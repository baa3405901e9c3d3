package service

import (
	"context"
	"time"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/contract"
	"fostercare/cmd/internal/utils"
	"fostercare/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
)

type AuthService struct {
	Auth     backend.Auth
	Validate *validator.Validate
}

func NewAuthService(auth backend.Auth, validate *validator.Validate) *AuthService {
	return &AuthService{Auth: auth, Validate: validate}
}

func (a *AuthService) SignUp(ctx context.Context, req *contract.SignupRequest) (*contract.SignupResponse, apierror.ErrorResponse) {
	if apierr := a.check(req); apierr != nil {
		return nil, apierr
	}

	user, err := a.Auth.SignUp(ctx, backend.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, utils.MapAuthError(err)
	}

	return &contract.SignupResponse{
		ID:            user.ID,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
	}, nil
}

func (a *AuthService) ConfirmSignup(ctx context.Context, req *contract.ConfirmSignupRequest) apierror.ErrorResponse {
	if apierr := a.check(req); apierr != nil {
		return apierr
	}

	if err := a.Auth.ConfirmSignUp(ctx, req.Email, req.Code); err != nil {
		return utils.MapAuthError(err)
	}
	return nil
}

func (a *AuthService) ResendConfirmation(ctx context.Context, req *contract.ResendConfirmRequest) apierror.ErrorResponse {
	if apierr := a.check(req); apierr != nil {
		return apierr
	}

	if err := a.Auth.ResendConfirmation(ctx, req.Email); err != nil {
		return utils.MapAuthError(err)
	}
	return nil
}

// Login returns the tokens together with the session, the dashboard needs the
// latter to set its cookie lifetime.
func (a *AuthService) Login(ctx context.Context, req *contract.LoginRequest) (*contract.LoginResponse, *backend.Session, apierror.ErrorResponse) {
	if apierr := a.check(req); apierr != nil {
		return nil, nil, apierr
	}

	sess, err := a.Auth.SignIn(ctx, backend.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, nil, utils.MapAuthError(err)
	}

	return &contract.LoginResponse{
		AccessToken: sess.AccessToken,
		IDToken:     sess.IDToken,
		ExpiresAt:   formatTime(sess.ExpiresAt),
	}, sess, nil
}

func (a *AuthService) Logout(ctx context.Context, accessToken string) apierror.ErrorResponse {
	if err := a.Auth.SignOut(ctx, accessToken); err != nil {
		return utils.MapAuthError(err)
	}
	return nil
}

func (a *AuthService) Session(ctx context.Context, accessToken string) (*contract.SessionResponse, apierror.ErrorResponse) {
	sess, err := a.Auth.GetSession(ctx, accessToken)
	if err != nil {
		return nil, utils.MapAuthError(err)
	}

	return &contract.SessionResponse{
		UserID:    sess.UserID,
		Email:     sess.Email,
		ExpiresAt: formatTime(sess.ExpiresAt),
	}, nil
}

func (a *AuthService) User(ctx context.Context, accessToken string) (*contract.UserResponse, apierror.ErrorResponse) {
	user, err := a.Auth.GetUser(ctx, accessToken)
	if err != nil {
		return nil, utils.MapAuthError(err)
	}

	return &contract.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
	}, nil
}

func (a *AuthService) check(req any) apierror.ErrorResponse {
	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		if apierr := apierror.FromValidationError(valerr); apierr != nil {
			return apierr
		}
		return apierror.MalformedBodyError
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
