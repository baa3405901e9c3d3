package utils

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/utils/apierror"

	"github.com/araddon/dateparse"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/labstack/gommon/log"
)

// DateLayout is how dates of birth are stored and rendered.
const DateLayout = "2006-01-02"

var (
	invalidPwd    *types.InvalidPasswordException
	userExists    *types.UsernameExistsException
	userNotFound  *types.UserNotFoundException
	notConfirmed  *types.UserNotConfirmedException
	notAuthorized *types.NotAuthorizedException
	codeMismatch  *types.CodeMismatchException
	expiredCode   *types.ExpiredCodeException
	invalidParam  *types.InvalidParameterException
)

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

// NormalizeDate parses a loosely formatted date ("2012/03/04", "March 4 2012",
// "2012-03-04T00:00:00Z"...) and returns it as YYYY-MM-DD.
func NormalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// MapAuthError translates identity provider failures into API errors. Both the
// Cognito typed exceptions and the backend sentinels are understood, so the
// mapping holds whichever auth driver is configured.
func MapAuthError(err error) apierror.ErrorResponse {
	switch {
	case errors.As(err, &invalidPwd), errors.Is(err, backend.ErrInvalidPassword):
		return apierror.IDPInvalidPasswordError
	case errors.As(err, &userExists), errors.Is(err, backend.ErrUserExists):
		return apierror.IDPExistingEmailError
	case errors.As(err, &userNotFound), errors.Is(err, backend.ErrUserNotFound):
		return apierror.IDPUserNotFoundError
	case errors.As(err, &notConfirmed), errors.Is(err, backend.ErrUserNotConfirmed):
		return apierror.IDPUserNotConfirmedError
	case errors.As(err, &notAuthorized), errors.Is(err, backend.ErrInvalidCredentials):
		return apierror.IDPCredentialsMismatchError
	case errors.As(err, &codeMismatch), errors.Is(err, backend.ErrCodeMismatch):
		return apierror.IDPConfirmCodeMismatchError
	case errors.As(err, &expiredCode):
		return apierror.IDPConfirmCodeExpiredError
	case errors.As(err, &invalidParam), errors.Is(err, backend.ErrAlreadyConfirmed):
		return apierror.IDPInvalidParameterError
	case errors.Is(err, backend.ErrNoSession):
		return apierror.UnauthorizedError
	default:
		// Log the original underlying error for debugging purposes
		log.Errorf("unmapped auth error: %v", err)
		return apierror.InternalServerError
	}
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
