package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/utils/apierror"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2012-03-04", "2012-03-04"},
		{"2012/03/04", "2012-03-04"},
		{"  2012-03-04T10:00:00Z ", "2012-03-04"},
		{"March 4, 2012", "2012-03-04"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NormalizeDate("not a date")
	assert.Error(t, err)
}

func TestMapAuthError(t *testing.T) {
	t.Run("cognito exceptions", func(t *testing.T) {
		err := fmt.Errorf("sign in: %w", &types.NotAuthorizedException{})
		assert.Equal(t, apierror.IDPCredentialsMismatchError, MapAuthError(err))

		err = fmt.Errorf("sign up: %w", &types.UsernameExistsException{})
		assert.Equal(t, apierror.IDPExistingEmailError, MapAuthError(err))
	})

	t.Run("backend sentinels", func(t *testing.T) {
		assert.Equal(t, apierror.IDPUserNotConfirmedError, MapAuthError(backend.ErrUserNotConfirmed))
		assert.Equal(t, apierror.IDPConfirmCodeMismatchError, MapAuthError(backend.ErrCodeMismatch))
		assert.Equal(t, apierror.UnauthorizedError, MapAuthError(backend.ErrNoSession))
	})

	t.Run("unknown errors are internal", func(t *testing.T) {
		resp := MapAuthError(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, resp.Code())
	})
}

func TestSanitize(t *testing.T) {
	req := struct {
		Name string
		Tags []string
		n    string
	}{Name: "  Amy ", Tags: []string{" a", "b "}, n: " x "}

	Sanitize(&req)
	assert.Equal(t, "Amy", req.Name)
	assert.Equal(t, []string{"a", "b"}, req.Tags)
	assert.Equal(t, " x ", req.n)
}
