package cognito

import (
	"context"
	"errors"
	"testing"
	"time"

	"fostercare/cmd/internal/backend"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("pool-signing-key")

const (
	testIssuer = "https://cognito-idp.us-east-1.amazonaws.com/us-east-1_pool"
	testClient = "app-client"
)

func testVerifier() *Verifier {
	return &Verifier{
		keyfunc:  func(*jwt.Token) (any, error) { return testKey, nil },
		issuer:   testIssuer,
		clientID: testClient,
		methods:  []string{jwt.SigningMethodHS256.Alg()},
	}
}

func sign(t *testing.T, claims AccessClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)
	return token
}

func validClaims() AccessClaims {
	return AccessClaims{
		TokenUse: "access",
		ClientID: testClient,
		Username: "worker@agency.org",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "sub-123",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

type fakeAPI struct {
	API
	signIn    *cip.InitiateAuthOutput
	signInErr error
	getUser   *cip.GetUserOutput
	getErr    error
	signedOut []string
}

func (f *fakeAPI) InitiateAuth(_ context.Context, in *cip.InitiateAuthInput, _ ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
	if in.AuthFlow != types.AuthFlowTypeUserPasswordAuth {
		return nil, errors.New("wrong flow")
	}
	return f.signIn, f.signInErr
}

func (f *fakeAPI) GlobalSignOut(_ context.Context, in *cip.GlobalSignOutInput, _ ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error) {
	f.signedOut = append(f.signedOut, aws.ToString(in.AccessToken))
	return &cip.GlobalSignOutOutput{}, nil
}

func (f *fakeAPI) GetUser(_ context.Context, _ *cip.GetUserInput, _ ...func(*cip.Options)) (*cip.GetUserOutput, error) {
	return f.getUser, f.getErr
}

func TestVerifier(t *testing.T) {
	v := testVerifier()

	tests := []struct {
		name   string
		mutate func(c *AccessClaims)
		ok     bool
	}{
		{name: "valid", mutate: func(*AccessClaims) {}, ok: true},
		{name: "id token", mutate: func(c *AccessClaims) { c.TokenUse = "id" }},
		{name: "other client", mutate: func(c *AccessClaims) { c.ClientID = "someone-else" }},
		{name: "other issuer", mutate: func(c *AccessClaims) { c.Issuer = "https://evil.example" }},
		{name: "expired", mutate: func(c *AccessClaims) { c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour)) }},
		{name: "no expiry", mutate: func(c *AccessClaims) { c.ExpiresAt = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			tt.mutate(&claims)

			got, err := v.Verify(sign(t, claims))
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "sub-123", got.Subject)
		})
	}
}

func TestAuth_SignIn(t *testing.T) {
	token := sign(t, validClaims())
	api := &fakeAPI{signIn: &cip.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			AccessToken: aws.String(token),
			IdToken:     aws.String("id-token"),
			ExpiresIn:   3600,
		},
	}}
	auth := New(api, testVerifier(), testClient)

	sess, err := auth.SignIn(context.Background(), backend.Credentials{Email: "worker@agency.org", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, token, sess.AccessToken)
	assert.Equal(t, "sub-123", sess.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)
}

func TestAuth_SignInChallenge(t *testing.T) {
	api := &fakeAPI{signIn: &cip.InitiateAuthOutput{ChallengeName: types.ChallengeNameTypeNewPasswordRequired}}
	auth := New(api, testVerifier(), testClient)

	_, err := auth.SignIn(context.Background(), backend.Credentials{Email: "a", Password: "b"})
	assert.ErrorContains(t, err, "NEW_PASSWORD_REQUIRED")
}

func TestAuth_GetSession(t *testing.T) {
	auth := New(&fakeAPI{}, testVerifier(), testClient)
	ctx := context.Background()

	sess, err := auth.GetSession(ctx, sign(t, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "worker@agency.org", sess.Email)

	_, err = auth.GetSession(ctx, "")
	assert.ErrorIs(t, err, backend.ErrNoSession)

	_, err = auth.GetSession(ctx, "garbage")
	assert.ErrorIs(t, err, backend.ErrNoSession)
}

func TestAuth_GetUser(t *testing.T) {
	api := &fakeAPI{getUser: &cip.GetUserOutput{
		Username: aws.String("worker@agency.org"),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("sub"), Value: aws.String("sub-123")},
			{Name: aws.String("email"), Value: aws.String("worker@agency.org")},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
		},
	}}
	auth := New(api, testVerifier(), testClient)

	user, err := auth.GetUser(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, &backend.User{ID: "sub-123", Email: "worker@agency.org", EmailVerified: true}, user)

	api.getErr = &types.NotAuthorizedException{Message: aws.String("Access Token has been revoked")}
	_, err = auth.GetUser(context.Background(), "token")
	assert.ErrorIs(t, err, backend.ErrNoSession)
}

func TestAuth_SignOut(t *testing.T) {
	api := &fakeAPI{}
	auth := New(api, testVerifier(), testClient)

	require.NoError(t, auth.SignOut(context.Background(), "tok"))
	assert.Equal(t, []string{"tok"}, api.signedOut)
}
