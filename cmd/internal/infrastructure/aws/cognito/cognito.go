package cognito

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fostercare/cmd/internal/backend"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/labstack/gommon/log"
)

// API is the subset of the Cognito identity provider client used by Auth.
type API interface {
	SignUp(ctx context.Context, in *cip.SignUpInput, opts ...func(*cip.Options)) (*cip.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, in *cip.ConfirmSignUpInput, opts ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	ResendConfirmationCode(ctx context.Context, in *cip.ResendConfirmationCodeInput, opts ...func(*cip.Options)) (*cip.ResendConfirmationCodeOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, opts ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	GlobalSignOut(ctx context.Context, in *cip.GlobalSignOutInput, opts ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error)
	GetUser(ctx context.Context, in *cip.GetUserInput, opts ...func(*cip.Options)) (*cip.GetUserOutput, error)
}

// TokenVerifier validates an access token without a round trip to Cognito.
type TokenVerifier interface {
	Verify(token string) (*AccessClaims, error)
}

// Auth implements backend.Auth on a Cognito user pool app client.
type Auth struct {
	client      API
	verifier    TokenVerifier
	appClientID string
}

func New(client API, verifier TokenVerifier, appClientID string) *Auth {
	return &Auth{
		client:      client,
		verifier:    verifier,
		appClientID: appClientID,
	}
}

// NewFromConfig wires the real client and a JWKS verifier for the pool.
func NewFromConfig(ctx context.Context, cfg aws.Config, poolID, appClientID string) (*Auth, error) {
	verifier, err := NewVerifier(ctx, cfg.Region, poolID, appClientID)
	if err != nil {
		return nil, err
	}
	return New(cip.NewFromConfig(cfg), verifier, appClientID), nil
}

// SignUp creates the user and returns its "sub" as the id.
func (a *Auth) SignUp(ctx context.Context, creds backend.Credentials) (*backend.User, error) {
	out, err := a.client.SignUp(ctx, &cip.SignUpInput{
		ClientId: aws.String(a.appClientID),
		Username: aws.String(creds.Email),
		Password: aws.String(creds.Password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(creds.Email)},
		},
	})
	if err != nil {
		return nil, err
	}

	return &backend.User{
		ID:            aws.ToString(out.UserSub),
		Email:         creds.Email,
		EmailVerified: out.UserConfirmed,
	}, nil
}

func (a *Auth) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := a.client.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(a.appClientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	return err
}

func (a *Auth) ResendConfirmation(ctx context.Context, email string) error {
	_, err := a.client.ResendConfirmationCode(ctx, &cip.ResendConfirmationCodeInput{
		ClientId: aws.String(a.appClientID),
		Username: aws.String(email),
	})
	return err
}

func (a *Auth) SignIn(ctx context.Context, creds backend.Credentials) (*backend.Session, error) {
	out, err := a.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(a.appClientID),
		AuthParameters: map[string]string{
			"USERNAME": creds.Email,
			"PASSWORD": creds.Password,
		},
	})
	if err != nil {
		return nil, err
	}

	res := out.AuthenticationResult
	if res == nil {
		return nil, fmt.Errorf("unsupported auth challenge %q", out.ChallengeName)
	}

	sess := &backend.Session{
		AccessToken: aws.ToString(res.AccessToken),
		IDToken:     aws.ToString(res.IdToken),
		Email:       creds.Email,
		ExpiresAt:   time.Now().Add(time.Duration(res.ExpiresIn) * time.Second),
	}

	if claims, err := a.verifier.Verify(sess.AccessToken); err == nil {
		sess.UserID = claims.Subject
	} else {
		log.Warnf("freshly issued access token failed verification: %v", err)
	}
	return sess, nil
}

// SignOut invalidates every token issued to the user.
func (a *Auth) SignOut(ctx context.Context, accessToken string) error {
	_, err := a.client.GlobalSignOut(ctx, &cip.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	return err
}

func (a *Auth) GetSession(_ context.Context, accessToken string) (*backend.Session, error) {
	if accessToken == "" {
		return nil, backend.ErrNoSession
	}

	claims, err := a.verifier.Verify(accessToken)
	if err != nil {
		log.Debugf("rejected access token: %v", err)
		return nil, backend.ErrNoSession
	}

	email := claims.Email
	if email == "" {
		email = claims.Username
	}

	sess := &backend.Session{
		AccessToken: accessToken,
		UserID:      claims.Subject,
		Email:       email,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

func (a *Auth) GetUser(ctx context.Context, accessToken string) (*backend.User, error) {
	if accessToken == "" {
		return nil, backend.ErrNoSession
	}

	out, err := a.client.GetUser(ctx, &cip.GetUserInput{AccessToken: aws.String(accessToken)})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return nil, backend.ErrNoSession
		}
		return nil, err
	}

	user := &backend.User{ID: aws.ToString(out.Username)}
	for _, attr := range out.UserAttributes {
		switch aws.ToString(attr.Name) {
		case "sub":
			user.ID = aws.ToString(attr.Value)
		case "email":
			user.Email = aws.ToString(attr.Value)
		case "email_verified":
			user.EmailVerified = strings.EqualFold(aws.ToString(attr.Value), "true")
		}
	}
	return user, nil
}
