package cognito

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/gommon/log"
)

// AccessClaims are the claims Cognito puts in an access token.
type AccessClaims struct {
	TokenUse string `json:"token_use"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier checks access tokens locally against the user pool's signing keys.
type Verifier struct {
	keyfunc  jwt.Keyfunc
	issuer   string
	clientID string
	methods  []string
}

func IssuerURL(region, poolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, poolID)
}

// NewVerifier fetches the pool's JWKS and keeps it refreshed in the background
// until ctx is done.
func NewVerifier(ctx context.Context, region, poolID, clientID string) (*Verifier, error) {
	issuer := IssuerURL(region, poolID)
	jwksURL := issuer + "/.well-known/jwks.json"

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS from resource at %s: %w", jwksURL, err)
	}

	log.Infof("JWKS initialized. Keys loaded from %s", jwksURL)
	return &Verifier{
		keyfunc:  jwks.Keyfunc,
		issuer:   issuer,
		clientID: clientID,
		methods:  []string{jwt.SigningMethodRS256.Alg()},
	}, nil
}

// Verify parses and validates the token signature, issuer, expiry and audience.
func (v *Verifier) Verify(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, v.keyfunc,
		jwt.WithValidMethods(v.methods),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !parsed.Valid {
		return nil, errors.New("token is not valid")
	}

	if claims.TokenUse != "access" {
		return nil, fmt.Errorf("unexpected token use %q", claims.TokenUse)
	}

	if v.clientID != "" && claims.ClientID != v.clientID {
		return nil, errors.New("token was issued to another client")
	}
	return claims, nil
}
