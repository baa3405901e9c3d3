package view

import (
	"context"

	"fostercare/cmd/internal/backend"

	"github.com/labstack/gommon/log"
)

const LoginPath = "/auth/login"

type GateState int

const (
	Checking GateState = iota
	Authenticated
	Redirecting
)

func (s GateState) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Redirecting:
		return "redirecting"
	default:
		return "checking"
	}
}

// AuthGate decides whether a gated page renders or sends the user to login.
// It checks once and never refreshes.
type AuthGate struct {
	State   GateState
	Session *backend.Session

	auth backend.Auth
}

func NewAuthGate(auth backend.Auth) *AuthGate {
	return &AuthGate{State: Checking, auth: auth}
}

// Check resolves the gate from the access token. Any failure, expired token or
// unreachable backend alike, counts as no session.
func (g *AuthGate) Check(ctx context.Context, accessToken string) GateState {
	sess, err := g.auth.GetSession(ctx, accessToken)
	if err != nil || sess == nil {
		if err != nil && accessToken != "" {
			log.Debugf("session check failed: %v", err)
		}
		g.State = Redirecting
		g.Session = nil
		return g.State
	}

	g.State = Authenticated
	g.Session = sess
	return g.State
}

// RedirectTo is where a Redirecting gate sends the user, empty otherwise.
func (g *AuthGate) RedirectTo() string {
	if g.State == Redirecting {
		return LoginPath
	}
	return ""
}
