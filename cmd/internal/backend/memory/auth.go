package memory

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/utils/uid"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer       = "fostercare-memory"
	minPasswdLen = 8
)

type account struct {
	user backend.User
	hash []byte
	code string
}

// Auth is a self-contained identity provider: bcrypt password hashes and HS256
// signed access tokens. Confirmation codes are logged instead of mailed.
type Auth struct {
	mu       sync.Mutex
	secret   []byte
	ttl      time.Duration
	accounts map[string]*account
	revoked  map[string]time.Time
	now      func() time.Time
}

func NewAuth(secret string, ttl time.Duration) *Auth {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Auth{
		secret:   []byte(secret),
		ttl:      ttl,
		accounts: make(map[string]*account),
		revoked:  make(map[string]time.Time),
		now:      time.Now,
	}
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (a *Auth) SignUp(_ context.Context, creds backend.Credentials) (*backend.User, error) {
	email := normalizeEmail(creds.Email)
	if len(creds.Password) < minPasswdLen {
		return nil, backend.ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.accounts[email]; ok {
		return nil, backend.ErrUserExists
	}

	acc := &account{
		user: backend.User{ID: uid.NewID(), Email: email},
		hash: hash,
		code: newCode(),
	}
	a.accounts[email] = acc

	log.Infof("confirmation code for %s: %s", email, acc.code)
	user := acc.user
	return &user, nil
}

func (a *Auth) ConfirmSignUp(_ context.Context, email, code string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	acc, ok := a.accounts[normalizeEmail(email)]
	if !ok {
		return backend.ErrUserNotFound
	}
	if acc.user.EmailVerified {
		return backend.ErrAlreadyConfirmed
	}
	if strings.TrimSpace(code) != acc.code {
		return backend.ErrCodeMismatch
	}

	acc.user.EmailVerified = true
	acc.code = ""
	return nil
}

func (a *Auth) ResendConfirmation(_ context.Context, email string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	acc, ok := a.accounts[normalizeEmail(email)]
	if !ok {
		return backend.ErrUserNotFound
	}
	if acc.user.EmailVerified {
		return backend.ErrAlreadyConfirmed
	}

	acc.code = newCode()
	log.Infof("confirmation code for %s: %s", acc.user.Email, acc.code)
	return nil
}

func (a *Auth) SignIn(_ context.Context, creds backend.Credentials) (*backend.Session, error) {
	email := normalizeEmail(creds.Email)

	a.mu.Lock()
	acc, ok := a.accounts[email]
	var (
		user backend.User
		hash []byte
	)
	if ok {
		user, hash = acc.user, acc.hash
	}
	a.mu.Unlock()

	if !ok {
		return nil, backend.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(creds.Password)); err != nil {
		return nil, backend.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, backend.ErrUserNotConfirmed
	}

	now := a.now()
	exp := now.Add(a.ttl)
	c := claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uid.NewID(),
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &backend.Session{
		AccessToken: token,
		IDToken:     token,
		UserID:      user.ID,
		Email:       user.Email,
		ExpiresAt:   exp,
	}, nil
}

func (a *Auth) SignOut(_ context.Context, accessToken string) error {
	c, err := a.parse(accessToken)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.revoked[c.ID] = c.ExpiresAt.Time
	return nil
}

func (a *Auth) GetSession(_ context.Context, accessToken string) (*backend.Session, error) {
	c, err := a.parse(accessToken)
	if err != nil {
		return nil, err
	}

	return &backend.Session{
		AccessToken: accessToken,
		IDToken:     accessToken,
		UserID:      c.Subject,
		Email:       c.Email,
		ExpiresAt:   c.ExpiresAt.Time,
	}, nil
}

func (a *Auth) GetUser(ctx context.Context, accessToken string) (*backend.User, error) {
	sess, err := a.GetSession(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	acc, ok := a.accounts[sess.Email]
	if !ok {
		return nil, backend.ErrUserNotFound
	}
	user := acc.user
	return &user, nil
}

func (a *Auth) parse(token string) (*claims, error) {
	if token == "" {
		return nil, backend.ErrNoSession
	}

	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debugf("expired session token for %s", c.Email)
		}
		return nil, backend.ErrNoSession
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.revoked[c.ID]; ok {
		return nil, backend.ErrNoSession
	}
	return c, nil
}

// Sweep drops revocations of tokens that expired anyway.
func (a *Auth) Sweep(now time.Time) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0
	for id, exp := range a.revoked {
		if now.After(exp) {
			delete(a.revoked, id)
			n++
		}
	}
	return n
}

// CodeFor exposes the pending confirmation code so tests and the dev console
// can complete a sign-up.
func (a *Auth) CodeFor(email string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if acc, ok := a.accounts[normalizeEmail(email)]; ok {
		return acc.code
	}
	return ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
