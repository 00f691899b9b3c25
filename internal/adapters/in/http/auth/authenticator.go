// Package auth issues and verifies access tokens and checks user credentials.
// Everything is built from Config and injected; nothing reads the environment.
package auth

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultIssuer     = "parcelhub"
	DefaultTokenTTL   = 24 * time.Hour
	DefaultRefreshTTL = 30 * 24 * time.Hour

	useAccess  = "access"
	useRefresh = "refresh"
)

var (
	ErrSecretIsRequired = errs.NewValueIsRequiredError("jwt secret")
	ErrExpiryIsRequired = errors.New("token has no expiry")
	ErrWrongTokenUse    = errors.New("token cannot be used here")
)

type Config struct {
	Secret        string
	Issuer        string
	TokenTTL      time.Duration
	RefreshTTL    time.Duration
	BcryptCost    int
	SecureCookies bool
}

type claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	Use   string `json:"use"`
	jwt.RegisteredClaims
}

// Authenticator signs HS256 access and refresh tokens whose subject is the
// user id. A refresh token is only accepted by VerifyRefresh and an access
// token only by Verify.
type Authenticator struct {
	secret     []byte
	issuer     string
	ttl        time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if cfg.Secret == "" {
		return nil, ErrSecretIsRequired
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}

	return &Authenticator{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		ttl:        cfg.TokenTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}, nil
}

// Issue returns a signed access token for u and its expiry.
func (a *Authenticator) Issue(u *user.User) (string, time.Time, error) {
	return a.sign(u, useAccess, a.ttl)
}

// IssueRefresh returns a signed refresh token for u and its expiry.
func (a *Authenticator) IssueRefresh(u *user.User) (string, time.Time, error) {
	return a.sign(u, useRefresh, a.refreshTTL)
}

func (a *Authenticator) sign(u *user.User, use string, ttl time.Duration) (string, time.Time, error) {
	if err := u.Validate(); err != nil {
		return "", time.Time{}, err
	}

	issuedAt := a.now()
	expiresAt := issuedAt.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:  u.Role().String(),
		Email: u.Email(),
		Use:   use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID().String(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify checks signature, issuer, expiry and use of an access token and
// returns the caller. Every failure is reported as errs.UnauthorizedError.
func (a *Authenticator) Verify(raw string) (kernel.Actor, error) {
	c, err := a.parse(raw, useAccess)
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthorizedErrorWithCause("verify token", err)
	}

	id, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthorizedErrorWithCause("verify token", err)
	}
	role, err := kernel.ParseRole(c.Role)
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthorizedErrorWithCause("verify token", err)
	}

	return kernel.NewActor(id, role)
}

// VerifyRefresh checks a refresh token and returns the id of the user it was
// issued to. The role is not trusted; callers reload the user.
func (a *Authenticator) VerifyRefresh(raw string) (kernel.UUID, error) {
	c, err := a.parse(raw, useRefresh)
	if err != nil {
		return kernel.UUID{}, errs.NewUnauthorizedErrorWithCause("verify refresh token", err)
	}

	id, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return kernel.UUID{}, errs.NewUnauthorizedErrorWithCause("verify refresh token", err)
	}
	return id, nil
}

func (a *Authenticator) parse(raw, use string) (claims, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return claims{}, err
	}
	if c.ExpiresAt == nil {
		return claims{}, ErrExpiryIsRequired
	}
	if c.Use != use {
		return claims{}, ErrWrongTokenUse
	}
	return c, nil
}

// BcryptHasher hashes and checks passwords with golang.org/x/crypto/bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher falls back to bcrypt.DefaultCost for an out-of-range cost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{cost: cost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Matches reports whether password is the one hash was made from.
func (h BcryptHasher) Matches(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
