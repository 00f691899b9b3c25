package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
)

var (
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrPasswordIsIncorrect = errors.New("password is incorrect")
)

type UserFinder interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

type PasswordMatcher interface {
	Matches(hash, password string) (bool, error)
}

type TokenIssuer interface {
	Issue(u *user.User) (string, time.Time, error)
	IssueRefresh(u *user.User) (string, time.Time, error)
	VerifyRefresh(raw string) (kernel.UUID, error)
}

// Session is the outcome of a successful login or refresh.
type Session struct {
	AccessToken      string
	ExpiresAt        time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	User             *user.User
}

// CredentialsStrategy logs users in with email and password.
type CredentialsStrategy struct {
	users   UserFinder
	matcher PasswordMatcher
	issuer  TokenIssuer
}

func NewCredentialsStrategy(users UserFinder, matcher PasswordMatcher, issuer TokenIssuer) CredentialsStrategy {
	return CredentialsStrategy{users: users, matcher: matcher, issuer: issuer}
}

// Login returns errs.UnauthorizedError for an unknown email or a wrong password.
func (s CredentialsStrategy) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Session{}, errs.NewValueIsRequiredError("email and password")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return Session{}, errs.NewUnauthorizedErrorWithCause("login", ErrUserDoesNotExist)
	}
	if err != nil {
		return Session{}, err
	}

	ok, err := s.matcher.Matches(u.PasswordHash(), password)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, errs.NewUnauthorizedErrorWithCause("login", ErrPasswordIsIncorrect)
	}

	return s.session(u)
}

// Refresh exchanges a refresh token for a new session. The user is reloaded so
// a role change since login is reflected in the new access token.
func (s CredentialsStrategy) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return Session{}, errs.NewValueIsRequiredError("refreshToken")
	}

	id, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return Session{}, err
	}

	u, err := s.users.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return Session{}, errs.NewUnauthorizedErrorWithCause("refresh", ErrUserDoesNotExist)
	}
	if err != nil {
		return Session{}, err
	}

	return s.session(u)
}

func (s CredentialsStrategy) session(u *user.User) (Session, error) {
	token, expiresAt, err := s.issuer.Issue(u)
	if err != nil {
		return Session{}, err
	}
	refresh, refreshExpiresAt, err := s.issuer.IssueRefresh(u)
	if err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken:      token,
		ExpiresAt:        expiresAt,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExpiresAt,
		User:             u,
	}, nil
}
