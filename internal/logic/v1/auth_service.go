package v1

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/meditrust/storefront/internal/core/domain"
	"github.com/meditrust/storefront/middleware"
)

// AuthService implements signup, login and session resolution.
// It depends on repository interfaces (injected via constructor) and
// MUST NOT access the database or SQL directly.
type AuthService struct {
	users      domain.UserRepository
	sessions   domain.SessionStore
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(users domain.UserRepository, sessions domain.SessionStore, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Signup registers a new user. The password is bcrypt-hashed before it
// reaches the repository.
func (s *AuthService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.signup", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("email", req.Email),
	))
	defer span.End()

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		span.SetAttributes(attribute.Bool("signup.success", false))
		return nil, fmt.Errorf("register %q: %w", req.Email, ErrUserExists)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.users.Create(ctx, req.Name, req.Email, string(passwordHash))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", userID), attribute.Bool("signup.success", true))
	span.AddEvent("user.registered")

	return &domain.User{ID: userID, Name: req.Name, Email: req.Email}, nil
}

// Login verifies credentials and opens a new session. The returned
// session token is what the boundary sets as the cookie value.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("email", req.Email),
	))
	defer span.End()

	row, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user %q: %w", req.Email, err)
	}
	if row == nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate %q: %w", req.Email, ErrUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(req.Password)); err != nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate %q: %w", req.Email, ErrInvalidCredentials)
	}

	session := domain.Session{
		Token:     uuid.NewString(),
		User:      domain.User{ID: row.ID, Name: row.Name, Email: row.Email},
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create session: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", row.ID), attribute.Bool("auth.success", true))
	span.AddEvent("user.authenticated")

	return &session, nil
}

// Logout destroys the session for the given token. Unknown tokens are
// not an error; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx, span := middleware.StartSpan(ctx, "auth.logout", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if err := s.sessions.Destroy(ctx, token); err != nil {
		span.RecordError(err)
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// UserByToken resolves a session token to its user identity, enforcing
// expiry. Expired sessions are destroyed on sight.
func (s *AuthService) UserByToken(ctx context.Context, token string) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.user_by_token", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query session: %w", err)
	}
	if session == nil {
		span.SetAttributes(attribute.Bool("session.valid", false))
		return nil, fmt.Errorf("lookup session: %w", ErrSessionNotFound)
	}

	if time.Now().After(session.ExpiresAt) {
		span.SetAttributes(attribute.Bool("session.valid", false))
		_ = s.sessions.Destroy(ctx, token)
		return nil, fmt.Errorf("session expired at %v: %w", session.ExpiresAt, ErrSessionExpired)
	}

	span.SetAttributes(attribute.Int("user.id", session.User.ID), attribute.Bool("session.valid", true))

	user := session.User
	return &user, nil
}
