package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meditrust/storefront/internal/core/domain"
	logicv1 "github.com/meditrust/storefront/internal/logic/v1"
	"github.com/meditrust/storefront/middleware"
)

// Signup handles POST /signup.
func (h *Handler) Signup(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.signup", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required and password must be at least 6 characters"})
		return
	}

	user, err := h.auth.Signup(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Str("email", req.Email).Msg("Signup failed")

		switch {
		case errors.Is(err, logicv1.ErrUserExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		}
		return
	}

	logger.Info().Int("user_id", user.ID).Msg("Signup successful")
	c.JSON(http.StatusCreated, gin.H{"message": "Signup successful"})
}

// Login handles POST /login. On success the session token is set as an
// HTTP-only cookie.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.login", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}

	session, err := h.auth.Login(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")

		switch {
		case errors.Is(err, logicv1.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		case errors.Is(err, logicv1.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.SetCookie(h.cookie.Name, session.Token, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)

	logger.Info().Int("user_id", session.User.ID).Msg("Login successful")
	c.JSON(http.StatusOK, domain.AuthResponse{Message: "Login successful", User: session.User})
}

// Logout handles POST /logout. The session is destroyed and the cookie
// cleared; logging out twice is fine.
func (h *Handler) Logout(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.logout", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	if token := h.sessionToken(c); token != "" {
		if err := h.auth.Logout(ctx, token); err != nil {
			span.RecordError(err)
			zerolog.Ctx(ctx).Error().Err(err).Msg("Logout failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
			return
		}
	}

	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// AuthStatus handles GET /auth-status. It always answers 200; the body
// says whether the presented session is valid.
func (h *Handler) AuthStatus(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.auth_status", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	token := h.sessionToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}

	user, err := h.auth.UserByToken(ctx, token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"loggedIn": true, "user": user})
}
