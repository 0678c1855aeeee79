package handler

import (
	"strings"

	"referral-server/internal/apierrors"
	"referral-server/internal/auth/processor"
	"referral-server/internal/observability"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDKey is the gin context key holding the authenticated user id.
	UserIDKey = "User-ID"

	MockUserHeader = "X-Mock-UserId"
)

type Handler struct {
	authProcessor processor.AuthProcessor
	allowMockAuth bool
	logger        *observability.Logger
}

func New(authProcessor processor.AuthProcessor, allowMockAuth bool, logger *observability.Logger) Handler {
	return Handler{
		authProcessor: authProcessor,
		allowMockAuth: allowMockAuth,
		logger:        logger,
	}
}

// HandleJWTMiddleware authenticates the caller from a bearer token or, when
// mock auth is allowed, from the X-Mock-UserId header.
func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	if tokenHeader := c.GetHeader("Authorization"); strings.HasPrefix(tokenHeader, "Bearer ") {
		userID, err := h.authProcessor.ValidateJWTToken(ctx, strings.TrimPrefix(tokenHeader, "Bearer "))
		if err != nil {
			apierrors.RespondWithError(c, apierrors.Unauthorized(apierrors.CodeUnauthorized, "Authorization token is invalid."))
			return
		}
		h.authenticated(c, userID)
		return
	}

	if h.allowMockAuth {
		if userID := strings.TrimSpace(c.GetHeader(MockUserHeader)); userID != "" {
			h.authenticated(c, userID)
			return
		}
	}

	apierrors.RespondWithError(c, apierrors.Unauthorized(apierrors.CodeUnauthorized, "Authorization token is missing or invalid."))
}

func (h *Handler) authenticated(c *gin.Context, userID string) {
	c.Set(UserIDKey, userID)
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "user_id", Value: userID})
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
