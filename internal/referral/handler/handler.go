package handler

import (
	"context"
	"net/http"
	"strconv"

	"referral-server/internal/apierrors"
	authHandler "referral-server/internal/auth/handler"
	"referral-server/internal/observability"
	"referral-server/internal/referral/processor"

	"github.com/gin-gonic/gin"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// ReferralCodeLookup returns a user's own referral code, or "" if unknown.
type ReferralCodeLookup interface {
	ReferralCodeFor(ctx context.Context, userID string) string
}

type Handler struct {
	processor     processor.ReferralProcessor
	codes         ReferralCodeLookup
	webhookSecret string
	logger        *observability.Logger
}

func New(processor processor.ReferralProcessor, codes ReferralCodeLookup, webhookSecret string, logger *observability.Logger) Handler {
	return Handler{
		processor:     processor,
		codes:         codes,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// CreateLinkRequest represents the HTTP request for creating a referral link
type CreateLinkRequest struct {
	ReferralCode string `json:"referral_code" binding:"required"`
	Channel      string `json:"channel" binding:"required"`
	Locale       string `json:"locale"`
	Campaign     string `json:"campaign"`
	Destination  string `json:"destination"`
	Client       struct {
		Platform   string `json:"platform"`
		AppVersion string `json:"app_version"`
	} `json:"client"`
}

// HandleCreateLink handles POST /v1/referrals/links
func (h *Handler) HandleCreateLink(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(authHandler.UserIDKey)

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	body, err := h.processor.CreateLinkIdempotent(ctx, userID, h.codes.ReferralCodeFor(ctx, userID), c.GetHeader(IdempotencyKeyHeader), processor.CreateLinkRequest{
		ReferralCode: req.ReferralCode,
		Channel:      req.Channel,
		Locale:       req.Locale,
		Campaign:     req.Campaign,
		Destination:  req.Destination,
		Client: processor.ClientInfo{
			Platform:   req.Client.Platform,
			AppVersion: req.Client.AppVersion,
		},
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Data(http.StatusCreated, "application/json; charset=utf-8", body)
}

// HandleListReferrals handles GET /v1/referrals
func (h *Handler) HandleListReferrals(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(authHandler.UserIDKey)

	// A missing or unparsable limit falls back to the default page size.
	limit, _ := strconv.Atoi(c.Query("limit"))

	response, err := h.processor.ListReferrals(ctx, userID, c.Query("status"), limit, c.Query("cursor"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HandleGetSummary handles GET /v1/referrals/summary
func (h *Handler) HandleGetSummary(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(authHandler.UserIDKey)

	summary, err := h.processor.GetSummary(ctx, userID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

type ResolveRequest struct {
	Token  string `json:"token" binding:"required"`
	Device struct {
		DeviceID   string `json:"device_id"`
		Platform   string `json:"platform"`
		AppVersion string `json:"app_version"`
	} `json:"device"`
}

// HandleResolve handles POST /v1/referrals/resolve. It is called before the
// new user has an account, so it is unauthenticated.
func (h *Handler) HandleResolve(c *gin.Context) {
	ctx := c.Request.Context()

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	platform := req.Device.Platform
	if platform == "" {
		platform = observability.GetDeviceOS(c)
	}

	response, err := h.processor.ResolveReferral(ctx, processor.ResolveRequest{
		Token: req.Token,
		Device: processor.DeviceInfo{
			DeviceID:   req.Device.DeviceID,
			Platform:   platform,
			AppVersion: req.Device.AppVersion,
		},
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
