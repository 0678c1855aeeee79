package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"referral-server/internal/apierrors"
	"referral-server/internal/observability"
	"referral-server/internal/referral/processor"

	"github.com/gin-gonic/gin"
)

const (
	SignatureHeader = "X-Vendor-Signature"
	signaturePrefix = "sha256="

	maxWebhookBody = 64 << 10
)

// SignPayload returns the X-Vendor-Signature value for payload:
// "sha256=" followed by the hex HMAC-SHA256 of the raw body.
func SignPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

func validSignature(secret string, payload []byte, header string) bool {
	if secret == "" || !strings.HasPrefix(header, signaturePrefix) {
		return false
	}
	return hmac.Equal([]byte(SignPayload(secret, payload)), []byte(header))
}

// vendorEventPayload accepts both the snake_case fields and the vendor's
// older camelCase names.
type vendorEventPayload struct {
	EventType         string            `json:"event_type"`
	EventTypeCamel    string            `json:"eventType"`
	Token             string            `json:"token"`
	OccurredAt        *time.Time        `json:"occurred_at"`
	OccurredAtCamel   *time.Time        `json:"occurredAt"`
	DeviceIDHash      string            `json:"device_id_hash"`
	DeviceIDHashCamel string            `json:"deviceIdHash"`
	Metadata          map[string]string `json:"metadata"`
}

// DecodeVendorEvent parses a vendor callback body.
func DecodeVendorEvent(payload []byte) (processor.VendorEvent, error) {
	var p vendorEventPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return processor.VendorEvent{}, err
	}

	evt := processor.VendorEvent{
		EventType:    firstNonEmpty(p.EventType, p.EventTypeCamel),
		Token:        p.Token,
		DeviceIDHash: firstNonEmpty(p.DeviceIDHash, p.DeviceIDHashCamel),
		Metadata:     p.Metadata,
	}
	switch {
	case p.OccurredAt != nil:
		evt.OccurredAt = *p.OccurredAt
	case p.OccurredAtCamel != nil:
		evt.OccurredAt = *p.OccurredAtCamel
	}
	return evt, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// HandleVendorWebhook handles POST /v1/webhooks/deeplink/events
func (h *Handler) HandleVendorWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	// One byte past the limit tells an oversized body apart from one that
	// is exactly at it.
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody+1))
	if err != nil {
		h.logger.Error(ctx, "failed to read webhook body", err)
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidRequest, "Unable to read request body."))
		return
	}
	if len(payload) > maxWebhookBody {
		h.logger.Warn(ctx, "rejected oversized vendor webhook")
		apierrors.RespondWithError(c, apierrors.PayloadTooLarge(apierrors.CodePayloadTooLarge, "Webhook body is too large."))
		return
	}

	if !validSignature(h.webhookSecret, payload, c.GetHeader(SignatureHeader)) {
		h.logger.Warn(ctx, "rejected vendor webhook with bad signature")
		apierrors.RespondWithError(c, apierrors.Unauthorized(apierrors.CodeInvalidSignature, "Webhook signature is invalid."))
		return
	}

	evt, err := DecodeVendorEvent(payload)
	if err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "source", Value: "webhook"})

	if err := h.processor.HandleVendorEvent(ctx, evt); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}
