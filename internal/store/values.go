package store

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidReferralCode = errors.New("invalid referral code")
	ErrInvalidToken        = errors.New("invalid deep link token")
)

const (
	MinTokenLength = 8
	MaxTokenLength = 128
)

var referralCodePattern = regexp.MustCompile(`^[A-Z0-9]{4,10}$`)

// ReferralCode is a canonical uppercase code belonging to a referring user.
type ReferralCode string

// ParseReferralCode trims and uppercases raw before validating it.
func ParseReferralCode(raw string) (ReferralCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !referralCodePattern.MatchString(code) {
		return "", ErrInvalidReferralCode
	}
	return ReferralCode(code), nil
}

func (c ReferralCode) String() string {
	return string(c)
}

// DeepLinkToken is the opaque per-link identifier minted by the deep link vendor.
type DeepLinkToken string

func ParseDeepLinkToken(raw string) (DeepLinkToken, error) {
	token := strings.TrimSpace(raw)
	if len(token) < MinTokenLength || len(token) > MaxTokenLength {
		return "", ErrInvalidToken
	}
	return DeepLinkToken(token), nil
}

func (t DeepLinkToken) String() string {
	return string(t)
}
