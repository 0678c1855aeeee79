package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidChannel = errors.New("invalid channel")
	ErrInvalidStatus  = errors.New("invalid referral status")
)

// Channel is the medium a referral link was shared through.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
	ChannelShare Channel = "share"
	ChannelCopy  Channel = "copy"
)

// ParseChannel accepts the channel names used by the mobile clients.
// "text" is an alias for sms.
func ParseChannel(raw string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sms", "text":
		return ChannelSMS, nil
	case "email":
		return ChannelEmail, nil
	case "share":
		return ChannelShare, nil
	case "copy":
		return ChannelCopy, nil
	default:
		return "", ErrInvalidChannel
	}
}

// ReferralStatus is the lifecycle position of a referral.
// Values are ordered and double as indexes into StatusCounts.
type ReferralStatus int

const (
	StatusPending ReferralStatus = iota
	StatusInstalled
	StatusComplete
	StatusRewarded
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = [...]ReferralStatus{StatusPending, StatusInstalled, StatusComplete, StatusRewarded}

var statusNames = [...]string{"pending", "installed", "complete", "rewarded"}

func (s ReferralStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("ReferralStatus(%d)", int(s))
	}
	return statusNames[s]
}

// Valid reports whether s is one of the four known statuses.
func (s ReferralStatus) Valid() bool {
	return s >= StatusPending && s <= StatusRewarded
}

// ParseReferralStatus is case-insensitive.
func ParseReferralStatus(raw string) (ReferralStatus, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for i, n := range statusNames {
		if n == name {
			return ReferralStatus(i), nil
		}
	}
	return 0, ErrInvalidStatus
}

func (s ReferralStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrInvalidStatus
	}
	return []byte(s.String()), nil
}

func (s *ReferralStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseReferralStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements the driver.Valuer interface for ReferralStatus
func (s ReferralStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.String(), nil
}

// Scan implements the sql.Scanner interface for ReferralStatus
func (s *ReferralStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	default:
		return fmt.Errorf("incompatible type %T for referral status", value)
	}
}

// StatusCounts holds one counter per ReferralStatus, indexed by the status value.
type StatusCounts [len(statusNames)]int

// Get returns the count for status, zero for unknown statuses.
func (c StatusCounts) Get(status ReferralStatus) int {
	if !status.Valid() {
		return 0
	}
	return c[status]
}

func (c StatusCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
