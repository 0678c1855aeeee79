// Package profiles is the stand-in for the user profile service. It knows each
// user's own referral code and the display details shown to referees.
package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	FallbackDisplayName = "Single User"
)

type Profile struct {
	UserID       string  `json:"user_id"`
	ReferralCode string  `json:"referral_code"`
	DisplayName  string  `json:"display_name"`
	SchoolName   *string `json:"school_name,omitempty"`
}

// ReferrerInfo is what a referee sees about the person who invited them.
type ReferrerInfo struct {
	DisplayName string  `json:"display_name"`
	SchoolName  *string `json:"school_name"`
}

type Directory struct {
	byUser map[string]Profile
}

// NewDirectory indexes profiles by user id, case-insensitively. Later
// entries win over earlier ones.
func NewDirectory(profiles []Profile) *Directory {
	d := &Directory{byUser: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		d.byUser[strings.ToLower(p.UserID)] = p
	}
	return d
}

// LoadFile reads a JSON array of profiles. An empty path yields the built-in
// demo users.
func LoadFile(path string) (*Directory, error) {
	if path == "" {
		return NewDirectory(DefaultProfiles()), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}
	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}
	return NewDirectory(profiles), nil
}

func DefaultProfiles() []Profile {
	school := "Carton Caps"
	return []Profile{
		{UserID: "user_123", ReferralCode: "XY7G4D", DisplayName: "Darri Cordoba", SchoolName: &school},
		{UserID: "user_456", ReferralCode: "Q1W2E3", DisplayName: "Juan Torres", SchoolName: &school},
		{UserID: "user_789", ReferralCode: "A9B8C7", DisplayName: "Pepito Perez", SchoolName: &school},
	}
}

// ReferralCodeFor returns the user's own code, or "" for unknown users.
func (d *Directory) ReferralCodeFor(_ context.Context, userID string) string {
	return d.byUser[strings.ToLower(userID)].ReferralCode
}

// GetReferrerInfo never fails for unknown users; they get a generic name.
func (d *Directory) GetReferrerInfo(_ context.Context, userID string) (ReferrerInfo, error) {
	p, ok := d.byUser[strings.ToLower(userID)]
	if !ok {
		return ReferrerInfo{DisplayName: FallbackDisplayName}, nil
	}
	return ReferrerInfo{DisplayName: p.DisplayName, SchoolName: p.SchoolName}, nil
}
