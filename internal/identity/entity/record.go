package entity

import "time"

// Profile holds the durable identity facts for one account. Archetype and
// StartingSkill stay empty until a calibration run (or a manual override)
// completes; once set they only change through an explicit re-run.
type Profile struct {
	AccountID     string `json:"account_id"`
	DisplayName   string `json:"display_name"`
	Archetype     string `json:"archetype,omitempty"`
	StartingSkill string `json:"starting_skill,omitempty"`
	AvatarRef     string `json:"avatar_ref,omitempty"`
	Level         int    `json:"level"`
	XP            int    `json:"xp"`
	Credits       int    `json:"credits"`
	Shards        int    `json:"shards"`
	Privileged    bool   `json:"privileged,omitempty"`
}

// HasIdentity reports whether calibration has ever completed for the profile.
func (p Profile) HasIdentity() bool {
	return p.Archetype != ""
}

// Record is one persisted identity record, keyed by account id in the store
// document. Created on first successful login, mutated on every profile
// update, entitlement change, or usage event; deleted only administratively.
type Record struct {
	Profile        Profile   `json:"profile"`
	UsageCount     int       `json:"usage_count"`
	IsEntitled     bool      `json:"is_entitled"`
	LastSeen       time.Time `json:"last_seen"`
	LastEventID    string    `json:"last_event_id,omitempty"`
	PassphraseHash string    `json:"passphrase_hash,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
