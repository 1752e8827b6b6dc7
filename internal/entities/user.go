package entities

// Settings holds a user's preferences
type Settings struct {
	CurrentRealmID string      `json:"current_realm_id"`
	Theme          string      `json:"theme"`
	TimeDisplay    TimeDisplay `json:"time_display"`
}

// DefaultSettings returns settings pointing at the given realm
func DefaultSettings(realmID string) Settings {
	return Settings{
		CurrentRealmID: realmID,
		Theme:          "classic",
		TimeDisplay:    TimeDisplayWorld,
	}
}

// User is an account identified by username. The id lists record which
// campaigns and characters the user owns, in creation order.
type User struct {
	Username     string   `json:"username"`
	Settings     Settings `json:"settings"`
	CampaignIDs  []string `json:"campaign_ids"`
	CharacterIDs []string `json:"character_ids"`
}

// NewUser creates a user with default settings for the given realm
func NewUser(username, realmID string) *User {
	return &User{
		Username:     username,
		Settings:     DefaultSettings(realmID),
		CampaignIDs:  []string{},
		CharacterIDs: []string{},
	}
}

// AddCampaignID appends a campaign id, skipping duplicates
func (u *User) AddCampaignID(id string) {
	for _, existing := range u.CampaignIDs {
		if existing == id {
			return
		}
	}
	u.CampaignIDs = append(u.CampaignIDs, id)
}

// AddCharacterID appends a character id, skipping duplicates
func (u *User) AddCharacterID(id string) {
	for _, existing := range u.CharacterIDs {
		if existing == id {
			return
		}
	}
	u.CharacterIDs = append(u.CharacterIDs, id)
}

// Clone returns a deep copy of the user
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.CampaignIDs != nil {
		clone.CampaignIDs = make([]string, len(u.CampaignIDs))
		copy(clone.CampaignIDs, u.CampaignIDs)
	}
	if u.CharacterIDs != nil {
		clone.CharacterIDs = make([]string, len(u.CharacterIDs))
		copy(clone.CharacterIDs, u.CharacterIDs)
	}
	return &clone
}
