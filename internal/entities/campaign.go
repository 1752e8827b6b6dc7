package entities

// Campaign is an owned collection of quest events. Permission checks
// resolve in a fixed order: owner, then public visibility, then the
// share list; the first match wins.
type Campaign struct {
	ID            string     `json:"campaign_id"`
	OwnerUsername string     `json:"owner_username"`
	Name          string     `json:"name"`
	Visibility    Visibility `json:"visibility"`
	Archived      bool       `json:"archived"`
	QuestEventIDs []string   `json:"quest_event_ids"`
	Shares        []Share    `json:"shares"`
}

// NewCampaign creates a private, unarchived campaign
func NewCampaign(id, owner, name string) *Campaign {
	return &Campaign{
		ID:            id,
		OwnerUsername: owner,
		Name:          name,
		Visibility:    VisibilityPrivate,
		QuestEventIDs: []string{},
		Shares:        []Share{},
	}
}

// ShareWith grants username the given level, overwriting an existing
// grant. Sharing with the owner is a no-op: the owner's access is
// implicit and never appears in the share list.
func (c *Campaign) ShareWith(username string, level PermissionLevel) {
	if username == c.OwnerUsername {
		return
	}
	c.Shares = upsertShare(c.Shares, username, level)
}

// UnshareWith revokes username's grant. Revoking a grant that does not
// exist is not an error.
func (c *Campaign) UnshareWith(username string) {
	c.Shares, _ = removeShare(c.Shares, username)
}

// Resolve returns the permission level username holds on the campaign,
// or false when access is absent. Owner resolves to COLLABORATIVE;
// public visibility resolves to VIEW_ONLY for everyone else; otherwise
// the share list decides. Levels never merge across sources.
func (c *Campaign) Resolve(username string) (PermissionLevel, bool) {
	if username == c.OwnerUsername {
		return PermissionCollaborative, true
	}
	if c.Visibility == VisibilityPublic {
		return PermissionViewOnly, true
	}
	return lookupShare(c.Shares, username)
}

// CanView reports whether username holds any permission level
func (c *Campaign) CanView(username string) bool {
	_, ok := c.Resolve(username)
	return ok
}

// CanEdit reports whether username holds COLLABORATIVE access
func (c *Campaign) CanEdit(username string) bool {
	level, ok := c.Resolve(username)
	return ok && level == PermissionCollaborative
}

// AddQuestEvent appends an event id, skipping duplicates
func (c *Campaign) AddQuestEvent(eventID string) bool {
	for _, id := range c.QuestEventIDs {
		if id == eventID {
			return false
		}
	}
	c.QuestEventIDs = append(c.QuestEventIDs, eventID)
	return true
}

// RemoveQuestEvent drops an event id, reporting whether it was present
func (c *Campaign) RemoveQuestEvent(eventID string) bool {
	for i, id := range c.QuestEventIDs {
		if id == eventID {
			c.QuestEventIDs = append(c.QuestEventIDs[:i], c.QuestEventIDs[i+1:]...)
			return true
		}
	}
	return false
}

// HasQuestEvent reports whether the campaign contains the event id
func (c *Campaign) HasQuestEvent(eventID string) bool {
	for _, id := range c.QuestEventIDs {
		if id == eventID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the campaign
func (c *Campaign) Clone() *Campaign {
	if c == nil {
		return nil
	}
	clone := *c
	if c.QuestEventIDs != nil {
		clone.QuestEventIDs = make([]string, len(c.QuestEventIDs))
		copy(clone.QuestEventIDs, c.QuestEventIDs)
	}
	clone.Shares = cloneShares(c.Shares)
	return &clone
}
