package entities

import (
	"github.com/jinhmyung/GuildQuest-Group3/internal/worldclock"
)

// InventoryChange is one planned inventory mutation attached to a quest
// event. A positive delta grants copies of the item; a negative delta
// removes matching slots. A nil target applies the change to every
// event participant.
type InventoryChange struct {
	Item         InventoryItem `json:"item"`
	DeltaQty     int           `json:"delta_qty"`
	TargetCharID *string       `json:"target_char_id"`
}

// QuestEvent is a scheduled happening on the world clock. Event shares
// are independent of the parent campaign's shares: resolving a user's
// permission here consults only the event's own share list.
type QuestEvent struct {
	ID                 string            `json:"event_id"`
	Name               string            `json:"name"`
	StartTime          worldclock.Time   `json:"start_time"`
	EndTime            *worldclock.Time  `json:"end_time"`
	RealmID            string            `json:"realm_id"`
	ParticipantCharIDs []string          `json:"participant_char_ids"`
	Shares             []Share           `json:"shares"`
	InventoryChanges   []InventoryChange `json:"inventory_changes"`
}

// NewQuestEvent creates an event with no end time, participants,
// shares, or inventory changes
func NewQuestEvent(id, name string, start worldclock.Time, realmID string) *QuestEvent {
	return &QuestEvent{
		ID:                 id,
		Name:               name,
		StartTime:          start,
		RealmID:            realmID,
		ParticipantCharIDs: []string{},
		Shares:             []Share{},
		InventoryChanges:   []InventoryChange{},
	}
}

// ShareWith grants username the given level, overwriting an existing
// grant
func (e *QuestEvent) ShareWith(username string, level PermissionLevel) {
	e.Shares = upsertShare(e.Shares, username, level)
}

// UnshareWith revokes username's grant; absent grants are ignored
func (e *QuestEvent) UnshareWith(username string) {
	e.Shares, _ = removeShare(e.Shares, username)
}

// Resolve returns the permission level username holds on the event via
// its own share list, or false when no grant exists. Campaign-level
// access is the caller's concern, not the event's.
func (e *QuestEvent) Resolve(username string) (PermissionLevel, bool) {
	return lookupShare(e.Shares, username)
}

// AddParticipant appends a character id, skipping duplicates
func (e *QuestEvent) AddParticipant(charID string) bool {
	for _, id := range e.ParticipantCharIDs {
		if id == charID {
			return false
		}
	}
	e.ParticipantCharIDs = append(e.ParticipantCharIDs, charID)
	return true
}

// RemoveParticipant drops a character id, reporting whether it was
// present
func (e *QuestEvent) RemoveParticipant(charID string) bool {
	for i, id := range e.ParticipantCharIDs {
		if id == charID {
			e.ParticipantCharIDs = append(e.ParticipantCharIDs[:i], e.ParticipantCharIDs[i+1:]...)
			return true
		}
	}
	return false
}

// AddInventoryChange appends a planned change
func (e *QuestEvent) AddInventoryChange(change InventoryChange) {
	e.InventoryChanges = append(e.InventoryChanges, change)
}

// RemoveInventoryChange drops the change at index, reporting whether
// the index was in range
func (e *QuestEvent) RemoveInventoryChange(index int) bool {
	if index < 0 || index >= len(e.InventoryChanges) {
		return false
	}
	e.InventoryChanges = append(e.InventoryChanges[:index], e.InventoryChanges[index+1:]...)
	return true
}

// Clone returns a deep copy of the event
func (e *QuestEvent) Clone() *QuestEvent {
	if e == nil {
		return nil
	}
	clone := *e
	if e.EndTime != nil {
		end := *e.EndTime
		clone.EndTime = &end
	}
	if e.ParticipantCharIDs != nil {
		clone.ParticipantCharIDs = make([]string, len(e.ParticipantCharIDs))
		copy(clone.ParticipantCharIDs, e.ParticipantCharIDs)
	}
	clone.Shares = cloneShares(e.Shares)
	if e.InventoryChanges != nil {
		clone.InventoryChanges = make([]InventoryChange, len(e.InventoryChanges))
		for i, change := range e.InventoryChanges {
			clone.InventoryChanges[i] = change
			if change.TargetCharID != nil {
				target := *change.TargetCharID
				clone.InventoryChanges[i].TargetCharID = &target
			}
		}
	}
	return &clone
}
