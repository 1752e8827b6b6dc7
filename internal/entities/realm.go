package entities

import (
	"github.com/jinhmyung/GuildQuest-Group3/internal/worldclock"
)

// Realm is a world location with its own local clock rule
type Realm struct {
	ID          string              `json:"realm_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	MapID       int                 `json:"map_id"`
	XCoord      float64             `json:"x_coord"`
	YCoord      float64             `json:"y_coord"`
	TimeRule    worldclock.TimeRule `json:"time_rule"`
}

// NewRealm creates a realm with a standard clock rule
func NewRealm(id, name string) *Realm {
	return &Realm{
		ID:       id,
		Name:     name,
		TimeRule: worldclock.DefaultTimeRule(),
	}
}

// Clone returns a deep copy of the realm
func (r *Realm) Clone() *Realm {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}
