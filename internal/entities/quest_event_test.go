package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	"github.com/jinhmyung/GuildQuest-Group3/internal/worldclock"
)

func TestQuestEventResolve(t *testing.T) {
	t.Run("Resolves only through the event share list", func(t *testing.T) {
		start, err := worldclock.New(1, 9, 0)
		require.NoError(t, err)
		event := entities.NewQuestEvent("E1", "Ambush", start, "R1")
		event.ShareWith("bob", entities.PermissionViewOnly)

		level, ok := event.Resolve("bob")
		require.True(t, ok)
		assert.Equal(t, entities.PermissionViewOnly, level)

		// no implicit grant for anyone else, campaign owners included
		_, ok = event.Resolve("alice")
		assert.False(t, ok)
	})

	t.Run("Upsert overwrites and unshare tolerates absence", func(t *testing.T) {
		start, err := worldclock.New(1, 9, 0)
		require.NoError(t, err)
		event := entities.NewQuestEvent("E1", "Ambush", start, "R1")

		event.ShareWith("bob", entities.PermissionViewOnly)
		event.ShareWith("bob", entities.PermissionCollaborative)
		require.Len(t, event.Shares, 1)
		assert.Equal(t, entities.PermissionCollaborative, event.Shares[0].Permission)

		event.UnshareWith("bob")
		event.UnshareWith("bob")
		assert.Empty(t, event.Shares)
	})
}

func TestQuestEventParticipants(t *testing.T) {
	start, err := worldclock.New(0, 12, 0)
	require.NoError(t, err)
	event := entities.NewQuestEvent("E1", "Feast", start, "R1")

	assert.True(t, event.AddParticipant("C1"))
	assert.True(t, event.AddParticipant("C2"))
	assert.False(t, event.AddParticipant("C1"))
	assert.Equal(t, []string{"C1", "C2"}, event.ParticipantCharIDs)

	assert.True(t, event.RemoveParticipant("C1"))
	assert.False(t, event.RemoveParticipant("C1"))
	assert.Equal(t, []string{"C2"}, event.ParticipantCharIDs)
}

func TestQuestEventInventoryChanges(t *testing.T) {
	start, err := worldclock.New(0, 12, 0)
	require.NoError(t, err)
	event := entities.NewQuestEvent("E1", "Feast", start, "R1")

	event.AddInventoryChange(entities.InventoryChange{
		Item:     entities.NewInventoryItem("Bread"),
		DeltaQty: 2,
	})
	event.AddInventoryChange(entities.InventoryChange{
		Item:     entities.NewInventoryItem("Ale"),
		DeltaQty: -1,
	})
	require.Len(t, event.InventoryChanges, 2)

	assert.False(t, event.RemoveInventoryChange(5))
	assert.False(t, event.RemoveInventoryChange(-1))
	assert.True(t, event.RemoveInventoryChange(0))
	require.Len(t, event.InventoryChanges, 1)
	assert.Equal(t, "Ale", event.InventoryChanges[0].Item.Name)
}

func TestQuestEventEndTimeJSON(t *testing.T) {
	t.Run("Unset end time serializes as explicit null", func(t *testing.T) {
		start, err := worldclock.New(1, 8, 30)
		require.NoError(t, err)
		event := entities.NewQuestEvent("E1", "Ambush", start, "R1")

		data, err := json.Marshal(event)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"end_time":null`)
	})

	t.Run("Set end time round trips", func(t *testing.T) {
		start, err := worldclock.New(1, 8, 30)
		require.NoError(t, err)
		end, err := worldclock.New(1, 10, 0)
		require.NoError(t, err)
		event := entities.NewQuestEvent("E1", "Ambush", start, "R1")
		event.EndTime = &end

		data, err := json.Marshal(event)
		require.NoError(t, err)

		var decoded entities.QuestEvent
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.NotNil(t, decoded.EndTime)
		assert.Equal(t, end, *decoded.EndTime)
	})
}

func TestQuestEventClone(t *testing.T) {
	start, err := worldclock.New(2, 6, 0)
	require.NoError(t, err)
	end, err := worldclock.New(2, 8, 0)
	require.NoError(t, err)

	target := "C1"
	event := entities.NewQuestEvent("E1", "March", start, "R1")
	event.EndTime = &end
	event.AddParticipant("C1")
	event.ShareWith("bob", entities.PermissionViewOnly)
	event.AddInventoryChange(entities.InventoryChange{
		Item:         entities.NewInventoryItem("Ration"),
		DeltaQty:     -1,
		TargetCharID: &target,
	})

	clone := event.Clone()
	clone.Name = "Retreat"
	*clone.EndTime = worldclock.Time{Day: 9}
	clone.AddParticipant("C2")
	*clone.InventoryChanges[0].TargetCharID = "C9"

	assert.Equal(t, "March", event.Name)
	assert.Equal(t, end, *event.EndTime)
	assert.Equal(t, []string{"C1"}, event.ParticipantCharIDs)
	assert.Equal(t, "C1", *event.InventoryChanges[0].TargetCharID)
}
