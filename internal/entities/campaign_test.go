package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
)

func TestCampaignResolve(t *testing.T) {
	t.Run("Owner always resolves to collaborative", func(t *testing.T) {
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")
		campaign.Visibility = entities.VisibilityPublic
		campaign.ShareWith("bob", entities.PermissionViewOnly)

		level, ok := campaign.Resolve("alice")
		require.True(t, ok)
		assert.Equal(t, entities.PermissionCollaborative, level)
	})

	t.Run("Public visibility grants view only to non-owners", func(t *testing.T) {
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")
		campaign.Visibility = entities.VisibilityPublic

		level, ok := campaign.Resolve("stranger")
		require.True(t, ok)
		assert.Equal(t, entities.PermissionViewOnly, level)
	})

	t.Run("Public visibility wins over a collaborative share", func(t *testing.T) {
		// precedence is positional, not a merge of strongest grants
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")
		campaign.Visibility = entities.VisibilityPublic
		campaign.ShareWith("bob", entities.PermissionCollaborative)

		level, ok := campaign.Resolve("bob")
		require.True(t, ok)
		assert.Equal(t, entities.PermissionViewOnly, level)
	})

	t.Run("Private campaign uses the share list", func(t *testing.T) {
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")
		campaign.ShareWith("bob", entities.PermissionCollaborative)
		campaign.ShareWith("carol", entities.PermissionViewOnly)

		level, ok := campaign.Resolve("bob")
		require.True(t, ok)
		assert.Equal(t, entities.PermissionCollaborative, level)

		level, ok = campaign.Resolve("carol")
		require.True(t, ok)
		assert.Equal(t, entities.PermissionViewOnly, level)
	})

	t.Run("Unshared user on a private campaign has no access", func(t *testing.T) {
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")

		_, ok := campaign.Resolve("stranger")
		assert.False(t, ok)
		assert.False(t, campaign.CanView("stranger"))
		assert.False(t, campaign.CanEdit("stranger"))
	})

	t.Run("CanEdit requires collaborative", func(t *testing.T) {
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")
		campaign.ShareWith("bob", entities.PermissionViewOnly)

		assert.True(t, campaign.CanView("bob"))
		assert.False(t, campaign.CanEdit("bob"))
		assert.True(t, campaign.CanEdit("alice"))
	})
}

func TestCampaignShareWith(t *testing.T) {
	t.Run("Repeat share overwrites the level", func(t *testing.T) {
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")
		campaign.ShareWith("bob", entities.PermissionViewOnly)
		campaign.ShareWith("bob", entities.PermissionCollaborative)

		require.Len(t, campaign.Shares, 1)
		assert.Equal(t, entities.PermissionCollaborative, campaign.Shares[0].Permission)
	})

	t.Run("Sharing with the owner is a no-op", func(t *testing.T) {
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")
		campaign.ShareWith("alice", entities.PermissionViewOnly)

		assert.Empty(t, campaign.Shares)
	})

	t.Run("Unshare removes the grant and tolerates absence", func(t *testing.T) {
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")
		campaign.ShareWith("bob", entities.PermissionViewOnly)

		campaign.UnshareWith("bob")
		assert.Empty(t, campaign.Shares)

		campaign.UnshareWith("bob")
		assert.Empty(t, campaign.Shares)

		_, ok := campaign.Resolve("bob")
		assert.False(t, ok)
	})

	t.Run("Share order is preserved on upsert", func(t *testing.T) {
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")
		campaign.ShareWith("bob", entities.PermissionViewOnly)
		campaign.ShareWith("carol", entities.PermissionViewOnly)
		campaign.ShareWith("bob", entities.PermissionCollaborative)

		require.Len(t, campaign.Shares, 2)
		assert.Equal(t, "bob", campaign.Shares[0].SharedWithUser)
		assert.Equal(t, "carol", campaign.Shares[1].SharedWithUser)
	})
}

func TestCampaignQuestEvents(t *testing.T) {
	t.Run("Add preserves order and skips duplicates", func(t *testing.T) {
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")

		assert.True(t, campaign.AddQuestEvent("E1"))
		assert.True(t, campaign.AddQuestEvent("E2"))
		assert.False(t, campaign.AddQuestEvent("E1"))
		assert.Equal(t, []string{"E1", "E2"}, campaign.QuestEventIDs)
	})

	t.Run("Remove reports presence", func(t *testing.T) {
		campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")
		campaign.AddQuestEvent("E1")
		campaign.AddQuestEvent("E2")

		assert.True(t, campaign.RemoveQuestEvent("E1"))
		assert.False(t, campaign.RemoveQuestEvent("E1"))
		assert.Equal(t, []string{"E2"}, campaign.QuestEventIDs)
	})
}

func TestCampaignClone(t *testing.T) {
	campaign := entities.NewCampaign("P1", "alice", "Dragon Hunt")
	campaign.AddQuestEvent("E1")
	campaign.ShareWith("bob", entities.PermissionViewOnly)

	clone := campaign.Clone()
	clone.Name = "Renamed"
	clone.AddQuestEvent("E2")
	clone.ShareWith("bob", entities.PermissionCollaborative)

	assert.Equal(t, "Dragon Hunt", campaign.Name)
	assert.Equal(t, []string{"E1"}, campaign.QuestEventIDs)
	assert.Equal(t, entities.PermissionViewOnly, campaign.Shares[0].Permission)
}
