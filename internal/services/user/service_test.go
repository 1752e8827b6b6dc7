package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/idgen"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/events"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/realms"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/users"
	realmsvc "github.com/jinhmyung/GuildQuest-Group3/internal/services/realm"
	"github.com/jinhmyung/GuildQuest-Group3/internal/services/user"
)

type fixture struct {
	service      user.Service
	realmService realmsvc.Service
	userRepo     users.Repository
}

func newFixture() *fixture {
	f := &fixture{
		userRepo: users.NewInMemoryRepository(),
	}
	f.realmService = realmsvc.NewService(&realmsvc.ServiceConfig{
		Repository:      realms.NewInMemoryRepository(),
		EventRepository: events.NewInMemoryRepository(),
		UserRepository:  f.userRepo,
		IDGenerator:     idgen.NewSequence(),
	})
	f.service = user.NewService(&user.ServiceConfig{
		Repository:   f.userRepo,
		RealmService: f.realmService,
	})
	return f
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Successfully creates a user with default settings", func(t *testing.T) {
		f := newFixture()

		created, err := f.service.CreateUser(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "alice", created.Username)
		assert.Equal(t, "R1", created.Settings.CurrentRealmID)
		assert.Equal(t, "classic", created.Settings.Theme)
		assert.Equal(t, entities.TimeDisplayWorld, created.Settings.TimeDisplay)
	})

	t.Run("Creates the default realm on first registration", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateUser(ctx, "alice")
		require.NoError(t, err)

		home, err := f.realmService.GetRealm(ctx, "R1")
		require.NoError(t, err)
		assert.Equal(t, realmsvc.DefaultRealmName, home.Name)
	})

	t.Run("Trims surrounding whitespace", func(t *testing.T) {
		f := newFixture()

		created, err := f.service.CreateUser(ctx, "  bob  ")
		require.NoError(t, err)
		assert.Equal(t, "bob", created.Username)
	})

	t.Run("Rejects a duplicate username", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateUser(ctx, "alice")
		require.NoError(t, err)

		_, err = f.service.CreateUser(ctx, "alice")
		require.Error(t, err)
		assert.True(t, gqerr.IsAlreadyExists(err))
	})

	t.Run("Rejects a blank username", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateUser(ctx, "   ")
		require.Error(t, err)
		assert.True(t, gqerr.IsInvalidArgument(err))
	})
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Successfully gets a user", func(t *testing.T) {
		f := newFixture()
		created, err := f.service.CreateUser(ctx, "alice")
		require.NoError(t, err)

		got, err := f.service.GetUser(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("Returns not found for an unknown username", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.GetUser(ctx, "ghost")
		require.Error(t, err)
		assert.True(t, gqerr.IsNotFound(err))
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("Lists users ordered by username", func(t *testing.T) {
		f := newFixture()
		for _, name := range []string{"carol", "alice", "bob"} {
			_, err := f.service.CreateUser(ctx, name)
			require.NoError(t, err)
		}

		list, err := f.service.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "alice", list[0].Username)
		assert.Equal(t, "bob", list[1].Username)
		assert.Equal(t, "carol", list[2].Username)
	})
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Successfully switches the current realm", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateUser(ctx, "alice")
		require.NoError(t, err)
		other, err := f.realmService.CreateRealm(ctx, &realmsvc.CreateRealmInput{Name: "Umbra"})
		require.NoError(t, err)

		updated, err := f.service.UpdateSettings(ctx, &user.UpdateSettingsInput{
			Username:       "alice",
			CurrentRealmID: &other.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, other.ID, updated.Settings.CurrentRealmID)

		stored, err := f.userRepo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, other.ID, stored.Settings.CurrentRealmID)
	})

	t.Run("Successfully updates theme and time display together", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateUser(ctx, "alice")
		require.NoError(t, err)

		theme := " dark "
		display := entities.TimeDisplayBoth
		updated, err := f.service.UpdateSettings(ctx, &user.UpdateSettingsInput{
			Username:    "alice",
			Theme:       &theme,
			TimeDisplay: &display,
		})
		require.NoError(t, err)
		assert.Equal(t, "dark", updated.Settings.Theme)
		assert.Equal(t, entities.TimeDisplayBoth, updated.Settings.TimeDisplay)
	})

	t.Run("Leaves nil fields untouched", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateUser(ctx, "alice")
		require.NoError(t, err)

		updated, err := f.service.UpdateSettings(ctx, &user.UpdateSettingsInput{
			Username: "alice",
		})
		require.NoError(t, err)
		assert.Equal(t, "R1", updated.Settings.CurrentRealmID)
		assert.Equal(t, "classic", updated.Settings.Theme)
		assert.Equal(t, entities.TimeDisplayWorld, updated.Settings.TimeDisplay)
	})

	t.Run("Rejects switching to an unknown realm", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateUser(ctx, "alice")
		require.NoError(t, err)

		missing := "R99"
		_, err = f.service.UpdateSettings(ctx, &user.UpdateSettingsInput{
			Username:       "alice",
			CurrentRealmID: &missing,
		})
		require.Error(t, err)
		assert.True(t, gqerr.IsNotFound(err))

		stored, err := f.userRepo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "R1", stored.Settings.CurrentRealmID)
	})

	t.Run("Rejects an empty theme", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateUser(ctx, "alice")
		require.NoError(t, err)

		theme := "   "
		_, err = f.service.UpdateSettings(ctx, &user.UpdateSettingsInput{
			Username: "alice",
			Theme:    &theme,
		})
		require.Error(t, err)
		assert.True(t, gqerr.IsInvalidArgument(err))
	})

	t.Run("Rejects an invalid time display", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateUser(ctx, "alice")
		require.NoError(t, err)

		display := entities.TimeDisplay("SIDEREAL")
		_, err = f.service.UpdateSettings(ctx, &user.UpdateSettingsInput{
			Username:    "alice",
			TimeDisplay: &display,
		})
		require.Error(t, err)
		assert.True(t, gqerr.IsInvalidArgument(err))
	})

	t.Run("Returns not found for an unknown user", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.UpdateSettings(ctx, &user.UpdateSettingsInput{Username: "ghost"})
		require.Error(t, err)
		assert.True(t, gqerr.IsNotFound(err))
	})
}
