package realm_test

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
	"github.com/jinhmyung/GuildQuest-Group3/internal/services/realm"
	"github.com/jinhmyung/GuildQuest-Group3/internal/worldclock"
)

type fixture struct {
	service   realm.Service
	realmRepo realms.Repository
	eventRepo events.Repository
	userRepo  users.Repository
}

func newFixture() *fixture {
	f := &fixture{
		realmRepo: realms.NewInMemoryRepository(),
		eventRepo: events.NewInMemoryRepository(),
		userRepo:  users.NewInMemoryRepository(),
	}
	f.service = realm.NewService(&realm.ServiceConfig{
		Repository:      f.realmRepo,
		EventRepository: f.eventRepo,
		UserRepository:  f.userRepo,
		IDGenerator:     idgen.NewSequence(),
	})
	return f
}

func TestCreateRealm(t *testing.T) {
	ctx := context.Background()

	t.Run("Successfully creates a realm with defaults", func(t *testing.T) {
		f := newFixture()

		created, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{
			Name: "Aetheria",
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "R1", created.ID)
		assert.Equal(t, "Aetheria", created.Name)
		assert.Equal(t, 0, created.TimeRule.OffsetMinutes)
		assert.Equal(t, 1.0, created.TimeRule.DayLengthMultiplier)
	})

	t.Run("Successfully creates a realm with a custom time rule", func(t *testing.T) {
		f := newFixture()

		created, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{
			Name:                "Umbra",
			Description:         "  perpetual dusk  ",
			MapID:               3,
			XCoord:              12.5,
			YCoord:              -4.25,
			OffsetMinutes:       -90,
			DayLengthMultiplier: 1.5,
		})
		require.NoError(t, err)

		assert.Equal(t, "perpetual dusk", created.Description)
		assert.Equal(t, 3, created.MapID)
		assert.Equal(t, -90, created.TimeRule.OffsetMinutes)
		assert.Equal(t, 1.5, created.TimeRule.DayLengthMultiplier)

		stored, err := f.realmRepo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, stored)
	})

	t.Run("Assigns sequential IDs", func(t *testing.T) {
		f := newFixture()

		first, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{Name: "One"})
		require.NoError(t, err)
		second, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{Name: "Two"})
		require.NoError(t, err)

		assert.Equal(t, "R1", first.ID)
		assert.Equal(t, "R2", second.ID)
	})

	t.Run("Rejects a blank name", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{Name: "   "})
		require.Error(t, err)
		assert.True(t, gqerr.IsInvalidArgument(err))
	})

	t.Run("Rejects a negative day length multiplier", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{
			Name:                "Broken",
			DayLengthMultiplier: -2,
		})
		require.Error(t, err)
		assert.True(t, gqerr.IsValidation(err))
	})

	t.Run("Rejects nil input", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateRealm(ctx, nil)
		require.Error(t, err)
		assert.True(t, gqerr.IsInvalidArgument(err))
	})
}

func TestGetRealm(t *testing.T) {
	ctx := context.Background()

	t.Run("Successfully gets a realm", func(t *testing.T) {
		f := newFixture()
		created, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{Name: "Aetheria"})
		require.NoError(t, err)

		got, err := f.service.GetRealm(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("Returns not found for an unknown ID", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.GetRealm(ctx, "R99")
		require.Error(t, err)
		assert.True(t, gqerr.IsNotFound(err))
	})

	t.Run("Rejects an empty ID", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.GetRealm(ctx, "  ")
		require.Error(t, err)
		assert.True(t, gqerr.IsInvalidArgument(err))
	})
}

func TestListRealms(t *testing.T) {
	ctx := context.Background()

	t.Run("Lists realms ordered by ID", func(t *testing.T) {
		f := newFixture()
		for _, name := range []string{"One", "Two", "Three"} {
			_, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{Name: name})
			require.NoError(t, err)
		}

		list, err := f.service.ListRealms(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "R1", list[0].ID)
		assert.Equal(t, "R2", list[1].ID)
		assert.Equal(t, "R3", list[2].ID)
	})

	t.Run("Returns an empty list when no realms exist", func(t *testing.T) {
		f := newFixture()

		list, err := f.service.ListRealms(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestEnsureDefaultRealm(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates the default realm when none exist", func(t *testing.T) {
		f := newFixture()

		got, err := f.service.EnsureDefaultRealm(ctx)
		require.NoError(t, err)

		assert.Equal(t, "R1", got.ID)
		assert.Equal(t, realm.DefaultRealmName, got.Name)
		assert.Equal(t, 1, got.MapID)
		assert.Equal(t, worldclock.DefaultTimeRule(), got.TimeRule)
	})

	t.Run("Is idempotent", func(t *testing.T) {
		f := newFixture()

		first, err := f.service.EnsureDefaultRealm(ctx)
		require.NoError(t, err)
		second, err := f.service.EnsureDefaultRealm(ctx)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		list, err := f.service.ListRealms(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("Returns the lowest existing realm instead of creating one", func(t *testing.T) {
		f := newFixture()
		created, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{Name: "Aetheria"})
		require.NoError(t, err)

		got, err := f.service.EnsureDefaultRealm(ctx)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Aetheria", got.Name)
	})
}

func TestDeleteRealm(t *testing.T) {
	ctx := context.Background()

	t.Run("Successfully deletes an unreferenced realm", func(t *testing.T) {
		f := newFixture()
		created, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{Name: "Doomed"})
		require.NoError(t, err)

		require.NoError(t, f.service.DeleteRealm(ctx, created.ID))

		_, err = f.service.GetRealm(ctx, created.ID)
		assert.True(t, gqerr.IsNotFound(err))
	})

	t.Run("Refuses to delete a realm an event is scheduled in", func(t *testing.T) {
		f := newFixture()
		created, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{Name: "Busy"})
		require.NoError(t, err)

		event := entities.NewQuestEvent("E1", "Ambush", worldclock.Time{Day: 1}, created.ID)
		require.NoError(t, f.eventRepo.Create(ctx, event))

		err = f.service.DeleteRealm(ctx, created.ID)
		require.Error(t, err)
		assert.True(t, gqerr.IsInvalidArgument(err))
	})

	t.Run("Refuses to delete a user's current realm", func(t *testing.T) {
		f := newFixture()
		created, err := f.service.CreateRealm(ctx, &realm.CreateRealmInput{Name: "Home"})
		require.NoError(t, err)

		user := entities.NewUser("alice", created.ID)
		require.NoError(t, f.userRepo.Create(ctx, user))

		err = f.service.DeleteRealm(ctx, created.ID)
		require.Error(t, err)
		assert.True(t, gqerr.IsInvalidArgument(err))
	})

	t.Run("Returns not found for an unknown ID", func(t *testing.T) {
		f := newFixture()

		err := f.service.DeleteRealm(ctx, "R42")
		require.Error(t, err)
		assert.True(t, gqerr.IsNotFound(err))
	})
}
